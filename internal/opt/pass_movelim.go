/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package opt

import (
    `fmt`

    `github.com/cloudwego/floopt/flo`
)

// MovElim removes MOV operations by making their readers read the MOV source
// directly. Substitution is one level deep: a chain of MOVs collapses by one
// link per run.
type MovElim struct{}

func (MovElim) Name() string {
    return "mov_elision"
}

func (MovElim) Apply(g *flo.Graph) (*flo.Graph, error) {
    ops := g.Operations()
    target := make(map[*flo.Node]*flo.Node)

    /* Phase 1: map every MOV destination to its source */
    for _, op := range ops {
        if op.Op() == flo.OP_mov {
            if op.NumSources() != 1 {
                return nil, flo.EInvariant("mov_elision", op.D(), fmt.Sprintf("mov with %d sources", op.NumSources()))
            } else {
                target[op.D()] = op.Source(0)
            }
        }
    }

    /* Phase 2: rewrite the sources of everything else */
    out := flo.NewBuilder()
    for _, op := range ops {
        if op.Op() == flo.OP_mov {
            continue
        }

        /* replace the MOV destinations */
        sv := op.Sources()
        for i, v := range sv {
            if r, ok := target[v]; ok {
                sv[i] = r
            }
        }

        /* operations are immutable, so build a new one */
        out.Add(flo.NewOperation(op.D(), op.Width(), op.Op(), sv...))
    }

    /* keep the memories */
    declareMemories(out, g)
    return out.Build(), nil
}
