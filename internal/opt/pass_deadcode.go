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
    `github.com/cloudwego/floopt/flo`
    `github.com/oleiade/lane`
)

// DCE removes every operation that no output depends on.
type DCE struct{}

func (DCE) Name() string {
    return "dead_code_elimination"
}

func (DCE) Apply(g *flo.Graph) (*flo.Graph, error) {
    var err error
    var defs map[*flo.Node]*flo.Operation

    /* map every node to its producer */
    if defs, err = g.Producers(); err != nil {
        return nil, err
    }

    /* traversal state */
    q := lane.NewQueue()
    out := flo.NewBuilder()
    emitted := make(map[*flo.Node]bool)

    /* emits the producer of a node on first sight */
    emit := func(v *flo.Node) error {
        if v.IsConst() || emitted[v] {
            return nil
        }

        /* memories are declared, not produced */
        if emitted[v] = true; v.IsMem() {
            out.Declare(v)
            return nil
        }

        /* everything else must have a producer */
        p, ok := defs[v]
        if !ok {
            return flo.EInvariant("dead_code_elimination", v, "no operation produces this node")
        }

        /* keep the operation and visit its sources */
        out.Add(p)
        q.Enqueue(p)
        return nil
    }

    /* walk from every output, breadth first */
    for _, root := range g.Operations() {
        if root.Op() != flo.OP_out {
            continue
        }

        /* follow the dependencies */
        for q.Enqueue(root); !q.Empty(); {
            op := q.Dequeue().(*flo.Operation)
            if err = emit(op.D()); err != nil {
                return nil, err
            }
            for _, v := range op.Sources() {
                if err = emit(v); err != nil {
                    return nil, err
                }
            }
        }
    }

    return out.Build(), nil
}
