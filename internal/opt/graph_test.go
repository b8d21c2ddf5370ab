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
    `strings`
    `testing`

    `github.com/brianvoe/gofakeit/v6`
    `github.com/cloudwego/floopt/flo`
    `github.com/cloudwego/floopt/fuzz`
    `github.com/stretchr/testify/require`
)

const _ChainSrc = `
a = in'8
b = in'8
c = in'8
d = in'8
x = and'8 a b
y = and'8 x c
z = and'8 y d
o = out'8 z
`

func mustParse(t *testing.T, src string) *flo.Graph {
    g, err := flo.Parse(strings.NewReader(src))
    require.NoError(t, err)
    return g
}

func dumpops(g *flo.Graph) []string {
    ops := g.Operations()
    ret := make([]string, 0, len(ops))
    for _, op := range ops {
        ret = append(ret, op.String())
    }
    return ret
}

func countOps(g *flo.Graph, fn func(op *flo.Operation) bool) (n int) {
    for _, op := range g.Operations() {
        if fn(op) {
            n++
        }
    }
    return
}

func isTemp(op *flo.Operation) bool {
    return strings.HasPrefix(op.D().Name(), "OPT")
}

func isMov(op *flo.Operation) bool {
    return op.Op() == flo.OP_mov
}

// chain builds a left-leaning chain of k-1 `op` operations over k inputs.
func chain(op flo.Opcode, k int) string {
    var buf []string
    for i := 0; i < k; i++ {
        buf = append(buf, fmt.Sprintf("i%d = in'8", i))
    }
    prev := "i0"
    for i := 1; i < k; i++ {
        buf = append(buf, fmt.Sprintf("c%d = %s'8 %s i%d", i, op, prev, i))
        prev = fmt.Sprintf("c%d", i)
    }
    buf = append(buf, "o = out'8 " + prev)
    return strings.Join(buf, "\n")
}

// randomGraph builds an acyclic circuit of n random operations, every node
// is 8 bits wide.
func randomGraph(seed int64, n int) *flo.Graph {
    return fuzz.Generate(gofakeit.New(seed), fuzz.Config { Ops: n })
}

// reachable computes the set of operations some OUT operation depends on.
func reachable(t *testing.T, g *flo.Graph) map[*flo.Operation]bool {
    defs, err := g.Producers()
    require.NoError(t, err)
    ret := make(map[*flo.Operation]bool)

    /* plain recursive walk */
    var walk func(op *flo.Operation)
    walk = func(op *flo.Operation) {
        if ret[op] {
            return
        }
        ret[op] = true
        for _, v := range op.Sources() {
            if p, ok := defs[v]; ok {
                walk(p)
            }
        }
    }

    /* start from every output */
    for _, op := range g.Operations() {
        if op.Op() == flo.OP_out {
            walk(op)
        }
    }
    return ret
}
