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

package flo_test

import (
    `github.com/cloudwego/floopt/flo`
    . `github.com/onsi/ginkgo/v2`
    . `github.com/onsi/gomega`
)

var _ = Describe("Graph", func() {
    It("should order nodes by first reference", func() {
        g := parse("x = and'8 b a\na = in'8\nb = in'8\n")
        var names []string
        for _, v := range g.Nodes() {
            names = append(names, v.Name())
        }
        Expect(names).To(Equal([]string { "x", "b", "a" }))
    })

    It("should put declared nodes last", func() {
        b := flo.NewBuilder()
        m := flo.NewMem("m", 8, 4)
        a := flo.NewNode("a", 8)
        b.Declare(m)
        b.Add(flo.NewOperation(a, 8, flo.OP_in))
        g := b.Build()
        Expect(g.Nodes()).To(Equal([]*flo.Node { a, m }))
    })

    It("should detect multiple producers", func() {
        a := flo.NewNode("a", 8)
        b := flo.NewBuilder()
        b.Add(flo.NewOperation(a, 8, flo.OP_in))
        b.Add(flo.NewOperation(a, 8, flo.OP_not, a))
        _, err := b.Build().Producers()
        Expect(flo.IsInvariant(err)).To(BeTrue())
    })

    It("should not change once built", func() {
        b := flo.NewBuilder()
        b.Add(flo.NewOperation(flo.NewNode("a", 8), 8, flo.OP_in))
        g := b.Build()
        b.Add(flo.NewOperation(flo.NewNode("b", 8), 8, flo.OP_in))
        Expect(g.Len()).To(Equal(1))
        Expect(g.HasName("b")).To(BeFalse())
        Expect(b.Len()).To(Equal(2))
    })

    It("should hand out copies", func() {
        g := parse("a = in'8\nb = not'8 a\n")
        ops := g.Operations()
        ops[0] = nil
        Expect(g.Operations()[0]).NotTo(BeNil())
        sv := g.Operations()[1].Sources()
        sv[0] = nil
        Expect(g.Operations()[1].Source(0)).NotTo(BeNil())
    })
})

var _ = Describe("Temps", func() {
    It("should skip names taken by the graph", func() {
        g := parse("OPT0_0 = in'8\nOPT0_2 = in'8\n")
        tmp := flo.NewTemps(g, 0)
        ref := flo.NewNode("r", 12)
        Expect(tmp.Make(ref).Name()).To(Equal("OPT0_1"))
        Expect(tmp.Make(ref).Name()).To(Equal("OPT0_3"))
        Expect(tmp.Make(ref).Width()).To(Equal(flo.Width(12)))
    })

    It("should not collide across scopes", func() {
        ref := flo.NewNode("r", 1)
        a := flo.NewTemps(flo.Empty(), 1).Make(ref)
        b := flo.NewTemps(flo.Empty(), 11).Make(ref)
        Expect(a.Name()).To(Equal("OPT1_0"))
        Expect(b.Name()).To(Equal("OPT11_0"))
    })
})

var _ = Describe("Opcode", func() {
    It("should parse every opcode name", func() {
        for _, name := range []string { "add", "and", "or", "xor", "mov", "out", "in", "reg", "mux", "cat", "rd", "wr", "log2" } {
            op, ok := flo.ParseOpcode(name)
            Expect(ok).To(BeTrue(), name)
            Expect(op.String()).To(Equal(name))
        }
        _, ok := flo.ParseOpcode("mem")
        Expect(ok).To(BeFalse())
    })

    It("should know the bitwise properties", func() {
        Expect(flo.OP_and.IsAssociative()).To(BeTrue())
        Expect(flo.OP_xor.IsAssociative()).To(BeTrue())
        Expect(flo.OP_add.IsAssociative()).To(BeFalse())
        Expect(flo.OP_or.IsIdempotent()).To(BeTrue())
        Expect(flo.OP_xor.IsIdempotent()).To(BeFalse())
    })
})
