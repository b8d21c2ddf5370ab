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
    `errors`
    `strings`

    `github.com/cloudwego/floopt/flo`
    . `github.com/onsi/ginkgo/v2`
    . `github.com/onsi/gomega`
)

var _ = Describe("Parse", func() {
    Context("well-formed input", func() {
        It("should keep operations in file order", func() {
            g := parse("a = in'8\nb = not'8 a\no = out'8 b\n")
            Expect(lines(g)).To(Equal([]string {
                "a = in'8",
                "b = not'8 a",
                "o = out'8 b",
            }))
        })

        It("should share one node per name", func() {
            g := parse("a = in'8\nb = not'8 a\n")
            ops := g.Operations()
            Expect(ops[1].Source(0)).To(BeIdenticalTo(ops[0].D()))
            Expect(g.Lookup("a")).To(BeIdenticalTo(ops[0].D()))
        })

        It("should resolve forward references", func() {
            g := parse("x = not'4 y\ny = in'4\n")
            ops := g.Operations()
            Expect(ops[0].Source(0)).To(BeIdenticalTo(ops[1].D()))
            Expect(ops[0].Source(0).Width()).To(Equal(flo.Width(4)))
        })

        It("should skip blank lines and comments", func() {
            g := parse("\n# a comment\n   \na = in'8\n  # indented comment\n")
            Expect(g.Len()).To(Equal(1))
        })

        It("should accept operations without a width", func() {
            g := parse("a = in'8\nb = not a\n")
            Expect(g.Operations()[1].Width().Known()).To(BeFalse())
            Expect(g.Operations()[1].String()).To(Equal("b = not a"))
        })

        It("should leave undefined sources with an unknown width", func() {
            g := parse("x = not'8 ghost\n")
            Expect(g.Lookup("ghost")).NotTo(BeNil())
            Expect(g.Lookup("ghost").Width().Known()).To(BeFalse())
        })
    })

    Context("constants", func() {
        It("should infer the width from the value", func() {
            g := parse("a = in'8\nx = add'8 a 5\ny = add'8 a 0\nz = add'8 a 0x10\n")
            Expect(g.Lookup("5").Width()).To(Equal(flo.Width(3)))
            Expect(g.Lookup("0").Width()).To(Equal(flo.Width(1)))
            Expect(g.Lookup("0x10").Width()).To(Equal(flo.Width(5)))
            Expect(g.Lookup("5").IsConst()).To(BeTrue())
        })

        It("should honor explicit widths", func() {
            g := parse("a = in'8\nx = add'8 a 5'16\n")
            Expect(g.Lookup("5'16").Width()).To(Equal(flo.Width(16)))
        })

        It("should share repeated literals", func() {
            g := parse("a = in'8\nx = add'8 a 7\ny = sub'8 a 7\n")
            ops := g.Operations()
            Expect(ops[1].Source(1)).To(BeIdenticalTo(ops[2].Source(1)))
        })
    })

    Context("memories", func() {
        It("should declare memories without operations", func() {
            g := parse("m = mem'8 16\naddr = in'4\nv = rd'8 m addr\n")
            Expect(g.Len()).To(Equal(2))
            m := g.Lookup("m")
            Expect(m.IsMem()).To(BeTrue())
            Expect(m.Width()).To(Equal(flo.Width(8)))
            Expect(m.Depth()).To(Equal(flo.Width(16)))
            Expect(g.Operations()[1].Source(0)).To(BeIdenticalTo(m))
        })

        It("should keep unused memories", func() {
            g := parse("m = mem'8 16\n")
            Expect(g.Len()).To(Equal(0))
            Expect(g.Nodes()).To(HaveLen(1))
        })
    })

    Context("malformed input", func() {
        syntax := func(src string) flo.SyntaxError {
            var se flo.SyntaxError
            _, err := flo.Parse(strings.NewReader(src))
            ExpectWithOffset(1, err).To(HaveOccurred())
            ExpectWithOffset(1, errors.As(err, &se)).To(BeTrue())
            return se
        }

        It("should reject redefinitions", func() {
            se := syntax("a = in'8\n\nb = in'8\na = not'8 b\n")
            Expect(se.Line).To(Equal(4))
            Expect(se.Reason).To(ContainSubstring("redefinition of 'a'"))
        })

        It("should reject unknown opcodes", func() {
            se := syntax("a = frobnicate'8\n")
            Expect(se.Line).To(Equal(1))
            Expect(se.Reason).To(ContainSubstring("frobnicate"))
        })

        It("should reject lines without an assignment", func() {
            syntax("a in'8 b\n")
            syntax("a =\n")
        })

        It("should reject bad widths", func() {
            syntax("a = in'x\n")
            syntax("a = in'-1\n")
        })

        It("should reject assignments to constants", func() {
            syntax("5 = in'8\n")
        })

        It("should reject bad memory declarations", func() {
            syntax("m = mem'8\n")
            syntax("m = mem'8 deep\n")
        })

        It("should reject bad constants", func() {
            syntax("a = in'8\nx = add'8 a 12ab\n")
        })

        It("should not be an invariant error", func() {
            _, err := flo.Parse(strings.NewReader("a = in'8\na = in'8\n"))
            Expect(flo.IsInvariant(err)).To(BeFalse())
        })
    })
})
