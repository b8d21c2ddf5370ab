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
    `bytes`
    `os`
    `path/filepath`
    `strings`

    `github.com/cloudwego/floopt/flo`
    . `github.com/onsi/ginkgo/v2`
    . `github.com/onsi/gomega`
)

const _Sample = `# sample
a = in'8
m = mem'8 16
b = in'4
v = rd'8 m b
x = and'8 a v
o = out'8 x
`

var _ = Describe("Write", func() {
    var buf *bytes.Buffer

    BeforeEach(func() {
        buf = new(bytes.Buffer)
    })

    It("should write memories before operations", func() {
        Expect(flo.Write(buf, parse(_Sample))).To(Succeed())
        Expect(buf.String()).To(Equal(strings.Join([]string {
            "m = mem'8 16",
            "a = in'8",
            "b = in'4",
            "v = rd'8 m b",
            "x = and'8 a v",
            "o = out'8 x",
        }, "\n") + "\n"))
    })

    It("should read back what it wrote", func() {
        Expect(flo.Write(buf, parse(_Sample))).To(Succeed())
        first := buf.String()
        buf.Reset()
        Expect(flo.Write(buf, parse(first))).To(Succeed())
        Expect(buf.String()).To(Equal(first))
    })

    It("should refuse operands with unknown widths", func() {
        err := flo.Write(buf, parse("x = not'8 ghost\no = out'8 x\n"))
        Expect(err).To(HaveOccurred())
        Expect(flo.IsInvariant(err)).To(BeTrue())
        Expect(err.Error()).To(ContainSubstring("ghost"))
        Expect(buf.Len()).To(BeZero())
    })

    It("should refuse operations with unknown widths", func() {
        err := flo.Write(buf, parse("a = in'8\nb = not a\n"))
        Expect(flo.IsInvariant(err)).To(BeTrue())
    })

    It("should refuse memories with unknown widths", func() {
        err := flo.Check(parse("m = mem 16\n"))
        Expect(flo.IsInvariant(err)).To(BeTrue())
    })

    It("should accept the empty graph", func() {
        Expect(flo.Write(buf, flo.Empty())).To(Succeed())
        Expect(buf.Len()).To(BeZero())
    })
})

var _ = Describe("WriteFile", func() {
    var dir string

    BeforeEach(func() {
        dir = GinkgoT().TempDir()
    })

    It("should create the file", func() {
        fn := filepath.Join(dir, "out.flo")
        Expect(flo.WriteFile(fn, parse("a = in'8\no = out'8 a\n"))).To(Succeed())
        data, err := os.ReadFile(fn)
        Expect(err).NotTo(HaveOccurred())
        Expect(string(data)).To(Equal("a = in'8\no = out'8 a\n"))
    })

    It("should not create the file on failure", func() {
        fn := filepath.Join(dir, "out.flo")
        Expect(flo.WriteFile(fn, parse("o = out'8 ghost\n"))).NotTo(Succeed())
        _, err := os.Stat(fn)
        Expect(os.IsNotExist(err)).To(BeTrue())
    })

    It("should round trip through ParseFile", func() {
        fn := filepath.Join(dir, "out.flo")
        Expect(flo.WriteFile(fn, parse(_Sample))).To(Succeed())
        g, err := flo.ParseFile(fn)
        Expect(err).NotTo(HaveOccurred())
        Expect(lines(g)).To(Equal(lines(parse(_Sample))))
    })
})
