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

package flo

import (
    `fmt`
    `strings`
)

// Operation produces exactly one destination node from an ordered list of
// source nodes. Operations are immutable, a pass that wants to change one
// creates a new Operation instead.
type Operation struct {
    d  *Node
    w  Width
    op Opcode
    s  []*Node
}

func NewOperation(d *Node, w Width, op Opcode, s ...*Node) *Operation {
    return &Operation {
        d  : d,
        w  : w,
        op : op,
        s  : append([]*Node(nil), s...),
    }
}

func (self *Operation) D() *Node          { return self.d }
func (self *Operation) Op() Opcode        { return self.op }
func (self *Operation) Width() Width      { return self.w }
func (self *Operation) NumSources() int   { return len(self.s) }
func (self *Operation) Source(i int) *Node { return self.s[i] }

// Sources returns a copy of the source list.
func (self *Operation) Sources() []*Node {
    return append([]*Node(nil), self.s...)
}

// Operands returns the destination followed by every source.
func (self *Operation) Operands() []*Node {
    ret := make([]*Node, 0, len(self.s) + 1)
    ret = append(ret, self.d)
    return append(ret, self.s...)
}

func (self *Operation) String() string {
    buf := make([]string, 0, len(self.s) + 3)
    buf = append(buf, self.d.Name(), "=")

    /* opcode with the optional width */
    if self.w.Known() {
        buf = append(buf, fmt.Sprintf("%s'%d", self.op, self.w))
    } else {
        buf = append(buf, self.op.String())
    }

    /* every source operand */
    for _, v := range self.s {
        buf = append(buf, v.Name())
    }

    /* join them together */
    return strings.Join(buf, " ")
}
