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
)

type Opcode byte

const (
    OP_nop  Opcode = iota   // no operation
    OP_add                  // s0 + s1 -> d
    OP_sub                  // s0 - s1 -> d
    OP_mul                  // s0 * s1 -> d
    OP_div                  // s0 / s1 -> d
    OP_and                  // s0 & s1 -> d
    OP_or                   // s0 | s1 -> d
    OP_xor                  // s0 ^ s1 -> d
    OP_not                  // ^s0 -> d
    OP_neg                  // -s0 -> d
    OP_mov                  // s0 -> d
    OP_out                  // s0 -> d, visible outside of the circuit
    OP_in                   // circuit input -> d
    OP_reg                  // if (s0) s1 -> d on the next cycle
    OP_mux                  // s0 ? s1 : s2 -> d
    OP_eq                   // s0 == s1 -> d
    OP_neq                  // s0 != s1 -> d
    OP_lt                   // s0 <  s1 -> d
    OP_gte                  // s0 >= s1 -> d
    OP_lsh                  // s0 << s1 -> d
    OP_rsh                  // s0 >> s1 -> d
    OP_arsh                 // s0 >>> s1 -> d
    OP_cat                  // {s0, s1} -> d
    OP_rst                  // reset signal -> d
    OP_rd                   // if (s0) s1[s2] -> d
    OP_wr                   // if (s0) s3 -> s1[s2]
    OP_msk                  // s0 & ((1 << width) - 1) -> d
    OP_log2                 // log2(s0) -> d
    _OP_max
)

var _OpNames = [_OP_max]string {
    OP_nop  : "nop",
    OP_add  : "add",
    OP_sub  : "sub",
    OP_mul  : "mul",
    OP_div  : "div",
    OP_and  : "and",
    OP_or   : "or",
    OP_xor  : "xor",
    OP_not  : "not",
    OP_neg  : "neg",
    OP_mov  : "mov",
    OP_out  : "out",
    OP_in   : "in",
    OP_reg  : "reg",
    OP_mux  : "mux",
    OP_eq   : "eq",
    OP_neq  : "neq",
    OP_lt   : "lt",
    OP_gte  : "gte",
    OP_lsh  : "lsh",
    OP_rsh  : "rsh",
    OP_arsh : "arsh",
    OP_cat  : "cat",
    OP_rst  : "rst",
    OP_rd   : "rd",
    OP_wr   : "wr",
    OP_msk  : "msk",
    OP_log2 : "log2",
}

var _OpByName = func() map[string]Opcode {
    ret := make(map[string]Opcode, _OP_max)
    for op, name := range _OpNames {
        ret[name] = Opcode(op)
    }
    return ret
}()

// ParseOpcode looks up an opcode by its textual name.
func ParseOpcode(name string) (Opcode, bool) {
    op, ok := _OpByName[name]
    return op, ok
}

func (self Opcode) String() string {
    if self < _OP_max {
        return _OpNames[self]
    } else {
        return fmt.Sprintf("op(%d)", uint8(self))
    }
}

// IsAssociative reports whether the opcode is an associative and commutative
// binary operator, so that any tree of it over the same leaves is equivalent.
func (self Opcode) IsAssociative() bool {
    switch self {
        case OP_and : return true
        case OP_or  : return true
        case OP_xor : return true
        default     : return false
    }
}

// IsIdempotent reports whether combining a value with itself yields the value.
func (self Opcode) IsIdempotent() bool {
    return self == OP_and || self == OP_or
}
