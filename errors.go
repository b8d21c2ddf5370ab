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

package floopt

import (
    `github.com/cloudwego/floopt/flo`
)

// SyntaxError occures when failed to parse a graph from its textual form.
type SyntaxError = flo.SyntaxError

// InvariantError occures when the optimizer finds a graph that breaks one of
// its invariants (a node defined twice, a node without a producer, an operand
// with an unknown width, etc.). It is never caused by well-formed input.
type InvariantError = flo.InvariantError

// IsInvariant reports whether err was caused by an InvariantError.
func IsInvariant(err error) bool {
    return flo.IsInvariant(err)
}
