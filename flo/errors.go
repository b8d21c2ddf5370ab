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
    `errors`
    `fmt`
)

// SyntaxError occures when the textual form of a graph cannot be parsed.
type SyntaxError struct {
    Line   int
    Src    string
    Reason string
}

func (self SyntaxError) Error() string {
    return fmt.Sprintf("Syntax error at line %d: %s: %q", self.Line, self.Reason, self.Src)
}

// InvariantError occures when a graph breaks an invariant the optimizer relies
// on, either because the input was malformed in a way the reader could not see,
// or because of a bug in one of the passes.
type InvariantError struct {
    Where  string
    Node   string
    Reason string
}

func (self InvariantError) Error() string {
    if self.Node != "" {
        return fmt.Sprintf("InvariantError(%s): node '%s': %s", self.Where, self.Node, self.Reason)
    } else {
        return fmt.Sprintf("InvariantError(%s): %s", self.Where, self.Reason)
    }
}

// IsInvariant reports whether any error in err's chain is an InvariantError.
func IsInvariant(err error) bool {
    var ie InvariantError
    return errors.As(err, &ie)
}

func ESyntax(line int, src string, reason string) SyntaxError {
    return SyntaxError {
        Line   : line,
        Src    : src,
        Reason : reason,
    }
}

func EInvariant(where string, node *Node, reason string) InvariantError {
    if node == nil {
        return InvariantError { Where: where, Reason: reason }
    } else {
        return InvariantError { Where: where, Node: node.Name(), Reason: reason }
    }
}

func ERedefined(where string, node *Node) InvariantError {
    return EInvariant(where, node, "defined by more than one operation")
}

func EUnknownWidth(node *Node, op *Operation) InvariantError {
    return EInvariant("writer", node, fmt.Sprintf("unknown width in '%s'", op))
}
