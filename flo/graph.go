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

// Graph is an immutable, ordered list of operations together with every node
// they reference. Passes never modify a Graph, they build a new one with a
// Builder instead.
type Graph struct {
    ops   []*Operation
    nodes []*Node
    names map[string]*Node
}

var _EmptyGraph = NewBuilder().Build()

// Empty returns the graph with no operations and no nodes.
func Empty() *Graph {
    return _EmptyGraph
}

func (self *Graph) Len() int {
    return len(self.ops)
}

// Operations returns a copy of the operation list, in graph order.
func (self *Graph) Operations() []*Operation {
    return append([]*Operation(nil), self.ops...)
}

// Nodes returns a copy of the node list. Nodes are ordered by their first
// reference from an operation, followed by the declared-only nodes.
func (self *Graph) Nodes() []*Node {
    return append([]*Node(nil), self.nodes...)
}

// Lookup finds a node by name, it returns nil if there is no such node.
func (self *Graph) Lookup(name string) *Node {
    return self.names[name]
}

func (self *Graph) HasName(name string) bool {
    _, ok := self.names[name]
    return ok
}

// Producers maps every node to the operation that defines it. It fails if
// more than one operation defines the same node.
func (self *Graph) Producers() (map[*Node]*Operation, error) {
    ret := make(map[*Node]*Operation, len(self.ops))
    for _, op := range self.ops {
        if _, ok := ret[op.d]; ok {
            return nil, ERedefined("graph", op.d)
        } else {
            ret[op.d] = op
        }
    }
    return ret, nil
}

func (self *Graph) String() string {
    buf := make([]string, 0, len(self.ops))
    for _, op := range self.ops {
        buf = append(buf, "    " + op.String())
    }
    return fmt.Sprintf(
        "Graph {\n%s\n}",
        strings.Join(buf, "\n"),
    )
}

// Builder accumulates operations for a new Graph.
type Builder struct {
    ops   []*Operation
    decl  []*Node
}

// NewBuilder starts an empty graph.
func NewBuilder() *Builder {
    return new(Builder)
}

// Add appends an operation to the graph being built.
func (self *Builder) Add(op *Operation) {
    self.ops = append(self.ops, op)
}

// Declare records a node that may not be referenced by any operation, such as
// a memory, so it survives in the node list of the built graph.
func (self *Builder) Declare(node *Node) {
    self.decl = append(self.decl, node)
}

// Len returns the number of operations added so far.
func (self *Builder) Len() int {
    return len(self.ops)
}

// Build freezes the builder content into a Graph. The builder may keep being
// used afterwards, it does not share any state with the returned graph.
func (self *Builder) Build() *Graph {
    ret := &Graph {
        ops   : append([]*Operation(nil), self.ops...),
        names : make(map[string]*Node),
    }

    /* visited set of nodes */
    seen := make(map[*Node]struct{})
    add := func(node *Node) {
        if _, ok := seen[node]; !ok {
            seen[node] = struct{}{}
            ret.nodes = append(ret.nodes, node)

            /* first node with a name wins the lookup */
            if _, ok = ret.names[node.name]; !ok {
                ret.names[node.name] = node
            }
        }
    }

    /* every node referenced by an operation, in order */
    for _, op := range ret.ops {
        add(op.d)
        for _, s := range op.s {
            add(s)
        }
    }

    /* nodes that were declared explicitly */
    for _, node := range self.decl {
        add(node)
    }

    return ret
}
