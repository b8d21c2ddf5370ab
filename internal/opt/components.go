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

    `github.com/cloudwego/floopt/flo`
    `github.com/oleiade/lane`
)

// EdgeFunc decides whether the edge from source node `from` to the
// destination `to` of op joins both nodes into one component.
type EdgeFunc func(op *flo.Operation, from *flo.Node, to *flo.Node) bool

// Components is a partition of the nodes of a graph, where two nodes share a
// component if a path of matching edges links them, regardless of direction.
type Components struct {
    comp  map[*flo.Node]int
    nodes [][]*flo.Node
    ops   [][]*flo.Operation
}

// FindComponents partitions the nodes of g along the edges accepted by fn.
// Every node belongs to exactly one component, the components are numbered in
// the order their first node appears in g.
func FindComponents(g *flo.Graph, fn EdgeFunc) (*Components, error) {
    ops := g.Operations()
    incoming := make(map[*flo.Node][]*flo.Node)
    outgoing := make(map[*flo.Node][]*flo.Node)

    /* Phase 1: build the adjacency lists with the matching edges only, so
     * that the predicate runs exactly once per (operation, source) pair */
    for _, op := range ops {
        to := op.D()
        for _, from := range op.Sources() {
            if fn(op, from, to) {
                incoming[to] = append(incoming[to], from)
                outgoing[from] = append(outgoing[from], to)
            }
        }
    }

    /* Phase 2: every node has at most one producer */
    if _, err := g.Producers(); err != nil {
        return nil, err
    }

    /* the result */
    id := 0
    q := lane.NewQueue()
    cc := &Components { comp: make(map[*flo.Node]int) }

    /* Phase 3: grow a component from every node that is not yet placed */
    for _, seed := range g.Nodes() {
        var err error
        var grown bool

        /* already placed by an earlier seed */
        if _, ok := cc.comp[seed]; ok {
            continue
        }

        /* places a node into the current component */
        insert := func(node *flo.Node) {
            if c, ok := cc.comp[node]; !ok {
                if !grown {
                    cc.nodes = append(cc.nodes, nil)
                }
                grown = true
                cc.comp[node] = id
                cc.nodes[id] = append(cc.nodes[id], node)
                q.Enqueue(node)
            } else if c != id && err == nil {
                err = eCrossComponent(seed, node, c, id)
            }
        }

        /* breadth-first search, treating edges as undirected */
        for insert(seed); !q.Empty(); {
            cur := q.Dequeue().(*flo.Node)
            for _, v := range incoming[cur] { insert(v) }
            for _, v := range outgoing[cur] { insert(v) }
        }

        /* the traversal must never leave the current component */
        if err != nil {
            return nil, err
        }

        /* only a non-empty component takes an ID */
        if grown {
            id++
        }
    }

    /* Phase 4: assign operations by their destination, in graph order */
    cc.ops = make([][]*flo.Operation, id)
    for _, op := range ops {
        if c, ok := cc.comp[op.D()]; !ok {
            return nil, flo.EInvariant("components", op.D(), "destination not in any component")
        } else {
            cc.ops[c] = append(cc.ops[c], op)
        }
    }

    return cc, nil
}

// Len returns the number of components, IDs range from 0 to Len() - 1.
func (self *Components) Len() int {
    return len(self.nodes)
}

// Of returns the component ID of node.
func (self *Components) Of(node *flo.Node) (int, bool) {
    id, ok := self.comp[node]
    return id, ok
}

// Nodes returns the members of component id, in discovery order.
func (self *Components) Nodes(id int) []*flo.Node {
    return self.nodes[id]
}

// Ops returns the operations that produce a member of component id, in graph
// order.
func (self *Components) Ops(id int) []*flo.Operation {
    return self.ops[id]
}

func eCrossComponent(seed *flo.Node, node *flo.Node, has int, want int) error {
    return flo.EInvariant("components", node, fmt.Sprintf(
        "reached from '%s' in component %d, but already placed in component %d",
        seed.Name(),
        want,
        has,
    ))
}
