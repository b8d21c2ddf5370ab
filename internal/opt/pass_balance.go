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
    `sync`

    `github.com/bytedance/gopkg/util/gopool`
    `github.com/cloudwego/floopt/flo`
    `github.com/oleiade/lane`
)

const (
    _MinBalanceOps = 3
)

// Balance rewrites chains of one associative opcode into balanced trees over
// the same leaves, so that the depth of the chain becomes logarithmic.
type Balance struct {
    op      flo.Opcode
    name    string
    workers int
}

// NewBalance creates a balancer for op, analyzing up to workers components
// concurrently.
func NewBalance(op flo.Opcode, workers int) *Balance {
    if !op.IsAssociative() {
        panic("balance: not an associative opcode: " + op.String())
    } else {
        return &Balance { op: op, name: "balance_bitwise_op: " + op.String(), workers: workers }
    }
}

func (self *Balance) Name() string {
    return self.name
}

func (self *Balance) matches(op *flo.Operation, _ *flo.Node, _ *flo.Node) bool {
    return op.Op() == self.op
}

func (self *Balance) Apply(g *flo.Graph) (*flo.Graph, error) {
    cc, err := FindComponents(g, self.matches)
    if err != nil {
        return nil, err
    }

    /* rewrite every component */
    nb := cc.Len()
    ret := make([][]*flo.Operation, nb)
    errs := make([]error, nb)

    /* components are independent of each other */
    if self.workers <= 1 || nb <= 1 {
        for id := 0; id < nb; id++ {
            ret[id], errs[id] = self.protect(id, func() ([]*flo.Operation, error) { return self.fill(g, id, cc.Ops(id)) })
        }
    } else {
        var wg sync.WaitGroup
        pool := gopool.NewPool("floopt.balance", int32(self.workers), gopool.NewConfig())

        /* one task per component, each one with its own result slot */
        for id := 0; id < nb; id++ {
            wg.Add(1)
            id := id
            pool.Go(func() {
                defer wg.Done()
                ret[id], errs[id] = self.protect(id, func() ([]*flo.Operation, error) { return self.fill(g, id, cc.Ops(id)) })
            })
        }

        /* wait for all the tasks */
        wg.Wait()
    }

    /* emit in component order */
    out := flo.NewBuilder()
    for id := 0; id < nb; id++ {
        if errs[id] != nil {
            return nil, errs[id]
        }
        for _, op := range ret[id] {
            out.Add(op)
        }
    }

    /* keep the memories */
    declareMemories(out, g)
    return out.Build(), nil
}

// protect runs fn, reporting a panic as an InvariantError. The pool drops
// panicking tasks, so a component would otherwise vanish from the result.
func (self *Balance) protect(id int, fn func() ([]*flo.Operation, error)) (ret []*flo.Operation, err error) {
    defer func() {
        if v := recover(); v != nil {
            ret, err = nil, flo.EInvariant(self.name, nil, fmt.Sprintf("component %d: %v", id, v))
        }
    }()
    return fn()
}

func (self *Balance) fill(g *flo.Graph, id int, ops []*flo.Operation) ([]*flo.Operation, error) {
    var tmp *flo.Temps
    var ret []*flo.Operation

    /* small components can't be made any shallower */
    if len(ops) < _MinBalanceOps {
        return ops, nil
    }

    /* producers within the component, and every consumed node */
    used := make(map[*flo.Node]bool, len(ops))
    defs := make(map[*flo.Node]*flo.Operation, len(ops))

    /* Phase 1: index the component */
    for _, op := range ops {
        defs[op.D()] = op
        for _, v := range op.Sources() {
            used[v] = true
        }
    }

    /* emits an operation at most once */
    done := make(map[*flo.Operation]bool, len(ops))
    emit := func(op *flo.Operation) {
        if !done[op] {
            done[op] = true
            ret = append(ret, op)
        }
    }

    /* Phase 2: rebuild the tree of every output */
    for _, op := range ops {
        if op.Op() != self.op || used[op.D()] {
            continue
        }

        /* find all the leaves of this output */
        leaves, err := self.leaves(op, defs)
        if err != nil {
            return nil, err
        }

        /* every leaf cancelled out, nothing to rebalance */
        if len(leaves) == 0 {
            emit(op)
            continue
        }

        /* the producers of leaves go first */
        for _, v := range leaves {
            if p, ok := defs[v]; ok {
                emit(p)
            }
        }

        /* one namespace of temporaries per component */
        if tmp == nil {
            tmp = flo.NewTemps(g, id)
        }

        /* combine leaves pairwise, in FIFO order */
        q := lane.NewQueue()
        for _, v := range leaves {
            q.Enqueue(v)
        }

        /* until only the root remains */
        for q.Size() > 1 {
            x := q.Dequeue().(*flo.Node)
            y := q.Dequeue().(*flo.Node)
            t := tmp.Make(x)
            ret = append(ret, flo.NewOperation(t, t.Width(), self.op, x, y))
            q.Enqueue(t)
        }

        /* the output still holds the result */
        done[op] = true
        ret = append(ret, flo.NewOperation(op.D(), op.Width(), flo.OP_mov, q.Dequeue().(*flo.Node)))
    }

    /* Phase 3: non-output operations are kept as they are, dead code
     * elimination removes the ones nobody reads any more */
    for _, op := range ops {
        emit(op)
    }

    return ret, nil
}

type _Frame struct {
    op *flo.Operation
    i  int
}

// leaves finds the leaf inputs of the tree rooted at root. A leaf is a source
// that is not produced by an operation of the balanced opcode. Leaves are
// returned in left-to-right order. For idempotent opcodes every distinct leaf
// is returned once, for XOR only the leaves reachable through an odd number of
// paths are returned, since the others cancel out.
func (self *Balance) leaves(root *flo.Operation, defs map[*flo.Node]*flo.Operation) ([]*flo.Node, error) {
    var post []*flo.Operation
    var order []*flo.Node

    /* traversal state */
    st := lane.NewStack()
    seen := map[*flo.Node]bool{}
    state := map[*flo.Operation]int{ root: 1 }

    /* Phase 1: depth-first search over the matching operations */
    for st.Push(&_Frame { op: root }); !st.Empty(); {
        fp := st.Head().(*_Frame)

        /* all sources visited */
        if fp.i == fp.op.NumSources() {
            st.Pop()
            state[fp.op] = 2
            post = append(post, fp.op)
            continue
        }

        /* visit the next source */
        v := fp.op.Source(fp.i)
        fp.i++

        /* leaves are recorded on first sight */
        if p, ok := defs[v]; !ok || p.Op() != self.op {
            if !seen[v] {
                seen[v] = true
                order = append(order, v)
            }
            continue
        }

        /* descend into the producer */
        switch state[defs[v]] {
            case 0: state[defs[v]] = 1; st.Push(&_Frame { op: defs[v] })
            case 1: return nil, flo.EInvariant(self.name, v, "combinational loop")
        }
    }

    /* Phase 2: propagate path counts top-down (reversed post-order) */
    mult := map[*flo.Node]uint8{ root.D(): 1 }
    for i := len(post) - 1; i >= 0; i-- {
        op := post[i]
        for _, v := range op.Sources() {
            mult[v] = self.combine(mult[v], mult[op.D()])
        }
    }

    /* Phase 3: keep the leaves that still contribute */
    ret := order[:0]
    for _, v := range order {
        if mult[v] != 0 {
            ret = append(ret, v)
        }
    }

    return ret, nil
}

func (self *Balance) combine(acc uint8, v uint8) uint8 {
    if self.op.IsIdempotent() {
        return acc | v
    } else {
        return acc ^ v
    }
}

func declareMemories(b *flo.Builder, g *flo.Graph) {
    for _, v := range g.Nodes() {
        if v.IsMem() {
            b.Declare(v)
        }
    }
}
