// Copyright 2022 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fuzz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/floopt/flo"
)

func outputs(g *flo.Graph) []string {
	var ret []string
	for _, op := range g.Operations() {
		if op.Op() == flo.OP_out {
			ret = append(ret, op.D().Name())
		}
	}
	sort.Strings(ret)
	return ret
}

// Check checks that opt is a plausible result of optimizing orig with the
// default pipeline: the same set of outputs, no MOV left, a single producer
// per node, and nothing that would stop the writer.
//
// Check does not require every source to have a producer. MOV elimination
// substitutes one level only, so a chain of MOVs in orig leaves a reader of
// a removed MOV destination in opt. Use CheckProducers for circuits without
// MOV chains.
func Check(orig *flo.Graph, opt *flo.Graph) error {
	want := outputs(orig)
	got := outputs(opt)

	// outputs are never removed nor invented
	if strings.Join(want, ",") != strings.Join(got, ",") {
		return fmt.Errorf("outputs changed: want [%s], got [%s]", strings.Join(want, ","), strings.Join(got, ","))
	}

	// copy propagation runs last
	for _, op := range opt.Operations() {
		if op.Op() == flo.OP_mov {
			return fmt.Errorf("mov left in the result: %s", op)
		}
	}

	// single assignment
	if _, err := opt.Producers(); err != nil {
		return err
	}

	// every width must be known
	return flo.Check(opt)
}

// CheckProducers checks that every source of every operation of g is either
// a constant, a memory, or produced by an operation of g.
func CheckProducers(g *flo.Graph) error {
	defs, err := g.Producers()
	if err != nil {
		return err
	}

	// every source must resolve
	for _, op := range g.Operations() {
		for _, v := range op.Sources() {
			if _, ok := defs[v]; !ok && !v.IsConst() && !v.IsMem() {
				return flo.EInvariant("fuzz", v, fmt.Sprintf("read by '%s' but never produced", op))
			}
		}
	}
	return nil
}
