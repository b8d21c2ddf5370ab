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

	gofakeit "github.com/brianvoe/gofakeit/v6"
	"github.com/cloudwego/floopt/flo"
)

// DefaultOpcodes is the opcode mix of generated circuits, weighted towards
// the bitwise operators the balancer rewrites.
var DefaultOpcodes = []flo.Opcode{
	flo.OP_and,
	flo.OP_and,
	flo.OP_or,
	flo.OP_xor,
	flo.OP_mov,
	flo.OP_add,
	flo.OP_not,
}

// SingleBitwiseOpcodes has no MOV and a single bitwise operator, so the
// default pipeline never builds a MOV chain from it and every source of the
// result keeps a producer.
var SingleBitwiseOpcodes = []flo.Opcode{
	flo.OP_and,
	flo.OP_and,
	flo.OP_add,
	flo.OP_not,
	flo.OP_neg,
}

// Config controls the shape of generated circuits. Zero values pick
// defaults.
type Config struct {
	Inputs  int          // 2 to 5 when zero
	Ops     int          // operations between the inputs and the outputs
	Outputs int          // 1 to 3 when zero
	Width   flo.Width    // 8 when zero
	Opcodes []flo.Opcode // DefaultOpcodes when nil
}

func arity(op flo.Opcode) int {
	switch op {
	case flo.OP_mov, flo.OP_not, flo.OP_neg, flo.OP_log2:
		return 1
	case flo.OP_mux:
		return 3
	default:
		return 2
	}
}

// Generate builds a random acyclic circuit: inputs named "in<i>", operations
// named "n<i>" that only read older nodes or the constant "1", and outputs
// named "out<i>". The same faker seed always yields the same circuit.
func Generate(f *gofakeit.Faker, cfg Config) *flo.Graph {
	b := flo.NewBuilder()
	one := flo.NewConst("1", 1)

	// fill in the defaults
	if cfg.Inputs <= 0 {
		cfg.Inputs = f.IntRange(2, 5)
	}
	if cfg.Outputs <= 0 {
		cfg.Outputs = f.IntRange(1, 3)
	}
	if cfg.Width <= 0 {
		cfg.Width = 8
	}
	if len(cfg.Opcodes) == 0 {
		cfg.Opcodes = DefaultOpcodes
	}

	// circuit inputs
	pool := make([]*flo.Node, 0, cfg.Inputs+cfg.Ops)
	for i := cfg.Inputs; i > 0; i-- {
		v := flo.NewNode(fmt.Sprintf("in%d", i), cfg.Width)
		b.Add(flo.NewOperation(v, cfg.Width, flo.OP_in))
		pool = append(pool, v)
	}

	// picks an existing node, sometimes the constant
	pick := func() *flo.Node {
		if f.IntRange(0, 9) == 0 {
			return one
		}
		return pool[f.IntRange(0, len(pool)-1)]
	}

	// random operations
	for i := 0; i < cfg.Ops; i++ {
		op := cfg.Opcodes[f.IntRange(0, len(cfg.Opcodes)-1)]
		sv := make([]*flo.Node, arity(op))
		for j := range sv {
			sv[j] = pick()
		}
		v := flo.NewNode(fmt.Sprintf("n%d", i), cfg.Width)
		b.Add(flo.NewOperation(v, cfg.Width, op, sv...))
		pool = append(pool, v)
	}

	// circuit outputs
	for i := cfg.Outputs; i > 0; i-- {
		v := flo.NewNode(fmt.Sprintf("out%d", i), cfg.Width)
		b.Add(flo.NewOperation(v, cfg.Width, flo.OP_out, pool[f.IntRange(0, len(pool)-1)]))
	}

	return b.Build()
}
