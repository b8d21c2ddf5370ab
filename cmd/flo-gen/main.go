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

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	gofakeit "github.com/brianvoe/gofakeit/v6"
	"github.com/cloudwego/floopt"
	"github.com/cloudwego/floopt/flo"
	"github.com/cloudwego/floopt/fuzz"
	"github.com/tebeka/atexit"
)

var (
	OutputDir  string
	MaxFileNum int64
	NumOps     int
	Seed       int64
	Verify     bool
)

func init() {
	flag.StringVar(&OutputDir, "out", "testdata", "output directory")
	flag.Int64Var(&MaxFileNum, "max-file-num", 16, "number of circuits to generate")
	flag.IntVar(&NumOps, "ops", 256, "operations per circuit")
	flag.Int64Var(&Seed, "seed", 0, "seed of the first circuit, 0 picks a random one")
	flag.BoolVar(&Verify, "verify", false, "optimize every circuit and check the result")
}

func checkArgs() {
	if OutputDir == "" || MaxFileNum <= 0 || NumOps < 0 {
		flag.Usage()
		atexit.Exit(1)
	}
}

func verify(g *flo.Graph) error {
	r, err := floopt.Optimize(g)
	if err != nil {
		return err
	}
	return fuzz.Check(g, r)
}

func main() {
	flag.Parse()
	checkArgs()

	// random seed unless one was given
	if Seed == 0 {
		Seed = gofakeit.New(0).Int64()
	}

	// create the output directory
	if err := os.MkdirAll(OutputDir, 0o755); err != nil {
		slog.Error("create output directory failed", "dir", OutputDir, "error", err)
		atexit.Exit(1)
	}

	// one seed per circuit, so that every file can be reproduced alone
	for no := int64(0); no < MaxFileNum; no++ {
		seed := Seed + no
		g := fuzz.Generate(gofakeit.New(seed), fuzz.Config{Ops: NumOps})
		fn := filepath.Join(OutputDir, strconv.FormatInt(seed, 10)+".flo")

		// check the optimizer before writing anything
		if Verify {
			if err := verify(g); err != nil {
				slog.Error("verify circuit failed", "seed", seed, "error", err)
				atexit.Exit(1)
			}
		}

		// write the circuit
		if err := flo.WriteFile(fn, g); err != nil {
			slog.Error("write circuit failed", "file", fn, "error", err)
			atexit.Exit(1)
		}
	}

	fmt.Printf("generated %d circuits in %s\n", MaxFileNum, OutputDir)
	atexit.Exit(0)
}
