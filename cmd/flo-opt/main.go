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

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/cloudwego/floopt"
	"github.com/tebeka/atexit"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "flo-opt <in.flo> <out.flo>: Optimizes Flo files")
	fmt.Fprintln(w, "  --help: Prints this help text")
	fmt.Fprintln(w, "  --version: Prints the version of this program in use")
}

func logLevel() slog.Level {
	var lv slog.Level
	if env := os.Getenv("FLOOPT_LOG_LEVEL"); env == "" {
		return slog.LevelWarn
	} else if err := lv.UnmarshalText([]byte(env)); err != nil {
		return slog.LevelWarn
	} else {
		return lv
	}
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var showHelp bool
	var showVersion bool

	/* flag errors are usage errors, not a reason to exit with 2 */
	fs := flag.NewFlagSet("flo-opt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&showHelp, "help", false, "Prints this help text")
	fs.BoolVar(&showVersion, "version", false, "Prints the version of this program in use")

	/* parse the command line */
	if err := fs.Parse(args); errors.Is(err, flag.ErrHelp) {
		usage(stdout)
		return 0
	} else if err != nil {
		fmt.Fprintf(stderr, "flo-opt: %v\n", err)
		usage(stderr)
		return 1
	}

	/* informational flags */
	if showHelp {
		usage(stdout)
		return 0
	}
	if showVersion {
		fmt.Fprintln(stdout, floopt.Version)
		return 0
	}

	/* exactly one input and one output */
	if fs.NArg() != 2 {
		usage(stderr)
		return 1
	}

	/* diagnostics are flushed on every return path */
	diag := bufio.NewWriter(stderr)
	defer diag.Flush()

	/* structured logs go to stderr */
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	/* run the pipeline */
	options := []floopt.Option{floopt.WithLogger(logger)}
	if v, _ := strconv.Atoi(os.Getenv("FLOOPT_DIAGNOSTICS")); v != 0 {
		options = append(options, floopt.WithDiagnostics(diag))
	}

	/* nothing is written to the output unless everything succeeds */
	if err := floopt.OptimizeFile(fs.Arg(0), fs.Arg(1), options...); err != nil {
		if floopt.IsInvariant(err) {
			logger.Error("internal consistency check failed", "input", fs.Arg(0), "error", err)
		}
		fmt.Fprintf(stderr, "flo-opt: %v\n", err)
		return 1
	}

	return 0
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
