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
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/floopt/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithWorkers sets how many connected components the balancing passes
// rewrite concurrently.
//
// The output does not depend on this option, only the running time does.
//
// Set this option to "0" uses one worker per logical CPU core.
//
// The default value of this option is "1", which can also be configured with
// the `FLOOPT_WORKERS` environment variable.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("floopt: invalid worker count: %d", n))
	} else {
		return func(o *opts.Options) { o.Workers = n }
	}
}

// WithDiagnostics prints a table of per-pass statistics to w after every run.
//
// Setting the `FLOOPT_DIAGNOSTICS` environment variable to non-zero enables
// this option with os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(o *opts.Options) { o.Diagnostics = w }
}

// WithGraphDump dumps the intermediate graph to w after every pass.
//
// Setting the `FLOOPT_DUMP_GRAPHS` environment variable to non-zero enables
// this option with os.Stderr.
func WithGraphDump(w io.Writer) Option {
	return func(o *opts.Options) { o.GraphDump = w }
}

// WithLogger sets the logger the pipeline reports to, slog.Default() is used
// when it's not set.
func WithLogger(l *slog.Logger) Option {
	return func(o *opts.Options) { o.Logger = l }
}
