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

package opts

import (
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/cpuid/v2"
)

type Options struct {
	Workers     int
	Diagnostics io.Writer
	GraphDump   io.Writer
	Logger      *slog.Logger
}

// NumWorkers resolves the worker count, 0 means one per logical core.
func (self *Options) NumWorkers() int {
	if self.Workers != 0 {
		return self.Workers
	} else if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	} else {
		return 1
	}
}

// Log returns the configured logger, or the process-wide default one.
func (self *Options) Log() *slog.Logger {
	if self.Logger != nil {
		return self.Logger
	} else {
		return slog.Default()
	}
}

func GetDefaultOptions() Options {
	ret := Options{
		Workers: Workers,
	}

	/* diagnostics and dumps go to stderr when enabled */
	if Diagnostics {
		ret.Diagnostics = os.Stderr
	}
	if DumpGraphs {
		ret.GraphDump = os.Stderr
	}

	return ret
}
