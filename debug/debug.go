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

package debug

import (
	"io"
	"time"

	"github.com/cloudwego/floopt/internal/opt"
)

// A Stats records statistics about the most recent optimizer run.
type Stats struct {
	Passes []PassStats
}

// A PassStats records one execution of a pass.
type PassStats struct {
	Stage   string
	Name    string
	OpsIn   int
	OpsOut  int
	Elapsed time.Duration
}

// Removed returns how many operations the pass removed, negative when the
// pass added operations.
func (self PassStats) Removed() int {
	return self.OpsIn - self.OpsOut
}

// GetStats returns statistics of the most recent optimizer run. Statistics
// are kept process-wide: when several runs overlap, the last one to complete
// wins, and the result always describes a single run.
func GetStats() Stats {
	src := opt.LastStats()
	ret := Stats{Passes: make([]PassStats, 0, len(src))}

	/* convert every record */
	for _, st := range src {
		ret.Passes = append(ret.Passes, PassStats{
			Stage:   st.Stage.String(),
			Name:    st.Name,
			OpsIn:   st.OpsIn,
			OpsOut:  st.OpsOut,
			Elapsed: st.Elapsed,
		})
	}

	return ret
}

// Render prints the statistics of the most recent optimizer run as a table,
// with the same last-run-wins rule as GetStats.
func Render(w io.Writer) {
	opt.RenderStats(w, opt.LastStats())
}
