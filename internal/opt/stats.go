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
    `io`
    `sync`
    `time`

    `github.com/jedib0t/go-pretty/v6/table`
)

// PassStat records one execution of a pass.
type PassStat struct {
    Stage   Stage
    Name    string
    OpsIn   int
    OpsOut  int
    Elapsed time.Duration
}

var (
    statsLock sync.Mutex
    lastStats []PassStat
)

func setLastStats(v []PassStat) {
    statsLock.Lock()
    lastStats = v
    statsLock.Unlock()
}

// LastStats returns the statistics of the most recent pipeline run. Every run
// replaces the whole record, so concurrent runs never mix: the last one to
// finish wins.
func LastStats() []PassStat {
    statsLock.Lock()
    defer statsLock.Unlock()
    return append([]PassStat(nil), lastStats...)
}

// RenderStats prints stats as a table.
func RenderStats(w io.Writer, stats []PassStat) {
    var total time.Duration
    tab := table.NewWriter()
    tab.SetOutputMirror(w)
    tab.AppendHeader(table.Row { "#", "Stage", "Pass", "Ops In", "Ops Out", "Delta", "Elapsed" })

    /* one row per pass */
    for i, st := range stats {
        total += st.Elapsed
        tab.AppendRow(table.Row { i, st.Stage, st.Name, st.OpsIn, st.OpsOut, st.OpsOut - st.OpsIn, st.Elapsed })
    }

    /* overall change */
    if n := len(stats); n != 0 {
        tab.AppendFooter(table.Row { "", "", "total", stats[0].OpsIn, stats[n - 1].OpsOut, stats[n - 1].OpsOut - stats[0].OpsIn, total })
    }

    /* draw the table */
    tab.Render()
}
