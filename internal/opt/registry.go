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
    `time`

    `github.com/cloudwego/floopt/flo`
    `github.com/cloudwego/floopt/internal/opts`
    `github.com/davecgh/go-spew/spew`
)

var _DumpConfig = spew.ConfigState {
    Indent                  : "    ",
    SortKeys                : true,
    DisableCapacities       : true,
    DisablePointerAddresses : true,
}

// Registry holds the passes of every stage. All the registrations must be
// done before the first Run, the registry is sealed after that.
type Registry struct {
    nb     int
    sealed bool
    passes [_StageMax][]Pass
}

// NewRegistry registers every pass of the table, in table order.
func NewRegistry(table []PassDescriptor) *Registry {
    ret := new(Registry)
    for _, p := range table {
        ret.Register(p.Pass, p.Stage)
    }
    return ret
}

// Register appends p to the passes of stage s.
func (self *Registry) Register(p Pass, s Stage) {
    if self.sealed {
        panic("opt: register after the pipeline has started: " + p.Name())
    } else if s >= _StageMax {
        panic("opt: invalid stage: " + s.String())
    } else {
        self.nb++
        self.passes[s] = append(self.passes[s], p)
    }
}

// PassesFor returns the passes of stage s in registration order.
func (self *Registry) PassesFor(s Stage) []Pass {
    if s >= _StageMax {
        return nil
    } else {
        return append([]Pass(nil), self.passes[s]...)
    }
}

// Run threads g through every pass of every stage, lowest stage first. Each
// pass runs exactly once per registration.
func (self *Registry) Run(g *flo.Graph, o *opts.Options) (*flo.Graph, error) {
    var err error
    var out *flo.Graph

    /* no more registrations from now on */
    self.sealed = true
    stats := make([]PassStat, 0, self.nb)

    /* run every stage in order */
    for _, s := range Stages() {
        for _, p := range self.passes[s] {
            st := PassStat {
                Stage : s,
                Name  : p.Name(),
                OpsIn : g.Len(),
            }

            /* apply the pass */
            t0 := time.Now()
            out, err = p.Apply(g)

            /* pass failures are not recoverable */
            if err != nil {
                return nil, fmt.Errorf("%s: %w", p.Name(), err)
            }

            /* record the statistics */
            g = out
            st.OpsOut = g.Len()
            st.Elapsed = time.Since(t0)
            stats = append(stats, st)

            /* log and dump the intermediate graph */
            o.Log().Debug("pass finished",
                "stage"   , s.String(),
                "pass"    , st.Name,
                "ops_in"  , st.OpsIn,
                "ops_out" , st.OpsOut,
                "elapsed" , st.Elapsed,
            )

            /* dump the graph if requested */
            if o.GraphDump != nil {
                fmt.Fprintf(o.GraphDump, "--- after %s (%s)\n", st.Name, s)
                _DumpConfig.Fdump(o.GraphDump, g)
            }
        }
    }

    /* keep the statistics of the last run */
    setLastStats(stats)

    /* print the diagnostics if requested */
    if o.Diagnostics != nil {
        RenderStats(o.Diagnostics, stats)
    }

    return g, nil
}
