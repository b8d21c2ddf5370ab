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

    `github.com/cloudwego/floopt/flo`
    `github.com/cloudwego/floopt/internal/opts`
)

// Pass is a pure transformation from one graph to a new one. A pass must not
// modify the graph it was given, nor keep any state between two calls.
type Pass interface {
    Name() string
    Apply(*flo.Graph) (*flo.Graph, error)
}

// Stage is a slot of the pipeline, every pass of a stage runs before any pass
// of the next one.
type Stage uint8

const (
    Prepare Stage = iota
    Rebalance
    LateDCE
    _StageMax
)

var _StageNames = [_StageMax]string {
    Prepare   : "prepare",
    Rebalance : "rebalance",
    LateDCE   : "late_dce",
}

// Stages returns every stage in pipeline order.
func Stages() []Stage {
    ret := make([]Stage, 0, _StageMax)
    for s := Stage(0); s < _StageMax; s++ {
        ret = append(ret, s)
    }
    return ret
}

func (self Stage) String() string {
    if self < _StageMax {
        return _StageNames[self]
    } else {
        return fmt.Sprintf("stage(%d)", uint8(self))
    }
}

type PassDescriptor struct {
    Pass  Pass
    Stage Stage
}

// Passes returns the default pass table, in registration order.
func Passes(o *opts.Options) []PassDescriptor {
    nw := o.NumWorkers()
    return []PassDescriptor {
        { Stage: Rebalance , Pass: NewBalance(flo.OP_and, nw) },
        { Stage: Rebalance , Pass: NewBalance(flo.OP_or, nw) },
        { Stage: Rebalance , Pass: NewBalance(flo.OP_xor, nw) },
        { Stage: LateDCE   , Pass: new(DCE) },
        { Stage: LateDCE   , Pass: new(MovElim) },
    }
}
