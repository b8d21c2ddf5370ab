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
	"github.com/cloudwego/floopt/flo"
	"github.com/cloudwego/floopt/internal/opt"
	"github.com/cloudwego/floopt/internal/opts"
)

// Version is the version of the optimizer.
const Version = "0.1.0"

// Optimize runs the default pass pipeline over g and returns the optimized
// graph. g itself is left untouched.
func Optimize(g *flo.Graph, options ...Option) (*flo.Graph, error) {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}
	return opt.NewRegistry(opt.Passes(&o)).Run(g, &o)
}

// OptimizeFile reads the graph in file `in`, optimizes it and writes the
// result to file `out`. Nothing is written if any step fails.
func OptimizeFile(in string, out string, options ...Option) error {
	g, err := flo.ParseFile(in)
	if err != nil {
		return err
	}
	if g, err = Optimize(g, options...); err != nil {
		return err
	}
	return flo.WriteFile(out, g)
}
