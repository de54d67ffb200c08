// seehuhn.de/go/generative - deterministic generative rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package testcases holds named generator scenarios, shared by the tests
// and benchmarks of several packages.
package testcases

import "seehuhn.de/go/generative/param"

// TestCase defines a single generator run.
type TestCase struct {
	Name      string // lowercase a-z and _ only
	Generator string // registered generator name
	Mode      string // alternate mode, empty for the primary mode
	Params    param.Parameters
	Width     int // canvas width in pixels
	Height    int // canvas height in pixels
	Time      float64
	Seed      string
}

// Options returns the generation options of the test case.
func (tc TestCase) Options() param.Options {
	return param.Options{
		Width:  float64(tc.Width),
		Height: float64(tc.Height),
		Time:   tc.Time,
		Seed:   tc.Seed,
		Mode:   tc.Mode,
	}
}

// All contains all test cases, grouped by category.
// The category name is used as a prefix in benchmark and file names.
var All = map[string][]TestCase{
	"wave":     waveCases,
	"circle":   circleCases,
	"triangle": triangleCases,
	"infinity": infinityCases,
	"prism":    prismCases,
	"extreme":  extremeCases,
}

// base is a moderate parameter set; cases derive from it through with.
var base = param.Parameters{
	Frequency:  1.5,
	Amplitude:  40,
	Complexity: 0.5,
	Chaos:      0.2,
	Damping:    0.8,
	Layers:     4,
}

func with(f func(p *param.Parameters)) param.Parameters {
	p := base.Clone()
	f(&p)
	return p
}
