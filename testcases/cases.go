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

package testcases

import "seehuhn.de/go/generative/param"

var waveCases = []TestCase{
	{Name: "basic", Generator: "wave", Params: base, Width: 200, Height: 120, Seed: "wave"},
	{
		Name:      "animated",
		Generator: "wave",
		Params: with(func(p *param.Parameters) {
			p.Animation = &param.Animation{Speed: 2}
		}),
		Width: 200, Height: 120, Time: 3.25, Seed: "wave",
	},
	{Name: "ripples", Generator: "wave", Mode: "ripples", Params: base, Width: 160, Height: 160, Seed: "ripples"},
	{Name: "flow", Generator: "wave", Mode: "flow", Params: base, Width: 160, Height: 100, Time: 1, Seed: "flow"},
}

var circleCases = []TestCase{
	{Name: "basic", Generator: "circle", Params: base, Width: 128, Height: 128, Seed: "circle"},
	{
		Name:      "palette",
		Generator: "circle",
		Params: with(func(p *param.Parameters) {
			p.Color = &param.Color{Hue: 30, Palette: []string{"#e63946", "#f1faee", "#a8dadc"}}
		}),
		Width: 128, Height: 128, Seed: "circle",
	},
	{Name: "constellation", Generator: "circle", Mode: "constellation", Params: base, Width: 160, Height: 120, Seed: "stars"},
}

var triangleCases = []TestCase{
	{Name: "basic", Generator: "triangle", Params: base, Width: 128, Height: 128, Seed: "triangle"},
	{
		Name:      "hexagon",
		Generator: "triangle",
		Params: with(func(p *param.Parameters) {
			p.Sides = 6
			p.Rotation = 30
		}),
		Width: 128, Height: 128, Seed: "triangle",
	},
	{
		Name:      "fractal",
		Generator: "triangle",
		Mode:      "fractal",
		Params: with(func(p *param.Parameters) {
			p.Complexity = 0.75
		}),
		Width: 160, Height: 140, Seed: "sierpinski",
	},
}

var infinityCases = []TestCase{
	{Name: "basic", Generator: "infinity", Params: base, Width: 200, Height: 100, Seed: "loop"},
	{Name: "rotations", Generator: "infinity", Mode: "rotations", Params: base, Width: 160, Height: 160, Time: 0.5, Seed: "loop"},
}

var prismCases = []TestCase{
	{Name: "basic", Generator: "prism", Params: base, Width: 128, Height: 128, Seed: "prism"},
	{
		Name:      "array",
		Generator: "prism",
		Mode:      "array",
		Params: with(func(p *param.Parameters) {
			p.Complexity = 0.9
		}),
		Width: 200, Height: 160, Seed: "grid",
	},
}

// extremeCases sit at the borders of the documented parameter ranges.
var extremeCases = []TestCase{
	{
		Name:      "single_layer",
		Generator: "wave",
		Params: with(func(p *param.Parameters) {
			p.Layers = 1
			p.Complexity = 0
		}),
		Width: 64, Height: 64, Seed: "min",
	},
	{
		Name:      "max_layers",
		Generator: "circle",
		Params: with(func(p *param.Parameters) {
			p.Layers = 10
			p.Complexity = 1
			p.Chaos = 1
		}),
		Width: 256, Height: 256, Seed: "max",
	},
	{
		Name:      "no_damping",
		Generator: "triangle",
		Params: with(func(p *param.Parameters) {
			p.Damping = 0
		}),
		Width: 64, Height: 64, Seed: "flat",
	},
	{
		Name:      "huge_amplitude",
		Generator: "infinity",
		Params: with(func(p *param.Parameters) {
			p.Amplitude = 200
			p.Frequency = 10
		}),
		Width: 100, Height: 60, Seed: "loud",
	},
	{
		Name:      "tiny_canvas",
		Generator: "prism",
		Params:    base,
		Width:     8,
		Height:    8,
		Seed:      "tiny",
	},
}
