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

// Package generators contains the built-in generative plugins.
//
// Every generator draws one primary shape per layer.  Layers in the first
// half of the stack additionally get ceil(complexity·k) secondary
// elements, where k depends on the generator.  Elements carry the
// properties "layer" (the layer index) and "role" ("primary" or the kind
// of secondary element).
package generators

import (
	"math"

	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
)

// Names of the built-in generators.
const (
	WaveName     = "wave"
	CircleName   = "circle"
	TriangleName = "triangle"
	InfinityName = "infinity"
	PrismName    = "prism"
)

// Element roles.
const (
	RolePrimary  = "primary"
	RoleParticle = "particle"
	RoleOrbit    = "orbit"
	RoleNested   = "nested"
	RolePoint    = "point"
	RoleLink     = "link"
)

// Register adds the built-in generators to reg.
func Register(reg *generator.Registry) {
	reg.Register(WaveName, NewWave)
	reg.Register(CircleName, NewCircle)
	reg.Register(TriangleName, NewTriangle)
	reg.Register(InfinityName, NewInfinity)
	reg.Register(PrismName, NewPrism)
}

// NewRegistry returns a registry holding the built-in generators.
func NewRegistry() *generator.Registry {
	reg := generator.NewRegistry()
	Register(reg)
	return reg
}

// defaults are the default core parameters shared by the built-ins.
var defaults = param.Parameters{
	Frequency:  1,
	Amplitude:  50,
	Complexity: 0.5,
	Chaos:      0.1,
	Damping:    0.8,
	Layers:     3,
}

func mark(e param.Element, layer int, role string) param.Element {
	e.Props["layer"] = layer
	e.Props["role"] = role
	return e
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// orDefault returns v if it is positive, and def otherwise.
func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// wrap reduces x to [0, period).
func wrap(x, period float64) float64 {
	x = math.Mod(x, period)
	if x < 0 {
		x += period
	}
	return x
}

// regular returns the vertices of a regular polygon.
func regular(cx, cy, r float64, sides int, rotation float64) []param.Point {
	pts := make([]param.Point, sides)
	for i := range pts {
		a := rotation + 2*math.Pi*float64(i)/float64(sides) - math.Pi/2
		pts[i] = param.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}
