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

package generators

import (
	"math"

	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
)

// Triangle draws rotating triangles with nested copies inside.  Sides
// other than 3 give regular polygons instead.
type Triangle struct {
	generator.Base
}

var triangleMeta = param.Metadata{
	Name:        TriangleName,
	Description: "Rotating triangles with nested copies",
	Category:    "geometric",
	Modes:       []string{"fractal"},
	Defaults:    defaults,
	Ranges: map[string]param.Range{
		"sides":    {Min: 3, Max: 12},
		"rotation": {Min: 0, Max: 360},
	},
	ClampsToCanvas: false,
}

// NewTriangle is the [generator.Constructor] of the triangle generator.
func NewTriangle(p param.Parameters, seed string) generator.Generator {
	return &Triangle{Base: generator.NewBase(triangleMeta, p, seed)}
}

// Generate implements [generator.Generator].
func (g *Triangle) Generate(opts param.Options) ([]param.Element, error) {
	return g.GenerateMode(opts.Mode, opts)
}

// GenerateMode implements [generator.ModeGenerator].
func (g *Triangle) GenerateMode(mode string, opts param.Options) ([]param.Element, error) {
	if err := generator.CheckOptions(opts); err != nil {
		return nil, err
	}
	switch mode {
	case "":
		return g.triangles(opts), nil
	case "fractal":
		return g.Fractal(opts), nil
	}
	return nil, generator.UnknownMode(TriangleName, mode)
}

// maxSides bounds the vertex count of the polygons.
const maxSides = 64

func (g *Triangle) sides() int {
	if s := g.Params().Sides; s >= 3 {
		return min(s, maxSides)
	}
	return 3
}

func (g *Triangle) triangles(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	base := orDefault(p.Radius, p.Amplitude*1.5)
	sides := g.sides()

	var out []param.Element
	for l := range layers {
		phase := g.CalculatePhase(l, layers, t)
		size := g.ApplyDamping(base, float64(l))
		rot := radians(p.Rotation) + phase/(2*math.Pi)*math.Pi/3
		color, opacity := g.LayerColor(l, layers, t)

		cx, cy := g.AddChaos(c.X, 10), g.AddChaos(c.Y, 10)
		pts := regular(cx, cy, size, sides, rot)
		out = append(out, mark(generator.PolygonElement(pts, "none", color, 1.5, opacity), l, RolePrimary))

		if !g.Eligible(l) {
			continue
		}
		k := g.Secondary(4)
		for j := range k {
			inner := size * (1 - float64(j+1)/float64(k+1))
			spin := rot + g.CalculatePhase(j, k, 2*t)
			pts := regular(g.AddChaos(cx, 5), g.AddChaos(cy, 5), inner, sides, spin)
			e := generator.PolygonElement(pts, color, "", 0, opacity*0.3)
			out = append(out, mark(e, l, RoleNested))
		}
	}
	return out
}

// maxFractalDepth bounds the subdivision depth; the element count grows
// as 3^depth.
const maxFractalDepth = 5

// Fractal draws a Sierpinski triangle, with the subdivision depth given
// by the complexity.
func (g *Triangle) Fractal(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	depth := generator.Count(1+math.Floor(p.Complexity*4), 0, maxFractalDepth)
	base := orDefault(p.Radius, opts.MinSide()*0.45)

	var out []param.Element
	var subdivide func(a, b, cc param.Point, level, layer int, color string, opacity float64)
	subdivide = func(a, b, cc param.Point, level, layer int, color string, opacity float64) {
		if level == 0 {
			pts := []param.Point{a, b, cc}
			out = append(out, mark(generator.PolygonElement(pts, color, "", 0, opacity), layer, RolePrimary))
			return
		}
		ab, bc, ca := midpoint(a, b, g.AddChaos(0, 4)), midpoint(b, cc, g.AddChaos(0, 4)), midpoint(cc, a, g.AddChaos(0, 4))
		subdivide(a, ab, ca, level-1, layer, color, opacity)
		subdivide(ab, b, bc, level-1, layer, color, opacity)
		subdivide(ca, bc, cc, level-1, layer, color, opacity)
	}
	for l := range layers {
		phase := g.CalculatePhase(l, layers, t)
		size := g.ApplyDamping(base, float64(l))
		color, opacity := g.LayerColor(l, layers, t)
		v := regular(c.X, c.Y, size, 3, radians(p.Rotation)+phase*0.05)
		subdivide(v[0], v[1], v[2], depth, l, color, opacity)
	}
	return out
}

// midpoint returns the midpoint of a and b, moved by jitter along both
// axes.
func midpoint(a, b param.Point, jitter float64) param.Point {
	return param.Point{X: (a.X+b.X)/2 + jitter, Y: (a.Y+b.Y)/2 + jitter}
}
