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

// Prism draws isometric cubes with three shaded faces.
type Prism struct {
	generator.Base
}

var prismMeta = param.Metadata{
	Name:        PrismName,
	Description: "Isometric prisms with shaded faces",
	Category:    "3d",
	Modes:       []string{"array"},
	Defaults:    defaults,
	Ranges: map[string]param.Range{
		"radius": {Min: 5, Max: 300},
	},
	ClampsToCanvas: false,
}

// Isometric projection at a fixed angle of 30 degrees.
var (
	isoCos = math.Cos(math.Pi / 6)
	isoSin = math.Sin(math.Pi / 6)
)

// Face lightness offsets, in the order front, right, top.
var faceShades = [3]float64{0.1, 0, -0.1}

// Face names, in drawing order.
var faceNames = [3]string{"front", "right", "top"}

// cube faces as corner lists of the unit cube centred at the origin
var cubeFaces = [3][4][3]float64{
	{{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},  // front, y = +1/2
	{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}},  // right, x = +1/2
	{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, // top, z = +1/2
}

// NewPrism is the [generator.Constructor] of the prism generator.
func NewPrism(p param.Parameters, seed string) generator.Generator {
	return &Prism{Base: generator.NewBase(prismMeta, p, seed)}
}

// Generate implements [generator.Generator].
func (g *Prism) Generate(opts param.Options) ([]param.Element, error) {
	return g.GenerateMode(opts.Mode, opts)
}

// GenerateMode implements [generator.ModeGenerator].
func (g *Prism) GenerateMode(mode string, opts param.Options) ([]param.Element, error) {
	if err := generator.CheckOptions(opts); err != nil {
		return nil, err
	}
	switch mode {
	case "":
		return g.prisms(opts), nil
	case "array":
		return g.Array(opts), nil
	}
	return nil, generator.UnknownMode(PrismName, mode)
}

// Project maps the point (x, y, z) of a cube with edge length size,
// centred at (cx, cy), to the canvas.
func Project(cx, cy, size, x, y, z float64) param.Point {
	return param.Point{
		X: cx + (x-y)*isoCos*size,
		Y: cy + (x+y)*isoSin*size - z*size,
	}
}

// cube appends the three faces of one cube.
func (g *Prism) cube(out []param.Element, cx, cy, size float64, layer, layers int, t float64) []param.Element {
	for f, face := range cubeFaces {
		pts := make([]param.Point, len(face))
		for i, v := range face {
			pts[i] = Project(cx, cy, size, v[0], v[1], v[2])
		}
		color, opacity := g.ShadedColor(layer, layers, t, faceShades[f])
		e := generator.PolygonElement(pts, color, color, 0.5, opacity)
		e.Props["face"] = faceNames[f]
		out = append(out, mark(e, layer, RolePrimary))
	}
	return out
}

func (g *Prism) prisms(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	base := orDefault(p.Radius, p.Amplitude*1.2)

	var out []param.Element
	for l := range layers {
		phase := g.CalculatePhase(l, layers, t)
		size := g.ApplyDamping(base, float64(l))
		cx := g.AddChaos(c.X, 10)
		cy := g.AddChaos(c.Y+0.1*size*math.Sin(phase), 10)
		out = g.cube(out, cx, cy, size, l, layers, t)

		if !g.Eligible(l) {
			continue
		}
		color, opacity := g.LayerColor(l, layers, t)
		k := g.Secondary(5)
		for j := range k {
			a := g.CalculatePhase(j, k, 2*t)
			x := g.AddChaos(cx+1.2*size*math.Cos(a), 10)
			y := g.AddChaos(cy+0.6*size*math.Sin(a), 10)
			out = append(out, mark(generator.CircleElement(x, y, 2, color, opacity), l, RolePoint))
		}
	}
	return out
}

// maxArraySize bounds the number of rows and columns of the prism grid.
const maxArraySize = 16

// Array draws a grid of small prisms bobbing in a travelling wave.
func (g *Prism) Array(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	n := generator.Count(2+math.Round(p.Complexity*4), 2, maxArraySize)
	cell := opts.MinSide() / float64(n)
	size := cell / 2.5

	var out []param.Element
	for l := range layers {
		for row := range n {
			for col := range n {
				i := row*n + col
				phase := g.CalculatePhase(i, n*n, t)
				cx := (float64(col) + 0.5) * opts.Width / float64(n)
				cy := (float64(row)+0.5)*opts.Height/float64(n) + g.ApplyDamping(p.Amplitude*0.1, float64(l))*math.Sin(phase)
				out = g.cube(out, g.AddChaos(cx, 5), g.AddChaos(cy, 5), g.ApplyDamping(size, float64(l)), l, layers, t)
			}
		}
	}
	return out
}
