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

// Circle draws pulsing concentric circles with orbiting satellites.
type Circle struct {
	generator.Base
}

var circleMeta = param.Metadata{
	Name:        CircleName,
	Description: "Pulsing concentric circles with orbiting satellites",
	Category:    "geometric",
	Modes:       []string{"constellation"},
	Defaults:    defaults,
	Ranges: map[string]param.Range{
		"radius": {Min: 5, Max: 300},
	},
	ClampsToCanvas: true,
}

// NewCircle is the [generator.Constructor] of the circle generator.
func NewCircle(p param.Parameters, seed string) generator.Generator {
	return &Circle{Base: generator.NewBase(circleMeta, p, seed)}
}

// Generate implements [generator.Generator].
func (g *Circle) Generate(opts param.Options) ([]param.Element, error) {
	return g.GenerateMode(opts.Mode, opts)
}

// GenerateMode implements [generator.ModeGenerator].
func (g *Circle) GenerateMode(mode string, opts param.Options) ([]param.Element, error) {
	if err := generator.CheckOptions(opts); err != nil {
		return nil, err
	}
	switch mode {
	case "":
		return g.circles(opts), nil
	case "constellation":
		return g.Constellation(opts), nil
	}
	return nil, generator.UnknownMode(CircleName, mode)
}

func (g *Circle) circles(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	base := orDefault(p.Radius, p.Amplitude)

	var out []param.Element
	for l := range layers {
		phase := g.CalculatePhase(l, layers, t)
		r := g.ApplyDamping(base, float64(l)) * (1 + 0.1*math.Sin(phase))
		color, opacity := g.LayerColor(l, layers, t)

		e := generator.RingElement(c.X, c.Y, r, color, 1+float64(layers-l)*0.5, opacity)
		e.Props["fill"] = color
		e.Props["fillOpacity"] = 0.15
		out = append(out, mark(e, l, RolePrimary))

		if !g.Eligible(l) {
			continue
		}
		k := g.Secondary(6)
		for j := range k {
			a := g.CalculatePhase(j, k, 2*t) / math.Max(p.Frequency, 1e-9)
			x := g.Clamp(g.AddChaos(c.X+r*math.Cos(a), 10), 0, opts.Width)
			y := g.Clamp(g.AddChaos(c.Y+r*math.Sin(a), 10), 0, opts.Height)
			size := 2 + 4*g.ApplyDamping(1, float64(l))
			out = append(out, mark(generator.CircleElement(x, y, size, color, opacity), l, RoleOrbit))
		}
	}
	return out
}

// Constellation scatters stars over the canvas and links stars which lie
// close to each other.
func (g *Circle) Constellation(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	stars := 5 + g.Secondary(20)
	reach := orDefault(p.Radius, p.Amplitude) * 1.5

	var out []param.Element
	for l := range layers {
		color, opacity := g.LayerColor(l, layers, t)
		pts := make([]param.Point, stars)
		for i := range pts {
			phase := g.CalculatePhase(i, stars, t)
			x := g.Random()*opts.Width + 5*math.Cos(phase)
			y := g.Random()*opts.Height + 5*math.Sin(phase)
			pts[i] = param.Point{
				X: g.Clamp(g.AddChaos(x, 10), 0, opts.Width),
				Y: g.Clamp(g.AddChaos(y, 10), 0, opts.Height),
			}
		}
		for i := range pts {
			for j := i + 1; j < len(pts); j++ {
				dist := math.Hypot(pts[i].X-pts[j].X, pts[i].Y-pts[j].Y)
				if dist > reach {
					continue
				}
				e := param.Element{
					Type: param.Line,
					Props: param.Props{
						"x1": pts[i].X, "y1": pts[i].Y,
						"x2": pts[j].X, "y2": pts[j].Y,
						"stroke":      color,
						"strokeWidth": 0.5,
						"opacity":     opacity * (1 - dist/reach),
					},
				}
				out = append(out, mark(e, l, RoleLink))
			}
		}
		for _, pt := range pts {
			r := 1.5 + g.ApplyDamping(2, float64(l))
			out = append(out, mark(generator.CircleElement(pt.X, pt.Y, r, color, opacity), l, RolePoint))
		}
	}
	return out
}
