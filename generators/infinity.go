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

// Infinity draws lemniscates of Bernoulli with particles travelling along
// the curve.
type Infinity struct {
	generator.Base
}

var infinityMeta = param.Metadata{
	Name:        InfinityName,
	Description: "Lemniscate loops with travelling particles",
	Category:    "curves",
	Modes:       []string{"rotations"},
	Defaults:    defaults,
	Ranges: map[string]param.Range{
		"scale": {Min: 0.1, Max: 5},
	},
	ClampsToCanvas: true,
}

// NewInfinity is the [generator.Constructor] of the infinity generator.
func NewInfinity(p param.Parameters, seed string) generator.Generator {
	return &Infinity{Base: generator.NewBase(infinityMeta, p, seed)}
}

// Generate implements [generator.Generator].
func (g *Infinity) Generate(opts param.Options) ([]param.Element, error) {
	return g.GenerateMode(opts.Mode, opts)
}

// GenerateMode implements [generator.ModeGenerator].
func (g *Infinity) GenerateMode(mode string, opts param.Options) ([]param.Element, error) {
	if err := generator.CheckOptions(opts); err != nil {
		return nil, err
	}
	switch mode {
	case "":
		return g.loops(opts), nil
	case "rotations":
		return g.Rotations(opts), nil
	}
	return nil, generator.UnknownMode(InfinityName, mode)
}

// Lemniscate returns the point of the lemniscate with half-width a at
// parameter t:
//
//	x = a·cos t/(1+sin²t),  y = a·sin t·cos t/(1+sin²t)
func Lemniscate(a, t float64) (x, y float64) {
	sin, cos := math.Sincos(t)
	den := 1 + sin*sin
	return a * cos / den, a * sin * cos / den
}

// curve samples a rotated lemniscate around (cx, cy).
func (g *Infinity) curve(cx, cy, a, rot float64, n int, jitter float64) *generator.PathData {
	sinR, cosR := math.Sincos(rot)
	d := &generator.PathData{}
	for i := range n {
		x, y := Lemniscate(a, 2*math.Pi*float64(i)/float64(n))
		px := g.AddChaos(cx+x*cosR-y*sinR, jitter)
		py := g.AddChaos(cy+x*sinR+y*cosR, jitter)
		if i == 0 {
			d.MoveTo(px, py)
		} else {
			d.LineTo(px, py)
		}
	}
	return d.Close()
}

func (g *Infinity) halfWidth(opts param.Options) float64 {
	p := g.Params()
	return orDefault(p.Scale, 1) * orDefault(p.Radius, math.Max(p.Amplitude*2, opts.MinSide()*0.1))
}

func (g *Infinity) loops(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	n := max(8, opts.Samples())
	base := g.halfWidth(opts)

	var out []param.Element
	for l := range layers {
		phase := g.CalculatePhase(l, layers, t)
		a := g.ApplyDamping(base, float64(l))
		rot := radians(p.Rotation) + 0.1*math.Sin(phase)
		color, opacity := g.LayerColor(l, layers, t)

		d := g.curve(c.X, c.Y, a, rot, n, 4)
		out = append(out, mark(generator.PathElement(d, color, 1+float64(layers-l)*0.4, opacity), l, RolePrimary))

		if !g.Eligible(l) {
			continue
		}
		sinR, cosR := math.Sincos(rot)
		k := g.Secondary(8)
		for j := range k {
			s := g.CalculatePhase(j, k, 2*t)
			x, y := Lemniscate(a, s)
			px := g.Clamp(g.AddChaos(c.X+x*cosR-y*sinR, 8), 0, opts.Width)
			py := g.Clamp(g.AddChaos(c.Y+x*sinR+y*cosR, 8), 0, opts.Height)
			out = append(out, mark(generator.CircleElement(px, py, 2.5, color, opacity), l, RoleParticle))
		}
	}
	return out
}

// Rotations draws copies of the lemniscate rotated evenly about the
// centre, forming a rosette.
func (g *Infinity) Rotations(opts param.Options) []param.Element {
	p := g.Params()
	layers := g.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	n := max(8, opts.Samples())
	base := g.halfWidth(opts)
	copies := 2 + g.Secondary(6)

	var out []param.Element
	for l := range layers {
		phase := g.CalculatePhase(l, layers, t)
		a := g.ApplyDamping(base, float64(l))
		color, opacity := g.LayerColor(l, layers, t)
		for i := range copies {
			rot := radians(p.Rotation) + math.Pi*float64(i)/float64(copies) + phase*0.1
			d := g.curve(c.X, c.Y, a, rot, n, 2)
			out = append(out, mark(generator.PathElement(d, color, 1, opacity*0.7), l, RolePrimary))
		}
	}
	return out
}
