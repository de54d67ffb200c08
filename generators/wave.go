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

// Wave draws layered sine waves across the canvas, with particles riding
// the front layers.
type Wave struct {
	generator.Base
}

var waveMeta = param.Metadata{
	Name:        WaveName,
	Description: "Layered sine waves with particles riding the crests",
	Category:    "waves",
	Modes:       []string{"ripples", "flow"},
	Defaults:    defaults,
	Ranges: map[string]param.Range{
		"frequency": {Min: 0.1, Max: 10},
		"amplitude": {Min: 0, Max: 200},
	},
	ClampsToCanvas: true,
}

// NewWave is the [generator.Constructor] of the wave generator.
func NewWave(p param.Parameters, seed string) generator.Generator {
	return &Wave{Base: generator.NewBase(waveMeta, p, seed)}
}

// Generate implements [generator.Generator].
func (w *Wave) Generate(opts param.Options) ([]param.Element, error) {
	return w.GenerateMode(opts.Mode, opts)
}

// GenerateMode implements [generator.ModeGenerator].
func (w *Wave) GenerateMode(mode string, opts param.Options) ([]param.Element, error) {
	if err := generator.CheckOptions(opts); err != nil {
		return nil, err
	}
	switch mode {
	case "":
		return w.waves(opts), nil
	case "ripples":
		return w.Ripples(opts), nil
	case "flow":
		return w.Flow(opts), nil
	}
	return nil, generator.UnknownMode(WaveName, mode)
}

// height returns the wave height at x for the given layer amplitude and
// phase.
func (w *Wave) height(x, width, amp, phase float64) float64 {
	return amp * math.Sin(2*math.Pi*w.Params().Frequency*x/width+phase)
}

func (w *Wave) waves(opts param.Options) []param.Element {
	p := w.Params()
	layers := w.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	n := max(2, opts.Samples())

	var out []param.Element
	for l := range layers {
		phase := w.CalculatePhase(l, layers, t)
		amp := w.ApplyDamping(p.Amplitude, float64(l))
		color, opacity := w.LayerColor(l, layers, t)

		d := &generator.PathData{}
		for i := range n {
			x := float64(i) / float64(n-1) * opts.Width
			y := w.AddChaos(c.Y+w.height(x, opts.Width, amp, phase), amp*0.2)
			if i == 0 {
				d.MoveTo(x, y)
			} else {
				d.LineTo(x, y)
			}
		}
		width := 0.5 + 2*math.Pow(p.Damping, float64(l))
		out = append(out, mark(generator.PathElement(d, color, width, opacity), l, RolePrimary))

		if !w.Eligible(l) {
			continue
		}
		k := w.Secondary(8)
		for j := range k {
			sub := w.CalculatePhase(j, k, 2*t)
			x := wrap((float64(j)+0.5)/float64(k)*opts.Width+t*20*float64(l+1), opts.Width)
			y := c.Y + w.height(x, opts.Width, amp, phase) + 0.2*amp*math.Sin(sub)
			x = w.Clamp(w.AddChaos(x, 20), 0, opts.Width)
			y = w.Clamp(w.AddChaos(y, 20), 0, opts.Height)
			r := 2 + 2*p.Complexity
			out = append(out, mark(generator.CircleElement(x, y, r, color, opacity), l, RoleParticle))
		}
	}
	return out
}

// Ripples draws concentric rings spreading from the canvas centre.
func (w *Wave) Ripples(opts param.Options) []param.Element {
	p := w.Params()
	layers := w.Layers()
	t := opts.Time * p.Speed()
	c := opts.CenterPoint()
	maxR := math.Hypot(opts.Width, opts.Height) / 2
	rings := 3 + w.Secondary(5)

	var out []param.Element
	for l := range layers {
		phase := w.CalculatePhase(l, layers, t)
		color, opacity := w.LayerColor(l, layers, t)
		for i := range rings {
			// rings move outwards and wrap around
			pos := wrap(float64(i)/float64(rings)+phase/(2*math.Pi), 1)
			r := w.AddChaos(pos*maxR, 10)
			a := opacity * w.ApplyDamping(1, pos*float64(rings))
			width := 1 + p.Amplitude/100*(1-pos)
			out = append(out, mark(generator.RingElement(c.X, c.Y, r, color, width, a), l, RolePrimary))
		}
	}
	return out
}

// Flow draws horizontal stream lines displaced by travelling waves.
func (w *Wave) Flow(opts param.Options) []param.Element {
	p := w.Params()
	layers := w.Layers()
	t := opts.Time * p.Speed()
	n := max(2, opts.Samples())
	lines := 4 + w.Secondary(8)

	var out []param.Element
	for l := range layers {
		phase := w.CalculatePhase(l, layers, t)
		amp := w.ApplyDamping(p.Amplitude, float64(l)) * 0.5
		color, opacity := w.LayerColor(l, layers, t)
		for i := range lines {
			y0 := (float64(i) + 0.5) / float64(lines) * opts.Height
			d := &generator.PathData{}
			for s := range n {
				x := float64(s) / float64(n-1) * opts.Width
				drift := w.height(x, opts.Width, amp, phase+y0/opts.Height*math.Pi)
				y := w.Clamp(w.AddChaos(y0+drift, 5), 0, opts.Height)
				if s == 0 {
					d.MoveTo(x, y)
				} else {
					d.LineTo(x, y)
				}
			}
			out = append(out, mark(generator.PathElement(d, color, 1, opacity*0.8), l, RolePrimary))
		}
	}
	return out
}
