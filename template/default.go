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

package template

import (
	"math"

	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
	"seehuhn.de/go/generative/script/utils"
)

// Default draws the built-in visualisation: a dark background with
// pulsing rings and a sine wave, shaped by the core parameters.  It
// never fails and always paints the whole surface.
func Default(s canvas.Surface, p param.Parameters, time float64) {
	w, h := s.Width(), s.Height()
	utils.Background(s, "#12121c")

	layers := min(max(1, p.Layers), generator.MaxLayers)
	hue := 200.0
	if p.Color != nil {
		hue = p.Color.Hue
	}
	cx, cy := w/2, h/2
	base := math.Min(w, h) * 0.4

	s.Save()
	s.SetLineWidth(2)
	for l := range layers {
		frac := float64(l) / float64(layers)
		damping := p.Damping
		if damping <= 0 {
			damping = 0.8
		}
		r := base * math.Pow(damping, float64(l)) * (1 + 0.05*math.Sin(time*p.Frequency+frac*2*math.Pi))
		s.SetGlobalAlpha(1 - 0.5*frac)
		s.SetStrokeStyle(utils.Hsl(hue+360*frac+time*20, 0.7, 0.55))
		s.BeginPath()
		utils.Circle(s, cx, cy, r)
		s.Stroke()
	}

	amp := math.Min(p.Amplitude, h/2)
	freq := p.Frequency
	if freq <= 0 {
		freq = 1
	}
	s.SetGlobalAlpha(0.8)
	s.SetStrokeStyle(utils.Hsl(hue+180, 0.6, 0.6))
	s.BeginPath()
	const steps = 64
	for i := range steps + 1 {
		x := float64(i) / steps * w
		y := cy + amp*math.Sin(2*math.Pi*freq*x/w+time)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.Stroke()
	s.Restore()
}
