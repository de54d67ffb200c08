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

// Package draw paints generated elements onto a drawing surface.
package draw

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/param"
)

// Elements paints elems onto s in order, so that later elements are drawn
// on top.  Coordinates are multiplied by pixelRatio; values <= 0 mean 1.
// Malformed elements are skipped and reported in the returned error; the
// remaining elements are still drawn.
func Elements(s canvas.Surface, elems []param.Element, pixelRatio float64) error {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	var errs []error
	for i := range elems {
		if err := Element(s, &elems[i], pixelRatio); err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Element paints a single element.
func Element(s canvas.Surface, e *param.Element, pixelRatio float64) error {
	s.Save()
	defer s.Restore()
	if pixelRatio > 0 && pixelRatio != 1 {
		s.Scale(pixelRatio, pixelRatio)
	}

	s.BeginPath()
	if err := shape(s, e); err != nil {
		return err
	}

	opacity := clamp01(e.PaintFloat("opacity", 1))
	fill := e.Paint("fill")
	if fill == "" && e.Type != param.Line && e.Type != param.Path {
		fill = "#000"
	}
	if fill != "" && fill != "none" {
		s.SetGlobalAlpha(opacity * clamp01(e.PaintFloat("fillOpacity", 1)))
		s.SetFillStyle(fill)
		s.Fill()
	}

	if stroke := e.Paint("stroke"); stroke != "" && stroke != "none" {
		s.SetGlobalAlpha(opacity * clamp01(e.PaintFloat("strokeOpacity", 1)))
		s.SetStrokeStyle(stroke)
		s.SetLineWidth(e.PaintFloat("strokeWidth", 1))
		s.Stroke()
	}
	return nil
}

// shape adds the geometry of e to the current path.
func shape(s canvas.Surface, e *param.Element) error {
	p := e.Props
	switch e.Type {
	case param.Circle:
		r := p.Float("r", 0)
		if r <= 0 {
			return nil
		}
		cx, cy := p.Float("cx", 0), p.Float("cy", 0)
		s.MoveTo(cx+r, cy)
		s.Arc(cx, cy, r, 0, 2*math.Pi, false)
		s.ClosePath()
	case param.Ellipse:
		rx, ry := p.Float("rx", 0), p.Float("ry", 0)
		if rx <= 0 || ry <= 0 {
			return nil
		}
		cx, cy := p.Float("cx", 0), p.Float("cy", 0)
		s.MoveTo(cx+rx, cy)
		s.Ellipse(cx, cy, rx, ry, 0, 0, 2*math.Pi, false)
		s.ClosePath()
	case param.Rect:
		w, h := p.Float("width", 0), p.Float("height", 0)
		if w <= 0 || h <= 0 {
			return nil
		}
		s.Rect(p.Float("x", 0), p.Float("y", 0), w, h)
	case param.Line:
		s.MoveTo(p.Float("x1", 0), p.Float("y1", 0))
		s.LineTo(p.Float("x2", 0), p.Float("y2", 0))
	case param.Path:
		return Path(s, p.String("d", ""))
	case param.Polygon:
		return Polygon(s, p.String("points", ""))
	default:
		return fmt.Errorf("unknown element type %q", e.Type)
	}
	return nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
