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

package script

import (
	"context"
	"sync"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/generative/canvas"
)

// guard is the surface seen by user code.  Calls are forwarded to the
// underlying surface while the run is active.  Once the context is done
// or the guard is closed, painting calls are ignored.
//
// The interpreter returns at its deadline even if a call into the surface
// is still in progress; close waits for that call, so that the caller
// owns the surface again when Run returns.
type guard struct {
	ctx context.Context
	s   canvas.Surface

	mu     sync.Mutex
	closed bool
}

var _ canvas.Surface = (*guard)(nil)

func newGuard(ctx context.Context, s canvas.Surface) *guard {
	return &guard{ctx: ctx, s: s}
}

// close disables the guard.  It blocks until a call in progress has
// finished.
func (g *guard) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

func (g *guard) do(f func(s canvas.Surface)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.ctx.Err() != nil {
		return
	}
	f(g.s)
}

func (g *guard) Width() float64  { return g.s.Width() }
func (g *guard) Height() float64 { return g.s.Height() }

func (g *guard) BeginPath() { g.do(func(s canvas.Surface) { s.BeginPath() }) }

func (g *guard) MoveTo(x, y float64) {
	g.do(func(s canvas.Surface) { s.MoveTo(x, y) })
}

func (g *guard) LineTo(x, y float64) {
	g.do(func(s canvas.Surface) { s.LineTo(x, y) })
}

func (g *guard) QuadraticCurveTo(cpx, cpy, x, y float64) {
	g.do(func(s canvas.Surface) { s.QuadraticCurveTo(cpx, cpy, x, y) })
}

func (g *guard) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	g.do(func(s canvas.Surface) { s.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y) })
}

func (g *guard) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	g.do(func(s canvas.Surface) { s.Arc(x, y, radius, startAngle, endAngle, counterclockwise) })
}

func (g *guard) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool) {
	g.do(func(s canvas.Surface) {
		s.Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle, counterclockwise)
	})
}

func (g *guard) Rect(x, y, w, h float64) {
	g.do(func(s canvas.Surface) { s.Rect(x, y, w, h) })
}

func (g *guard) ClosePath()   { g.do(func(s canvas.Surface) { s.ClosePath() }) }
func (g *guard) Fill()        { g.do(func(s canvas.Surface) { s.Fill() }) }
func (g *guard) FillEvenOdd() { g.do(func(s canvas.Surface) { s.FillEvenOdd() }) }
func (g *guard) Stroke()      { g.do(func(s canvas.Surface) { s.Stroke() }) }

func (g *guard) FillRect(x, y, w, h float64) {
	g.do(func(s canvas.Surface) { s.FillRect(x, y, w, h) })
}

func (g *guard) StrokeRect(x, y, w, h float64) {
	g.do(func(s canvas.Surface) { s.StrokeRect(x, y, w, h) })
}

func (g *guard) ClearRect(x, y, w, h float64) {
	g.do(func(s canvas.Surface) { s.ClearRect(x, y, w, h) })
}

func (g *guard) SetFillStyle(color string) {
	g.do(func(s canvas.Surface) { s.SetFillStyle(color) })
}

func (g *guard) SetStrokeStyle(color string) {
	g.do(func(s canvas.Surface) { s.SetStrokeStyle(color) })
}

func (g *guard) SetLineWidth(w float64) {
	g.do(func(s canvas.Surface) { s.SetLineWidth(w) })
}

func (g *guard) SetLineCap(c graphics.LineCapStyle) {
	g.do(func(s canvas.Surface) { s.SetLineCap(c) })
}

func (g *guard) SetLineJoin(j graphics.LineJoinStyle) {
	g.do(func(s canvas.Surface) { s.SetLineJoin(j) })
}

func (g *guard) SetLineDash(segments []float64) {
	g.do(func(s canvas.Surface) { s.SetLineDash(segments) })
}

func (g *guard) SetGlobalAlpha(a float64) {
	g.do(func(s canvas.Surface) { s.SetGlobalAlpha(a) })
}

func (g *guard) Save()    { g.do(func(s canvas.Surface) { s.Save() }) }
func (g *guard) Restore() { g.do(func(s canvas.Surface) { s.Restore() }) }

func (g *guard) Translate(x, y float64) {
	g.do(func(s canvas.Surface) { s.Translate(x, y) })
}

func (g *guard) Rotate(angle float64) {
	g.do(func(s canvas.Surface) { s.Rotate(angle) })
}

func (g *guard) Scale(x, y float64) {
	g.do(func(s canvas.Surface) { s.Scale(x, y) })
}

func (g *guard) Transform(a, b, c, d, e, f float64) {
	g.do(func(s canvas.Surface) { s.Transform(a, b, c, d, e, f) })
}

func (g *guard) ResetTransform() { g.do(func(s canvas.Surface) { s.ResetTransform() }) }
