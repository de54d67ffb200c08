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

// Package canvas provides a 2D drawing surface modelled on the HTML canvas
// API.  Generators and user scripts draw through the [Surface] interface;
// [Context] implements it on top of the anti-aliased rasteriser.
package canvas

import (
	"seehuhn.de/go/pdf/graphics"
)

// Surface is a canvas-like 2D drawing surface.
//
// Coordinates are in user space, which is mapped to pixels by the current
// transformation.  The y axis points down.  Path construction methods add
// to the current path, painting methods consume it without clearing it.
type Surface interface {
	Width() float64
	Height() float64

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool)
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool)
	Rect(x, y, w, h float64)
	ClosePath()

	Fill()
	FillEvenOdd()
	Stroke()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	SetFillStyle(color string)
	SetStrokeStyle(color string)
	SetLineWidth(w float64)
	SetLineCap(c graphics.LineCapStyle)
	SetLineJoin(j graphics.LineJoinStyle)
	SetLineDash(segments []float64)
	SetGlobalAlpha(a float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)
	Transform(a, b, c, d, e, f float64)
	ResetTransform()
}
