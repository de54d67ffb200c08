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

// Package utils holds the colour, math and shape helpers available to
// user drawing code under the name "utils".
package utils

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/generative/canvas"
)

// Hsl returns a CSS colour for hue h (degrees) and saturation s and
// lightness l in [0,1].
func Hsl(h, s, l float64) string {
	return colorful.Hsl(wrapHue(h), clamp(s, 0, 1), clamp(l, 0, 1)).Clamped().Hex()
}

// Hsla is like Hsl, with an alpha value in [0,1].
func Hsla(h, s, l, a float64) string {
	return fmt.Sprintf("hsla(%g, %g%%, %g%%, %g)", wrapHue(h), 100*clamp(s, 0, 1), 100*clamp(l, 0, 1), clamp(a, 0, 1))
}

// Rgb returns a CSS colour for components in [0,255].
func Rgb(r, g, b float64) string {
	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped().Hex()
}

// Mix blends two CSS colours; t=0 gives a, t=1 gives b.  Unparsable
// colours are treated as black.
func Mix(a, b string, t float64) string {
	ca, _ := canvas.ParseColor(a)
	cb, _ := canvas.ParseColor(b)
	fa, _ := colorful.MakeColor(ca)
	fb, _ := colorful.MakeColor(cb)
	return fa.BlendRgb(fb, clamp(t, 0, 1)).Clamped().Hex()
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

// Map maps v from [inMin, inMax] to [outMin, outMax].
func Map(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

// Distance returns the distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Circle adds a circle to the current path of ctx.
func Circle(ctx canvas.Surface, x, y, r float64) {
	ctx.MoveTo(x+r, y)
	ctx.Arc(x, y, r, 0, 2*math.Pi, false)
	ctx.ClosePath()
}

// MaxVertices is the largest number of vertices drawn by Polygon and Star.
const MaxVertices = 1024

// Polygon adds a regular polygon to the current path of ctx.  The first
// vertex points up, rotated by rotation radians.
func Polygon(ctx canvas.Surface, x, y, r float64, sides int, rotation float64) {
	if sides < 3 {
		return
	}
	sides = min(sides, MaxVertices)
	for i := range sides {
		a := rotation + 2*math.Pi*float64(i)/float64(sides) - math.Pi/2
		px, py := x+r*math.Cos(a), y+r*math.Sin(a)
		if i == 0 {
			ctx.MoveTo(px, py)
		} else {
			ctx.LineTo(px, py)
		}
	}
	ctx.ClosePath()
}

// Star adds a star with the given number of points to the current path.
func Star(ctx canvas.Surface, x, y, outer, inner float64, points int) {
	if points < 2 {
		return
	}
	points = min(points, MaxVertices/2)
	for i := range 2 * points {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi*float64(i)/float64(points) - math.Pi/2
		px, py := x+r*math.Cos(a), y+r*math.Sin(a)
		if i == 0 {
			ctx.MoveTo(px, py)
		} else {
			ctx.LineTo(px, py)
		}
	}
	ctx.ClosePath()
}

// Background fills the whole canvas with a colour.
func Background(ctx canvas.Surface, color string) {
	ctx.Save()
	ctx.ResetTransform()
	ctx.SetGlobalAlpha(1)
	ctx.SetFillStyle(color)
	ctx.FillRect(0, 0, ctx.Width(), ctx.Height())
	ctx.Restore()
}

// LineCap sets the line cap by name: "butt", "round" or "square".
func LineCap(ctx canvas.Surface, name string) {
	switch name {
	case "butt":
		ctx.SetLineCap(graphics.LineCapButt)
	case "round":
		ctx.SetLineCap(graphics.LineCapRound)
	case "square":
		ctx.SetLineCap(graphics.LineCapSquare)
	}
}

// LineJoin sets the line join by name: "miter", "round" or "bevel".
func LineJoin(ctx canvas.Surface, name string) {
	switch name {
	case "miter":
		ctx.SetLineJoin(graphics.LineJoinMiter)
	case "round":
		ctx.SetLineJoin(graphics.LineJoinRound)
	case "bevel":
		ctx.SetLineJoin(graphics.LineJoinBevel)
	}
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
