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

package canvas

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/generative/raster"
)

// state is the part of the context saved by Save and restored by Restore.
type state struct {
	ctm       matrix.Matrix
	fill      color.NRGBA
	stroke    color.NRGBA
	lineWidth float64
	cap       graphics.LineCapStyle
	join      graphics.LineJoinStyle
	dash      []float64
	alpha     float64
}

// Context is a [Surface] which paints into an RGBA image.
// A Context is not safe for concurrent use.
type Context struct {
	img *image.RGBA
	r   *raster.Rasteriser

	// the current path, in device coordinates
	path       *raster.Path
	start, cur vec.Vec2
	hasCur     bool

	st    state
	stack []state
}

var _ Surface = (*Context)(nil)

// New returns a context for a transparent w×h image.
func New(w, h int) *Context {
	return NewFor(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewFor returns a context which paints into img.  The image bounds must
// start at the origin.
func NewFor(img *image.RGBA) *Context {
	b := img.Bounds()
	clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(b.Dx()), URy: float64(b.Dy())}
	c := &Context{
		img:  img,
		r:    raster.NewRasteriser(clip),
		path: &raster.Path{},
	}
	c.st = defaultState()
	return c
}

func defaultState() state {
	return state{
		ctm:       matrix.Identity,
		fill:      color.NRGBA{A: 255},
		stroke:    color.NRGBA{A: 255},
		lineWidth: 1,
		cap:       graphics.LineCapButt,
		join:      graphics.LineJoinMiter,
		alpha:     1,
	}
}

// Reset discards the current path and the saved states, and restores
// the default graphics state.  The image is not changed.
func (c *Context) Reset() {
	c.BeginPath()
	c.stack = c.stack[:0]
	c.st = defaultState()
}

// Image returns the image the context paints into.
func (c *Context) Image() *image.RGBA {
	return c.img
}

// Width returns the image width in pixels.
func (c *Context) Width() float64 { return float64(c.img.Bounds().Dx()) }

// Height returns the image height in pixels.
func (c *Context) Height() float64 { return float64(c.img.Bounds().Dy()) }

// BeginPath discards the current path.
func (c *Context) BeginPath() {
	c.path.Reset()
	c.hasCur = false
}

// MoveTo starts a new subpath.
func (c *Context) MoveTo(x, y float64) {
	p := c.device(x, y)
	c.path.MoveTo(p)
	c.start, c.cur, c.hasCur = p, p, true
}

// LineTo adds a straight segment.  Without a current point it acts like
// MoveTo.
func (c *Context) LineTo(x, y float64) {
	if !c.hasCur {
		c.MoveTo(x, y)
		return
	}
	p := c.device(x, y)
	c.path.LineTo(p)
	c.cur = p
}

// QuadraticCurveTo adds a quadratic Bézier segment.
func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) {
	if !c.hasCur {
		c.MoveTo(cpx, cpy)
	}
	p := c.device(x, y)
	c.path.QuadTo(c.device(cpx, cpy), p)
	c.cur = p
}

// BezierCurveTo adds a cubic Bézier segment.
func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if !c.hasCur {
		c.MoveTo(cp1x, cp1y)
	}
	p := c.device(x, y)
	c.path.CubeTo(c.device(cp1x, cp1y), c.device(cp2x, cp2y), p)
	c.cur = p
}

// Arc adds a circular arc, connected to the current point by a line.
// Angles are in radians, measured clockwise from the positive x axis.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	c.Ellipse(x, y, radius, radius, 0, startAngle, endAngle, counterclockwise)
}

// Ellipse adds an elliptical arc, connected to the current point by a
// line.
func (c *Context) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool) {
	if radiusX < 0 || radiusY < 0 {
		return
	}
	sweep := arcSweep(startAngle, endAngle, counterclockwise)
	if math.IsNaN(sweep) {
		return
	}

	sinR, cosR := math.Sincos(rotation)
	// at maps a point of the unit circle onto the ellipse
	at := func(dx, dy float64) (float64, float64) {
		ex, ey := radiusX*dx, radiusY*dy
		return x + ex*cosR - ey*sinR, y + ex*sinR + ey*cosR
	}

	sin0, cos0 := math.Sincos(startAngle)
	px, py := at(cos0, sin0)
	c.LineTo(px, py)

	n := max(1, int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	theta := startAngle
	for range n {
		s0, c0 := math.Sincos(theta)
		s1, c1 := math.Sincos(theta + step)
		x1, y1 := at(c0-k*s0, s0+k*c0)
		x2, y2 := at(c1+k*s1, s1-k*c1)
		x3, y3 := at(c1, s1)
		c.BezierCurveTo(x1, y1, x2, y2, x3, y3)
		theta += step
	}
}

// arcSweep returns the signed sweep angle of an arc, following the HTML
// canvas rules.
func arcSweep(start, end float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	if !ccw {
		if end-start >= tau {
			return tau
		}
		s := math.Mod(end-start, tau)
		if s < 0 {
			s += tau
		}
		return s
	}
	if start-end >= tau {
		return -tau
	}
	s := math.Mod(start-end, tau)
	if s < 0 {
		s += tau
	}
	return -s
}

// Rect adds a closed rectangular subpath.
func (c *Context) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	if !c.hasCur {
		return
	}
	c.path.Close()
	c.cur = c.start
}

// Fill fills the current path with the nonzero rule.
func (c *Context) Fill() {
	c.r.FillNonZero(c.path.All(), c.painter(c.st.fill))
}

// FillEvenOdd fills the current path with the even-odd rule.
func (c *Context) FillEvenOdd() {
	c.r.FillEvenOdd(c.path.All(), c.painter(c.st.fill))
}

// Stroke strokes the current path.
func (c *Context) Stroke() {
	scale := math.Sqrt(math.Abs(c.st.ctm[0]*c.st.ctm[3] - c.st.ctm[1]*c.st.ctm[2]))
	c.r.Width = c.st.lineWidth * scale
	c.r.Cap = c.st.cap
	c.r.Join = c.st.join
	c.r.Dash = nil
	if len(c.st.dash) > 0 {
		c.r.Dash = make([]float64, len(c.st.dash))
		for i, d := range c.st.dash {
			c.r.Dash[i] = d * scale
		}
	}
	c.r.Stroke(c.path.All(), c.painter(c.st.stroke))
}

// FillRect fills a rectangle without changing the current path.
func (c *Context) FillRect(x, y, w, h float64) {
	c.r.FillNonZero(c.rectPath(x, y, w, h).All(), c.painter(c.st.fill))
}

// StrokeRect strokes a rectangle without changing the current path.
func (c *Context) StrokeRect(x, y, w, h float64) {
	saved := c.path
	c.path = c.rectPath(x, y, w, h)
	c.Stroke()
	c.path = saved
}

// ClearRect sets the pixels of a rectangle to transparent black.
func (c *Context) ClearRect(x, y, w, h float64) {
	pix := c.img.Pix
	c.r.FillNonZero(c.rectPath(x, y, w, h).All(), func(y, xMin int, coverage []float32) {
		off := c.img.PixOffset(xMin, y)
		for i, v := range coverage {
			k := 1 - v
			p := pix[off+4*i : off+4*i+4 : off+4*i+4]
			for j := range p {
				p[j] = uint8(float32(p[j])*k + 0.5)
			}
		}
	})
}

func (c *Context) rectPath(x, y, w, h float64) *raster.Path {
	return (&raster.Path{}).
		MoveTo(c.device(x, y)).
		LineTo(c.device(x+w, y)).
		LineTo(c.device(x+w, y+h)).
		LineTo(c.device(x, y+h)).
		Close()
}

// painter returns an emit callback which composites col over the image,
// scaled by coverage and the global alpha.
func (c *Context) painter(col color.NRGBA) func(y, xMin int, coverage []float32) {
	a0 := float32(col.A) / 255 * float32(c.st.alpha)
	r, g, b := float32(col.R), float32(col.G), float32(col.B)
	pix := c.img.Pix
	return func(y, xMin int, coverage []float32) {
		if a0 <= 0 {
			return
		}
		off := c.img.PixOffset(xMin, y)
		for i, v := range coverage {
			a := v * a0
			if a <= 0 {
				continue
			}
			k := 1 - a
			p := pix[off+4*i : off+4*i+4 : off+4*i+4]
			p[0] = uint8(r*a + float32(p[0])*k + 0.5)
			p[1] = uint8(g*a + float32(p[1])*k + 0.5)
			p[2] = uint8(b*a + float32(p[2])*k + 0.5)
			p[3] = uint8(255*a + float32(p[3])*k + 0.5)
		}
	}
}

// SetFillStyle sets the fill colour.  Unparsable colours are ignored.
func (c *Context) SetFillStyle(s string) {
	if col, err := ParseColor(s); err == nil {
		c.st.fill = col
	}
}

// SetStrokeStyle sets the stroke colour.  Unparsable colours are ignored.
func (c *Context) SetStrokeStyle(s string) {
	if col, err := ParseColor(s); err == nil {
		c.st.stroke = col
	}
}

// SetLineWidth sets the stroke width.  Non-positive values are ignored.
func (c *Context) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		c.st.lineWidth = w
	}
}

func (c *Context) SetLineCap(s graphics.LineCapStyle)   { c.st.cap = s }
func (c *Context) SetLineJoin(s graphics.LineJoinStyle) { c.st.join = s }

// SetLineDash sets the dash pattern.  An empty slice selects solid lines;
// patterns with negative entries are ignored.
func (c *Context) SetLineDash(segments []float64) {
	for _, s := range segments {
		if s < 0 || math.IsNaN(s) {
			return
		}
	}
	c.st.dash = append([]float64(nil), segments...)
}

// SetGlobalAlpha sets the opacity applied to all painting.  Values outside
// [0,1] are ignored.
func (c *Context) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		c.st.alpha = a
	}
}

// Save pushes the graphics state.
func (c *Context) Save() {
	c.stack = append(c.stack, c.st)
}

// Restore pops the graphics state.  Unbalanced calls are ignored.
func (c *Context) Restore() {
	if n := len(c.stack); n > 0 {
		c.st = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Translate moves the origin of user space.
func (c *Context) Translate(x, y float64) {
	c.Transform(1, 0, 0, 1, x, y)
}

// Rotate rotates user space clockwise by angle radians.
func (c *Context) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	c.Transform(cos, sin, -sin, cos, 0, 0)
}

// Scale scales user space.
func (c *Context) Scale(x, y float64) {
	c.Transform(x, 0, 0, y, 0, 0)
}

// Transform multiplies the current transformation by the matrix
// [a c e; b d f; 0 0 1].
func (c *Context) Transform(a, b, cc, d, e, f float64) {
	c.st.ctm = matrix.Matrix{a, b, cc, d, e, f}.Mul(c.st.ctm)
}

// ResetTransform restores the identity transformation.
func (c *Context) ResetTransform() {
	c.st.ctm = matrix.Identity
}

func (c *Context) device(x, y float64) vec.Vec2 {
	x, y = c.st.ctm.Apply(x, y)
	return vec.Vec2{X: x, Y: y}
}
