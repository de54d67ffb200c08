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

package draw

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/param"
)

// recorder is a Surface which records path construction and painting
// calls.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Width() float64  { return 100 }
func (r *recorder) Height() float64 { return 100 }
func (r *recorder) BeginPath()      {}
func (r *recorder) MoveTo(x, y float64) {
	r.add("M %g %g", x, y)
}
func (r *recorder) LineTo(x, y float64) {
	r.add("L %g %g", x, y)
}
func (r *recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.add("Q %g %g %g %g", cpx, cpy, x, y)
}
func (r *recorder) BezierCurveTo(a, b, c, d, x, y float64) {
	r.add("C %g %g %g %g %g %g", a, b, c, d, x, y)
}
func (r *recorder) Arc(x, y, radius, a0, a1 float64, ccw bool) {
	r.add("arc %g %g %g", x, y, radius)
}
func (r *recorder) Ellipse(x, y, rx, ry, rot, a0, a1 float64, ccw bool) {
	r.add("ellipse %g %g %g %g", x, y, rx, ry)
}
func (r *recorder) Rect(x, y, w, h float64)       { r.add("rect %g %g %g %g", x, y, w, h) }
func (r *recorder) ClosePath()                    { r.add("Z") }
func (r *recorder) Fill()                         { r.add("fill") }
func (r *recorder) FillEvenOdd()                  { r.add("fill-evenodd") }
func (r *recorder) Stroke()                       { r.add("stroke") }
func (r *recorder) FillRect(x, y, w, h float64)   {}
func (r *recorder) StrokeRect(x, y, w, h float64) {}
func (r *recorder) ClearRect(x, y, w, h float64)  {}
func (r *recorder) SetFillStyle(c string)         { r.add("fillStyle %s", c) }
func (r *recorder) SetStrokeStyle(c string)       { r.add("strokeStyle %s", c) }
func (r *recorder) SetLineWidth(w float64)        { r.add("lineWidth %g", w) }
func (r *recorder) SetLineCap(graphics.LineCapStyle)   {}
func (r *recorder) SetLineJoin(graphics.LineJoinStyle) {}
func (r *recorder) SetLineDash([]float64)              {}
func (r *recorder) SetGlobalAlpha(a float64)           { r.add("alpha %g", a) }
func (r *recorder) Save()                              {}
func (r *recorder) Restore()                           {}
func (r *recorder) Translate(x, y float64)             {}
func (r *recorder) Rotate(float64)                     {}
func (r *recorder) Scale(x, y float64)                 { r.add("scale %g %g", x, y) }
func (r *recorder) Transform(a, b, c, d, e, f float64) {}
func (r *recorder) ResetTransform()                    {}

func TestPathCommands(t *testing.T) {
	cases := []struct {
		d    string
		want []string
	}{
		{"M 1 2 L 3 4 Z", []string{"M 1 2", "L 3 4", "Z"}},
		{"m1,2 3,4 h5 v-1 z", []string{"M 1 2", "L 4 6", "L 9 6", "L 9 5", "Z"}},
		{"M0 0H10V10", []string{"M 0 0", "L 10 0", "L 10 10"}},
		{"M0 0C1 2 3 4 5 6c1 1 2 2 3 3", []string{"M 0 0", "C 1 2 3 4 5 6", "C 6 7 7 8 8 9"}},
		{"M1 1Q2 2 3 3q1 0 2 0", []string{"M 1 1", "Q 2 2 3 3", "Q 4 3 5 3"}},
		{"M0 0L1-1.5.5.5", []string{"M 0 0", "L 1 -1.5", "L 0.5 0.5"}},
		{"M0 0 L1 1 Z m 2 2 l 1 0", []string{"M 0 0", "L 1 1", "Z", "M 2 2", "L 3 2"}},
	}
	for _, tc := range cases {
		r := &recorder{}
		require.NoError(t, Path(r, tc.d), tc.d)
		assert.Equal(t, tc.want, r.calls, tc.d)
	}
}

func TestPathErrors(t *testing.T) {
	for _, d := range []string{"1 2", "M 1", "M 1 2 X 3", "M 0 0 Z 1 2", "L a b"} {
		err := Path(&recorder{}, d)
		assert.True(t, errors.Is(err, ErrPathSyntax), d)
	}
}

func TestPolygon(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Polygon(r, "0,0 10,0 5,8.5"))
	assert.Equal(t, []string{"M 0 0", "L 10 0", "L 5 8.5", "Z"}, r.calls)

	assert.Error(t, Polygon(&recorder{}, ""))
	assert.Error(t, Polygon(&recorder{}, "1,2 3"))
}

func TestElementPaint(t *testing.T) {
	r := &recorder{}
	e := param.Element{
		Type:  param.Circle,
		Props: param.Props{"cx": 5.0, "cy": 6.0, "r": 2.0, "fill": "#ff0000", "opacity": 0.5, "stroke": "blue", "strokeWidth": 3.0},
		Style: map[string]string{"fill": "#00ff00"},
	}
	require.NoError(t, Elements(r, []param.Element{e}, 2))
	assert.Equal(t, []string{
		"scale 2 2",
		"M 7 6", "arc 5 6 2", "Z",
		"alpha 0.5", "fillStyle #00ff00", "fill",
		"alpha 0.5", "strokeStyle blue", "lineWidth 3", "stroke",
	}, r.calls)
}

func TestElementDefaults(t *testing.T) {
	r := &recorder{}
	elems := []param.Element{
		{Type: param.Rect, Props: param.Props{"x": 1, "y": 2, "width": 3, "height": 4}},
		{Type: param.Line, Props: param.Props{"x1": 0, "y1": 0, "x2": 1, "y2": 1}},
	}
	require.NoError(t, Elements(r, elems, 1))
	// rectangles are filled black by default, lines without a stroke
	// paint nothing
	assert.Equal(t, []string{
		"rect 1 2 3 4", "alpha 1", "fillStyle #000", "fill",
		"M 0 0", "L 1 1",
	}, r.calls)
}

func TestBadElementsAreSkipped(t *testing.T) {
	r := &recorder{}
	elems := []param.Element{
		{Type: param.Path, Props: param.Props{"d": "M 0 0 L", "stroke": "red"}},
		{Type: "hexagon", Props: param.Props{}},
		{Type: param.Rect, Props: param.Props{"x": 0, "y": 0, "width": 1, "height": 1, "fill": "red"}},
	}
	err := Elements(r, elems, 1)
	assert.Error(t, err)
	assert.Contains(t, r.calls, "fillStyle red")
	assert.NotContains(t, r.calls, "strokeStyle red")
}

func TestPaintsPixels(t *testing.T) {
	c := canvas.New(20, 20)
	elems := []param.Element{
		{Type: param.Polygon, Props: param.Props{"points": "2,2 18,2 18,18 2,18", "fill": "#0000ff"}},
		{Type: param.Circle, Props: param.Props{"cx": 10.0, "cy": 10.0, "r": 4.0, "fill": "#ff0000"}},
	}
	require.NoError(t, Elements(c, elems, 1))

	img := c.Image()
	center := img.RGBAAt(10, 10)
	assert.Equal(t, uint8(255), center.R)
	assert.Equal(t, uint8(0), center.B)
	corner := img.RGBAAt(3, 3)
	assert.Equal(t, uint8(255), corner.B)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
}
