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

package generator

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"seehuhn.de/go/generative/param"
)

// decimals is the number of decimals kept in path data.
const decimals = 2

// PathData builds SVG path data.
type PathData struct {
	buf []byte
}

// MoveTo starts a new subpath.
func (p *PathData) MoveTo(x, y float64) *PathData {
	return p.cmd('M', x, y)
}

// LineTo adds a straight segment.
func (p *PathData) LineTo(x, y float64) *PathData {
	return p.cmd('L', x, y)
}

// QuadTo adds a quadratic Bézier segment.
func (p *PathData) QuadTo(cx, cy, x, y float64) *PathData {
	return p.cmd('Q', cx, cy, x, y)
}

// CubeTo adds a cubic Bézier segment.
func (p *PathData) CubeTo(c1x, c1y, c2x, c2y, x, y float64) *PathData {
	return p.cmd('C', c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath.
func (p *PathData) Close() *PathData {
	if len(p.buf) > 0 {
		p.buf = append(p.buf, ' ')
	}
	p.buf = append(p.buf, 'Z')
	return p
}

// String returns the path data.
func (p *PathData) String() string {
	return string(p.buf)
}

func (p *PathData) cmd(c byte, args ...float64) *PathData {
	if len(p.buf) > 0 {
		p.buf = append(p.buf, ' ')
	}
	p.buf = append(p.buf, c)
	for _, a := range args {
		p.buf = append(p.buf, ' ')
		p.buf = appendNumber(p.buf, a)
	}
	return p
}

// Points formats points in SVG polygon syntax.
func Points(pts []param.Point) string {
	var buf []byte
	for i, pt := range pts {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendNumber(buf, pt.X)
		buf = append(buf, ',')
		buf = appendNumber(buf, pt.Y)
	}
	return string(buf)
}

func appendNumber(buf []byte, x float64) []byte {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	return strconv.AppendDecimal(buf, x, decimals)
}

// CircleElement returns a filled circle.
func CircleElement(cx, cy, r float64, fill string, opacity float64) param.Element {
	return param.Element{
		Type: param.Circle,
		Props: param.Props{
			"cx": cx, "cy": cy, "r": math.Max(r, 0),
			"fill":    fill,
			"opacity": opacity,
		},
	}
}

// RingElement returns a stroked, unfilled circle.
func RingElement(cx, cy, r float64, stroke string, width, opacity float64) param.Element {
	return param.Element{
		Type: param.Circle,
		Props: param.Props{
			"cx": cx, "cy": cy, "r": math.Max(r, 0),
			"fill":        "none",
			"stroke":      stroke,
			"strokeWidth": width,
			"opacity":     opacity,
		},
	}
}

// PathElement returns a stroked path.
func PathElement(d *PathData, stroke string, width, opacity float64) param.Element {
	return param.Element{
		Type: param.Path,
		Props: param.Props{
			"d":           d.String(),
			"fill":        "none",
			"stroke":      stroke,
			"strokeWidth": width,
			"opacity":     opacity,
		},
	}
}

// PolygonElement returns a polygon with the given fill and stroke.  An
// empty stroke leaves the outline unpainted.
func PolygonElement(pts []param.Point, fill, stroke string, width, opacity float64) param.Element {
	props := param.Props{
		"points":  Points(pts),
		"fill":    fill,
		"opacity": opacity,
	}
	if stroke != "" {
		props["stroke"] = stroke
		props["strokeWidth"] = width
	}
	return param.Element{Type: param.Polygon, Props: props}
}
