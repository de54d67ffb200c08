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

package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// Rasteriser converts vector paths to anti-aliased pixel coverage.
// Coverage is the fraction of a pixel covered by the painted area, from 0
// (outside) to 1 (inside).  One Rasteriser is meant to be reused for many
// paths: internal buffers grow as needed and are never released.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the style used at the open ends of stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used where stroked segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width.  Must be at least 1.
	MiterLimit float64

	// Dash holds alternating on/off lengths in user space units.
	// Nil means a solid stroke.
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64

	cover     []float32 // per-pixel change of the winding accumulator; reused as output
	area      []float32 // per-pixel partial area
	edges     []edge
	activeIdx []int

	// edge bounding box in device space
	bboxEmpty          bool
	bboxXMin, bboxXMax float64
	bboxYMin, bboxYMax float64

	// stroking buffers
	polyline    []vec.Vec2 // flattened points of all subpaths, contiguous
	subpaths    []subpath
	pieces      []vec.Vec2 // outline polygons, contiguous
	pieceStart  []int      // start index of each polygon in pieces
	dashScratch []vec.Vec2
	compact     []vec.Vec2
}

// subpath is one flattened subpath, stored as a range in Rasteriser.polyline.
type subpath struct {
	start, end int
	closed     bool
}

// NewRasteriser returns a Rasteriser for the given clip rectangle with
// identity CTM and PDF default stroke parameters.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default graphics parameters and sets a new clip
// rectangle.  Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

// FillNonZero fills the path using the nonzero winding rule.  The emit
// callback receives coverage row by row, starting at device column xMin.
// The coverage slice is only valid during the call.
func (r *Rasteriser) FillNonZero(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walkPath(p, r.addEdge)
	r.scan(false, emit)
}

// FillEvenOdd fills the path using the even-odd rule.
// The emit callback is used as for [Rasteriser.FillNonZero].
func (r *Rasteriser) FillEvenOdd(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walkPath(p, r.addEdge)
	r.scan(true, emit)
}

// walkPath flattens all segments of p and passes them to emit.
// Each subpath is implicitly closed, as required for filling.
func (r *Rasteriser) walkPath(p path.Path, emit func(a, b vec.Vec2)) {
	var current, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != start {
				emit(current, start)
			}
			current = pts[0]
			start = current
			open = true
		case path.CmdLineTo:
			emit(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], emit)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], emit)
			current = pts[2]
		case path.CmdClose:
			if current != start {
				emit(current, start)
			}
			current = start
		}
	}
	if open && current != start {
		emit(current, start)
	}
}

// transformLinear applies the linear part of the CTM to v.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// All points are in user space; the segment count is chosen so that the
// device space error stays below Flatness.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = segmentCount(math.Sqrt(dev / r.Flatness))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = segmentCount(f)
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// segmentCount rounds f up to an integer in [1, maxFlattenSegments].
// NaN gives the maximum.
func segmentCount(f float64) int {
	if !(f < maxFlattenSegments) {
		return maxFlattenSegments
	}
	return max(1, int(math.Ceil(f)))
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms a user space segment to device space and appends it
// to the edge list.  Horizontal edges do not contribute and are dropped,
// as are edges with non-finite coordinates.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := r.CTM.Apply(p0.X, p0.Y)
	x1, y1 := r.CTM.Apply(p1.X, p1.Y)

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	dxdy := (x1 - x0) / dy
	if !finite(x0, y0, x1, y1, dxdy) {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: dxdy})

	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = min(x0, x1), max(x0, x1)
		r.bboxYMin, r.bboxYMax = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, x0, x1)
	r.bboxXMax = max(r.bboxXMax, x0, x1)
	r.bboxYMin = min(r.bboxYMin, y0, y1)
	r.bboxYMax = max(r.bboxYMax, y0, y1)
}

// deviceBounds returns the pixel range touched by the edge list,
// intersected with the clip rectangle.
func (r *Rasteriser) deviceBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	// clamp before converting, the bounding box may be huge
	xMin = int(max(math.Floor(r.bboxXMin), r.Clip.LLx))
	xMax = int(min(math.Floor(r.bboxXMax)+1, r.Clip.URx))
	yMin = int(max(math.Floor(r.bboxYMin), r.Clip.LLy))
	yMax = int(min(math.Floor(r.bboxYMax)+1, r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage accumulation:
//
// Every edge crossing a pixel adds
//
//	cover = sign * dy           (sign +1 for downward edges, -1 for upward)
//	area  = cover * (1 - xFrac) (xFrac: horizontal position inside the pixel)
//
// Integrating a scanline left to right gives the signed covered area
//
//	coverage[i] = sum(cover[0:i]) + area[i]
//
// which is folded into [0,1] according to the fill rule.  Edges left of the
// bounding box are accumulated into the first pixel.

// scan rasterises the current edge list with an active edge list,
// emitting one coverage row per scanline that has non-zero coverage.
func (r *Rasteriser) scan(evenOdd bool, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.deviceBounds()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})
	r.activeIdx = r.activeIdx[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top, bottom := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].yMin() < bottom {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if e.yMax() <= top {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			if r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if evenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulateEdge adds the contribution of e within scanline y to the
// cover and area buffers, which are indexed by x - bboxXMin.  It reports
// whether anything was added.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) bool {
	yTop := max(float64(y), e.yMin())
	yBot := min(float64(y+1), e.yMax())
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := min(xTop, xBot), max(xTop, xBot)
	if !finite(xLeft, xRight) {
		return false
	}
	left, right := float64(bboxXMin), float64(bboxXMax)

	switch {
	case xRight < left:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return true
	case xLeft >= right:
		return false
	}

	// Columns outside [bboxXMin, bboxXMax) are not visited: everything
	// left of the box is collected in column bboxXMin-1, which addSpan
	// folds into the first pixel, and everything right of it is dropped.
	if math.Floor(xLeft) == math.Floor(xRight) {
		addSpan(e, yTop, yBot, sign, int(math.Floor(xLeft)), cover, area, bboxXMin, bboxXMax)
		return true
	}
	pixLeft := int(max(math.Floor(xLeft), left-1))
	pixRight := int(min(math.Floor(xRight), right-1))

	// the edge crosses several pixel columns: split at column boundaries
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		xa, xb := float64(pix), float64(pix+1)
		if pix < bboxXMin {
			xa = xLeft
		}
		ya := e.y0 + dydx*(xa-e.x0)
		yb := e.y0 + dydx*(xb-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		addSpan(e, lo, hi, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
	return true
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// addSpan records the part of e between yTop and yBot, which lies inside
// pixel column pix.
func addSpan(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(yBot-yTop)
	switch {
	case pix < bboxXMin:
		cover[0] += c
		area[0] += c
	case pix < bboxXMax:
		xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
		frac := xMid - float64(pix)
		idx := pix - bboxXMin
		cover[idx] += c
		area[idx] += c * float32(1-frac)
	}
}

// integrateNonZero turns accumulated cover/area values into coverage using
// the nonzero winding rule.  The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd is like integrateNonZero, but folds the winding
// number using the even-odd rule.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(int(v/2))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips leading and trailing zeros.  It returns nil if the row
// is entirely zero.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

const (
	// defaultFlatness is the curve tolerance in device pixels.  0.25 is
	// below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF/PostScript: joins with an interior
	// angle below about 11.5 degrees are bevelled.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length of a stroked segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the |sin| below which two stroke segments
	// are treated as collinear and need no join.
	collinearityThreshold = 1e-6

	// maxFlattenSegments bounds the number of line segments used for one
	// curve or disc.
	maxFlattenSegments = 4096

	// maxDashes bounds the number of dashes generated for one stroke.
	// Longer patterns are stroked solid.
	maxDashes = 1 << 16
)
