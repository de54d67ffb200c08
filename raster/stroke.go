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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke paints the outline of p using Width, Cap, Join, MiterLimit, Dash
// and DashPhase.  The emit callback is used as for [Rasteriser.FillNonZero].
//
// The outline is built as a union of simple polygons: one quadrilateral per
// segment plus separate pieces for joins and caps.  All pieces are given
// the same orientation, so that filling them together with the nonzero
// rule paints every covered pixel exactly once.
func (r *Rasteriser) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	if r.Width <= 0 {
		return
	}
	r.flattenSubpaths(p)
	if len(r.Dash) > 0 {
		r.applyDash()
	}

	r.pieces = r.pieces[:0]
	r.pieceStart = r.pieceStart[:0]
	d := r.Width / 2
	for _, sp := range r.subpaths {
		r.strokePolyline(r.polyline[sp.start:sp.end], sp.closed, d)
	}

	r.beginEdges()
	for i, start := range r.pieceStart {
		end := len(r.pieces)
		if i+1 < len(r.pieceStart) {
			end = r.pieceStart[i+1]
		}
		r.addPolygon(r.pieces[start:end])
	}
	r.scan(false, emit)
}

// flattenSubpaths converts p into polylines in user space.
// Results are stored in r.polyline and r.subpaths.
func (r *Rasteriser) flattenSubpaths(p path.Path) {
	r.polyline = r.polyline[:0]
	r.subpaths = r.subpaths[:0]

	start := -1
	finish := func(closed bool) {
		if start >= 0 {
			r.subpaths = append(r.subpaths, subpath{start: start, end: len(r.polyline), closed: closed})
		}
		start = -1
	}
	appendPoint := func(_, b vec.Vec2) {
		last := r.polyline[len(r.polyline)-1]
		if b.Sub(last).Length() < zeroLengthThreshold {
			return
		}
		r.polyline = append(r.polyline, b)
	}

	var current vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current = pts[0]
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			if start < 0 {
				start = len(r.polyline)
				r.polyline = append(r.polyline, current)
			}
			switch cmd {
			case path.CmdLineTo:
				appendPoint(current, pts[0])
				current = pts[0]
			case path.CmdQuadTo:
				r.flattenQuadratic(current, pts[0], pts[1], appendPoint)
				current = pts[1]
			default:
				r.flattenCubic(current, pts[0], pts[1], pts[2], appendPoint)
				current = pts[2]
			}
		case path.CmdClose:
			if start >= 0 {
				current = r.polyline[start]
			}
			finish(true)
		}
	}
	finish(false)
}

// applyDash replaces the flattened subpaths by the "on" intervals of the
// dash pattern.  Dashes are open polylines.  Patterns which would produce
// more than maxDashes dashes leave the path unchanged.
func (r *Rasteriser) applyDash() {
	dash := r.Dash
	if len(dash)%2 == 1 {
		dash = append(append([]float64(nil), dash...), dash...)
	}
	total, longest := 0.0, 0.0
	for _, v := range dash {
		total += max(v, 0)
		longest = max(longest, v)
	}
	if !(longest > 1e-12) || math.IsInf(total, 0) {
		return
	}
	length := 0.0
	for _, sp := range r.subpaths {
		pts := r.polyline[sp.start:sp.end]
		for i := 1; i < len(pts); i++ {
			length += pts[i].Sub(pts[i-1]).Length()
		}
		if sp.closed && len(pts) > 1 {
			length += pts[0].Sub(pts[len(pts)-1]).Length()
		}
	}
	if !(length/total*float64(len(dash)) < maxDashes) {
		return
	}

	out := r.dashScratch[:0]
	var subs []subpath
	for _, sp := range r.subpaths {
		pts := r.polyline[sp.start:sp.end]
		n := len(pts)
		segs := n - 1
		if sp.closed {
			segs = n
		}

		idx, remain, on := dashStart(dash, r.DashPhase, total)
		dashBegin := -1
		for i := 0; i < segs; i++ {
			a, b := pts[i], pts[(i+1)%n]
			segLen := b.Sub(a).Length()
			pos := 0.0
			for pos < segLen {
				step := min(remain, segLen-pos)
				if on {
					if dashBegin < 0 {
						dashBegin = len(out)
						out = append(out, lerp(a, b, pos/segLen))
					}
					out = append(out, lerp(a, b, (pos+step)/segLen))
				}
				pos += step
				remain -= step
				for remain <= 1e-12 {
					if on && dashBegin >= 0 {
						subs = append(subs, subpath{start: dashBegin, end: len(out)})
						dashBegin = -1
					}
					idx = (idx + 1) % len(dash)
					remain = max(dash[idx], 0)
					on = !on
				}
			}
		}
		if dashBegin >= 0 {
			subs = append(subs, subpath{start: dashBegin, end: len(out)})
		}
	}

	r.polyline, r.dashScratch = out, r.polyline[:0]
	r.subpaths = append(r.subpaths[:0], subs...)
}

// dashStart locates the dash entry at the given phase.
func dashStart(dash []float64, phase, total float64) (idx int, remain float64, on bool) {
	phase = math.Mod(phase, total)
	if phase < 0 {
		phase += total
	}
	on = true
	for phase >= max(dash[idx], 0) {
		phase -= max(dash[idx], 0)
		idx = (idx + 1) % len(dash)
		on = !on
	}
	return idx, max(dash[idx], 0) - phase, on
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// strokePolyline appends the outline pieces of one polyline to r.pieces.
func (r *Rasteriser) strokePolyline(raw []vec.Vec2, closed bool, d float64) {
	pts := r.compact[:0]
	for _, pt := range raw {
		if len(pts) > 0 && pt.Sub(pts[len(pts)-1]).Length() < zeroLengthThreshold {
			continue
		}
		pts = append(pts, pt)
	}
	if closed && len(pts) > 1 && pts[0].Sub(pts[len(pts)-1]).Length() < zeroLengthThreshold {
		pts = pts[:len(pts)-1]
	}
	r.compact = pts

	n := len(pts)
	switch {
	case n == 0:
		return
	case n == 1:
		// zero-length subpath: only round and square caps paint anything
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(pts[0], d)
		case graphics.LineCapSquare:
			r.addRect(pts[0].Add(vec.Vec2{X: -d}), vec.Vec2{X: 1}, 2*d, d)
		}
		return
	case n == 2:
		closed = false
	}

	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		t := unit(b.Sub(a))
		r.addRect(a, t, b.Sub(a).Length(), d)
	}

	for i := 0; i < n; i++ {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev, cur, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		r.addJoin(cur, unit(cur.Sub(prev)), unit(next.Sub(cur)), d)
	}

	if !closed {
		r.addCap(pts[0], unit(pts[0].Sub(pts[1])), d)
		r.addCap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])), d)
	}
}

// addRect adds the rectangle which starts at the segment point a, runs
// for the given length along the unit tangent t, and extends d to both
// sides.
func (r *Rasteriser) addRect(a, t vec.Vec2, length, d float64) {
	n := normal(t)
	b := a.Add(t.Mul(length))
	r.beginPiece()
	r.pieces = append(r.pieces,
		a.Add(n.Mul(d)), b.Add(n.Mul(d)),
		b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
}

// addJoin adds the join geometry at the corner p between the incoming
// direction t1 and the outgoing direction t2.
func (r *Rasteriser) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < collinearityThreshold && t1.Dot(t2) > 0 {
		return
	}
	if r.Join == graphics.LineJoinRound {
		r.addDisc(p, d)
		return
	}

	// the outer side of the corner is opposite to the turn direction
	s := d
	if cross > 0 {
		s = -d
	}
	n1, n2 := normal(t1), normal(t2)
	o1, o2 := p.Add(n1.Mul(s)), p.Add(n2.Mul(s))

	if r.Join == graphics.LineJoinMiter {
		cosHalf := math.Sqrt(max((1+t1.Dot(t2))/2, 0))
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit {
			tip := p.Add(n1.Add(n2).Mul(s / (1 + n1.Dot(n2))))
			r.beginPiece()
			r.pieces = append(r.pieces, p, o1, tip, o2)
			return
		}
	}
	r.beginPiece()
	r.pieces = append(r.pieces, p, o1, o2)
}

// addCap adds the cap at the end point p of an open polyline; t is the
// unit tangent pointing away from the line.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(p, d)
	case graphics.LineCapSquare:
		r.addRect(p, t, d, d)
	}
}

// addDisc adds a polygonal approximation of a circle, with the number of
// vertices chosen from the device space radius and Flatness.
func (r *Rasteriser) addDisc(center vec.Vec2, radius float64) {
	dev := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())
	n := 8
	if dev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/dev)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, segmentCount(2*math.Pi/step))
		}
	}

	r.beginPiece()
	for i := range n {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		r.pieces = append(r.pieces, center.Add(vec.Vec2{X: cos * radius, Y: sin * radius}))
	}
}

func (r *Rasteriser) beginPiece() {
	r.pieceStart = append(r.pieceStart, len(r.pieces))
}

// addPolygon adds the edges of a closed polygon, normalised to positive
// orientation.
func (r *Rasteriser) addPolygon(poly []vec.Vec2) {
	n := len(poly)
	if n < 3 {
		return
	}
	area := 0.0
	for i, a := range poly {
		b := poly[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	if area == 0 {
		return
	}
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		if area < 0 {
			a, b = b, a
		}
		r.addEdge(a, b)
	}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return vec.Vec2{X: 1}
	}
	return v.Mul(1 / l)
}

// normal returns t rotated by 90 degrees counter-clockwise.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}
