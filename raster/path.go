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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Path records path construction commands.  The zero value is an empty
// path, ready to use.  All returns the recorded segments in the form
// accepted by the fill and stroke methods of [Rasteriser].
type Path struct {
	Cmds   []path.Command
	Coords []vec.Vec2
}

// MoveTo starts a new subpath at p.
func (d *Path) MoveTo(p vec.Vec2) *Path {
	d.Cmds = append(d.Cmds, path.CmdMoveTo)
	d.Coords = append(d.Coords, p)
	return d
}

// LineTo appends a straight segment.
func (d *Path) LineTo(p vec.Vec2) *Path {
	d.Cmds = append(d.Cmds, path.CmdLineTo)
	d.Coords = append(d.Coords, p)
	return d
}

// QuadTo appends a quadratic Bézier segment.
func (d *Path) QuadTo(p1, p2 vec.Vec2) *Path {
	d.Cmds = append(d.Cmds, path.CmdQuadTo)
	d.Coords = append(d.Coords, p1, p2)
	return d
}

// CubeTo appends a cubic Bézier segment.
func (d *Path) CubeTo(p1, p2, p3 vec.Vec2) *Path {
	d.Cmds = append(d.Cmds, path.CmdCubeTo)
	d.Coords = append(d.Coords, p1, p2, p3)
	return d
}

// Close closes the current subpath.
func (d *Path) Close() *Path {
	d.Cmds = append(d.Cmds, path.CmdClose)
	return d
}

// Reset removes all segments but keeps the allocated storage.
func (d *Path) Reset() {
	d.Cmds = d.Cmds[:0]
	d.Coords = d.Coords[:0]
}

// All iterates over the recorded segments.  The point slices passed to
// the loop body alias the internal storage and must not be modified.
func (d *Path) All() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		k := 0
		for _, cmd := range d.Cmds {
			var n int
			switch cmd {
			case path.CmdMoveTo, path.CmdLineTo:
				n = 1
			case path.CmdQuadTo:
				n = 2
			case path.CmdCubeTo:
				n = 3
			}
			if !yield(cmd, d.Coords[k:k+n]) {
				return
			}
			k += n
		}
	}
}
