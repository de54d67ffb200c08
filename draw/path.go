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

	"github.com/tdewolff/parse/v2/strconv"

	"seehuhn.de/go/generative/canvas"
)

// ErrPathSyntax is returned for malformed path data or point lists.
var ErrPathSyntax = errors.New("invalid path data")

type scanner struct {
	buf []byte
	pos int
}

func (s *scanner) skipSeparators() {
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case ' ', ',', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) done() bool {
	s.skipSeparators()
	return s.pos >= len(s.buf)
}

func (s *scanner) atNumber() bool {
	if s.done() {
		return false
	}
	c := s.buf[s.pos]
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.'
}

func (s *scanner) number() (float64, error) {
	s.skipSeparators()
	f, n := strconv.ParseFloat(s.buf[s.pos:])
	if n == 0 {
		return 0, fmt.Errorf("%w: number expected at offset %d", ErrPathSyntax, s.pos)
	}
	s.pos += n
	return f, nil
}

func (s *scanner) numbers(dst []float64) error {
	for i := range dst {
		x, err := s.number()
		if err != nil {
			return err
		}
		dst[i] = x
	}
	return nil
}

// Path adds the subpaths described by the SVG path data d to the current
// path of s.  The commands M, L, H, V, C, Q and Z are supported in their
// absolute and relative forms, including implicit repetition.  On error,
// the segments before the error have been added.
func Path(s canvas.Surface, d string) error {
	sc := &scanner{buf: []byte(d)}
	var curX, curY, startX, startY float64
	var cmd byte
	var args [6]float64

	for !sc.done() {
		c := sc.buf[sc.pos]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return fmt.Errorf("%w: command expected at offset %d", ErrPathSyntax, sc.pos)
		}

		rel := cmd >= 'a'
		var dx, dy float64
		if rel {
			dx, dy = curX, curY
		}

		switch cmd | 0x20 { // lower case
		case 'm':
			if err := sc.numbers(args[:2]); err != nil {
				return err
			}
			curX, curY = args[0]+dx, args[1]+dy
			startX, startY = curX, curY
			s.MoveTo(curX, curY)
			// further coordinate pairs are implicit line segments
			cmd -= 'm' - 'l'
		case 'l':
			if err := sc.numbers(args[:2]); err != nil {
				return err
			}
			curX, curY = args[0]+dx, args[1]+dy
			s.LineTo(curX, curY)
		case 'h':
			if err := sc.numbers(args[:1]); err != nil {
				return err
			}
			curX = args[0] + dx
			s.LineTo(curX, curY)
		case 'v':
			if err := sc.numbers(args[:1]); err != nil {
				return err
			}
			curY = args[0] + dy
			s.LineTo(curX, curY)
		case 'c':
			if err := sc.numbers(args[:6]); err != nil {
				return err
			}
			curX, curY = args[4]+dx, args[5]+dy
			s.BezierCurveTo(args[0]+dx, args[1]+dy, args[2]+dx, args[3]+dy, curX, curY)
		case 'q':
			if err := sc.numbers(args[:4]); err != nil {
				return err
			}
			curX, curY = args[2]+dx, args[3]+dy
			s.QuadraticCurveTo(args[0]+dx, args[1]+dy, curX, curY)
		case 'z':
			s.ClosePath()
			curX, curY = startX, startY
			cmd = 0
			if sc.atNumber() {
				return fmt.Errorf("%w: unexpected number after Z at offset %d", ErrPathSyntax, sc.pos)
			}
		default:
			return fmt.Errorf("%w: unsupported command %q", ErrPathSyntax, cmd)
		}
	}
	return nil
}

// Polygon adds a closed subpath through the SVG point list points.
func Polygon(s canvas.Surface, points string) error {
	sc := &scanner{buf: []byte(points)}
	var xy [2]float64
	first := true
	for !sc.done() {
		if err := sc.numbers(xy[:]); err != nil {
			return err
		}
		if first {
			s.MoveTo(xy[0], xy[1])
			first = false
		} else {
			s.LineTo(xy[0], xy[1])
		}
	}
	if first {
		return fmt.Errorf("%w: empty point list", ErrPathSyntax)
	}
	s.ClosePath()
	return nil
}
