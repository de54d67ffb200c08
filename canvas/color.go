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
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2/strconv"
)

// Transparent is the result of parsing "none" and "transparent".
var Transparent = color.NRGBA{}

var named = map[string]color.NRGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
}

// ParseColor parses a CSS colour: #rgb, #rrggbb, #rrggbbaa, rgb(), rgba(),
// hsl(), hsla(), a small set of colour names, "none" and "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "none" || s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s, false)
	case strings.HasPrefix(s, "hsl"):
		return parseFunc(s, true)
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("canvas: unknown colour %q", s)
}

func parseHex(s string) (color.NRGBA, error) {
	alpha := uint8(255)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("canvas: invalid colour %q", s)
		}
		alpha = a
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("canvas: invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// parseFunc parses the functional notations rgb(), rgba(), hsl() and
// hsla().  Both comma and space separated arguments are accepted.
func parseFunc(s string, hsl bool) (color.NRGBA, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("canvas: invalid colour %q", s)
	}
	fields := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return color.NRGBA{}, fmt.Errorf("canvas: invalid colour %q", s)
	}

	var v [4]float64
	var pct [4]bool
	v[3], pct[3] = 1, false
	for i, f := range fields {
		x, n := strconv.ParseFloat([]byte(f))
		if n == 0 {
			return color.NRGBA{}, fmt.Errorf("canvas: invalid colour %q", s)
		}
		v[i] = x
		pct[i] = n < len(f) && f[n] == '%'
	}
	if pct[3] {
		v[3] /= 100
	}

	var c colorful.Color
	if hsl {
		h := math.Mod(v[0], 360)
		if h < 0 {
			h += 360
		}
		c = colorful.Hsl(h, v[1]/100, v[2]/100)
	} else {
		for i := range 3 {
			if pct[i] {
				v[i] *= 2.55
			}
		}
		c = colorful.Color{R: v[0] / 255, G: v[1] / 255, B: v[2] / 255}
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(v[3]) * 255))}, nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
