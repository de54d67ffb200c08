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

package param

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Options describes the canvas and the moment for which elements are
// generated.
type Options struct {
	Width      float64 `json:"width" toml:"width"`
	Height     float64 `json:"height" toml:"height"`
	Resolution int     `json:"resolution" toml:"resolution"` // sample points per curve
	Time       float64 `json:"time" toml:"time"`             // seconds
	Seed       string  `json:"seed,omitempty" toml:"seed,omitempty"`

	// Center defaults to the middle of the canvas.
	Center *Point `json:"center,omitempty" toml:"center,omitempty"`

	// PixelRatio defaults to 1.
	PixelRatio float64 `json:"pixelRatio,omitempty" toml:"pixel_ratio,omitempty"`

	// Mode selects an alternate generation mode.  The empty string
	// selects the default mode.
	Mode string `json:"mode,omitempty" toml:"mode,omitempty"`
}

// DefaultResolution is used when Options.Resolution is not positive.
const DefaultResolution = 100

// MaxResolution bounds the sampling resolution.
const MaxResolution = 1000

// CenterPoint returns the effective centre of the canvas.
func (o *Options) CenterPoint() Point {
	if o.Center != nil {
		return *o.Center
	}
	return Point{X: o.Width / 2, Y: o.Height / 2}
}

// Samples returns the effective sampling resolution.
func (o *Options) Samples() int {
	if o.Resolution <= 0 {
		return DefaultResolution
	}
	return min(o.Resolution, MaxResolution)
}

// Ratio returns the effective pixel ratio.
func (o *Options) Ratio() float64 {
	if !(o.PixelRatio > 0) {
		return 1
	}
	return o.PixelRatio
}

// MinSide returns the smaller of the canvas width and height.
func (o *Options) MinSide() float64 {
	return min(o.Width, o.Height)
}
