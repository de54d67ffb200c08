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

	"github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/generative/param"
	"seehuhn.de/go/generative/random"
)

// Default colour settings, used when the parameters carry no colour.
const (
	defaultHue        = 200
	defaultSaturation = 0.7
	defaultLightness  = 0.55
)

// Base holds the state shared by all generators and implements the
// bookkeeping part of the [Generator] interface.  Concrete generators
// embed a Base and add a Generate method.
type Base struct {
	params param.Parameters
	meta   param.Metadata
	rng    *random.Source
}

// NewBase returns a Base for the given metadata, parameters and seed.
func NewBase(meta param.Metadata, params param.Parameters, seed string) Base {
	return Base{
		params: params,
		meta:   meta,
		rng:    random.New(seed),
	}
}

// Metadata implements [Generator].
func (b *Base) Metadata() param.Metadata {
	return b.meta
}

// Parameters implements [Generator].
func (b *Base) Parameters() param.Parameters {
	return b.params.Clone()
}

// UpdateParameters implements [Generator].
func (b *Base) UpdateParameters(u param.Partial) {
	b.params.Merge(u)
}

// Params returns the live parameter set.
func (b *Base) Params() *param.Parameters {
	return &b.params
}

// Random returns the next value of the generator's random stream.
func (b *Base) Random() float64 {
	return b.rng.Float64()
}

// Limits on the number of elements a generator produces.
const (
	MaxLayers    = 32
	MaxSecondary = 32
)

// Layers returns the number of layers to draw, in [1, MaxLayers].
func (b *Base) Layers() int {
	return min(max(1, b.params.Layers), MaxLayers)
}

// CalculatePhase returns the angular phase of item index out of total at
// the given time: index/total·2π·frequency + time + phaseOffset.
func (b *Base) CalculatePhase(index, total int, time float64) float64 {
	if total <= 0 {
		total = 1
	}
	return float64(index)/float64(total)*2*math.Pi*b.params.Frequency + time + b.params.PhaseOffset
}

// ApplyDamping returns value·damping^distance.
func (b *Base) ApplyDamping(value, distance float64) float64 {
	return value * math.Pow(b.params.Damping, distance)
}

// AddChaos returns value with a random offset of at most
// ±chaos·intensity/2.  One random value is consumed even when chaos is
// zero, so that the stream position does not depend on the chaos setting.
func (b *Base) AddChaos(value, intensity float64) float64 {
	r := b.rng.Float64()
	return value + (r-0.5)*b.params.Chaos*intensity
}

// ScaleToCanvas maps a percentage to canvas units: value/100·size.
func (b *Base) ScaleToCanvas(value, size float64) float64 {
	return value / 100 * size
}

// Eligible reports whether layer gets secondary elements.
func (b *Base) Eligible(layer int) bool {
	return b.params.Complexity > 0 && float64(layer) < float64(b.Layers())/2
}

// Secondary returns the number of secondary elements per eligible layer,
// ceil(complexity·k), limited to MaxSecondary.
func (b *Base) Secondary(k float64) int {
	return Count(math.Ceil(b.params.Complexity*k), 0, MaxSecondary)
}

// Count converts f to an integer in [lo, hi].  NaN gives lo.
func Count(f float64, lo, hi int) int {
	switch {
	case !(f > float64(lo)):
		return lo
	case f >= float64(hi):
		return hi
	}
	return int(f)
}

// Clamp restricts v to [lo, hi] if the generator keeps its elements
// inside the canvas, and returns v unchanged otherwise.
func (b *Base) Clamp(v, lo, hi float64) float64 {
	if !b.meta.ClampsToCanvas {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

// LayerColor returns the colour and opacity for the given layer.  The
// hue is rotated by layer/layers of a full turn and by time; opacity
// falls off with the layer index.  A palette in the parameters takes
// precedence over the computed hue.
func (b *Base) LayerColor(layer, layers int, time float64) (string, float64) {
	return b.ShadedColor(layer, layers, time, 0)
}

// ShadedColor is like LayerColor, with the lightness shifted by shade.
func (b *Base) ShadedColor(layer, layers int, time float64, shade float64) (string, float64) {
	hue, sat, light, opacity := float64(defaultHue), defaultSaturation, defaultLightness, 1.0
	var palette []string
	if c := b.params.Color; c != nil {
		hue = c.Hue
		if c.Saturation > 0 {
			sat = c.Saturation
		}
		if c.Lightness > 0 {
			light = c.Lightness
		}
		if c.Opacity > 0 {
			opacity = c.Opacity
		}
		palette = c.Palette
	}
	if layers < 1 {
		layers = 1
	}
	frac := float64(layer) / float64(layers)
	opacity *= 1 - 0.5*frac

	if len(palette) > 0 && shade == 0 {
		return palette[layer%len(palette)], opacity
	}

	hue = math.Mod(hue+360*frac+time*20*b.params.Speed(), 360)
	if hue < 0 {
		hue += 360
	}
	light = math.Max(0, math.Min(1, light+shade))
	return colorful.Hsl(hue, sat, light).Clamped().Hex(), opacity
}
