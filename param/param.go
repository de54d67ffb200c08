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

// Package param defines the data shapes shared by generators, the engine
// and the renderers: parameter sets, generation options, generated
// elements and generator metadata.
package param

import (
	"maps"
)

// Parameters is the numeric parameter set which drives a generator.
//
// The six core fields are always present.  The remaining fields are
// optional; a zero value means "use the generator default" unless noted
// otherwise.  Ranges are documented in [Metadata.Ranges] but are not
// enforced here, see [Parameters.Validate].
type Parameters struct {
	Frequency  float64 `json:"frequency" toml:"frequency"`
	Amplitude  float64 `json:"amplitude" toml:"amplitude"`
	Complexity float64 `json:"complexity" toml:"complexity"` // in [0,1]
	Chaos      float64 `json:"chaos" toml:"chaos"`           // in [0,1]
	Damping    float64 `json:"damping" toml:"damping"`       // in [0,1]
	Layers     int     `json:"layers" toml:"layers"`         // at least 1

	Radius   float64 `json:"radius,omitempty" toml:"radius,omitempty"`
	Sides    int     `json:"sides,omitempty" toml:"sides,omitempty"`
	Rotation float64 `json:"rotation,omitempty" toml:"rotation,omitempty"` // degrees, zero is meaningful
	Scale    float64 `json:"scale,omitempty" toml:"scale,omitempty"`
	BarCount int     `json:"barCount,omitempty" toml:"bar_count,omitempty"`

	// PhaseOffset is added to every phase computed by a generator.
	PhaseOffset float64 `json:"phaseOffset,omitempty" toml:"phase_offset,omitempty"`

	Color     *Color     `json:"color,omitempty" toml:"color,omitempty"`
	Animation *Animation `json:"animation,omitempty" toml:"animation,omitempty"`

	// Custom holds generator or template specific fields.  Generators
	// ignore keys they do not know; the map is passed through unchanged.
	Custom map[string]any `json:"custom,omitempty" toml:"custom,omitempty"`
}

// Color holds optional colour settings.  Hue is in degrees,
// Saturation, Lightness and Opacity are in [0,1].
type Color struct {
	Hue        float64  `json:"hue" toml:"hue"`
	Saturation float64  `json:"saturation,omitempty" toml:"saturation,omitempty"`
	Lightness  float64  `json:"lightness,omitempty" toml:"lightness,omitempty"`
	Opacity    float64  `json:"opacity,omitempty" toml:"opacity,omitempty"`
	Background string   `json:"background,omitempty" toml:"background,omitempty"`
	Palette    []string `json:"palette,omitempty" toml:"palette,omitempty"`
}

// Animation holds optional animation settings.
type Animation struct {
	Speed    float64 `json:"speed,omitempty" toml:"speed,omitempty"`
	Easing   string  `json:"easing,omitempty" toml:"easing,omitempty"`
	Duration float64 `json:"duration,omitempty" toml:"duration,omitempty"` // seconds
}

// Clone returns a deep copy of p.
func (p Parameters) Clone() Parameters {
	if p.Color != nil {
		c := *p.Color
		c.Palette = append([]string(nil), p.Color.Palette...)
		p.Color = &c
	}
	if p.Animation != nil {
		a := *p.Animation
		p.Animation = &a
	}
	if p.Custom != nil {
		p.Custom = maps.Clone(p.Custom)
	}
	return p
}

// Speed returns the animation speed, defaulting to 1.
func (p *Parameters) Speed() float64 {
	if p.Animation == nil || p.Animation.Speed == 0 {
		return 1
	}
	return p.Animation.Speed
}

// Float returns a numeric value from the custom bag.
func (p *Parameters) Float(key string, def float64) float64 {
	switch v := p.Custom[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Partial is an in-place update of a parameter set.  Nil fields are left
// unchanged; Custom entries are merged key by key.
type Partial struct {
	Frequency   *float64
	Amplitude   *float64
	Complexity  *float64
	Chaos       *float64
	Damping     *float64
	Layers      *int
	Radius      *float64
	Sides       *int
	Rotation    *float64
	Scale       *float64
	BarCount    *int
	PhaseOffset *float64
	Color       *Color
	Animation   *Animation
	Custom      map[string]any
}

// Merge applies the non-nil fields of u to p.
func (p *Parameters) Merge(u Partial) {
	setFloat(&p.Frequency, u.Frequency)
	setFloat(&p.Amplitude, u.Amplitude)
	setFloat(&p.Complexity, u.Complexity)
	setFloat(&p.Chaos, u.Chaos)
	setFloat(&p.Damping, u.Damping)
	setFloat(&p.Radius, u.Radius)
	setFloat(&p.Rotation, u.Rotation)
	setFloat(&p.Scale, u.Scale)
	setFloat(&p.PhaseOffset, u.PhaseOffset)
	if u.Layers != nil {
		p.Layers = *u.Layers
	}
	if u.Sides != nil {
		p.Sides = *u.Sides
	}
	if u.BarCount != nil {
		p.BarCount = *u.BarCount
	}
	if u.Color != nil {
		c := *u.Color
		p.Color = &c
	}
	if u.Animation != nil {
		a := *u.Animation
		p.Animation = &a
	}
	if len(u.Custom) > 0 {
		if p.Custom == nil {
			p.Custom = make(map[string]any, len(u.Custom))
		}
		maps.Copy(p.Custom, u.Custom)
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v, for building a [Partial].
func Ptr[T any](v T) *T {
	return &v
}
