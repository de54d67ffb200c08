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

// Package generative renders collections of entities, each drawn by a
// generator, a compiled template or user supplied drawing code.
//
// A [Renderer] owns the generator registry, the template executor and a
// per-entity render cache.  [Renderer.RenderFrame] renders all entities
// of a frame and composites them in collection order.
//
// Rendering is deterministic: for fixed parameters, seed and time an
// entity always produces the same pixels.
package generative

import (
	"errors"

	"github.com/google/uuid"

	"seehuhn.de/go/generative/param"
)

// Entity is a rectangular region of a frame, together with the
// description of what to draw there.
type Entity struct {
	ID     string  `toml:"id" json:"id"`
	Name   string  `toml:"name,omitempty" json:"name,omitempty"`
	X      float64 `toml:"x" json:"x"`
	Y      float64 `toml:"y" json:"y"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	// TemplateID names a registered template or generator.
	TemplateID string `toml:"template,omitempty" json:"templateId,omitempty"`

	// Mode selects an alternate generator mode.
	Mode string `toml:"mode,omitempty" json:"mode,omitempty"`

	// Code is drawing code, run if the template is missing or fails.
	Code string `toml:"code,omitempty" json:"code,omitempty"`

	Params param.Parameters `toml:"params" json:"params"`
	Seed   string           `toml:"seed,omitempty" json:"seed,omitempty"`
}

// NewEntity returns an entity with a fresh random id.
func NewEntity() Entity {
	return Entity{ID: uuid.NewString()}
}

var (
	// ErrEmptyEntity is returned for entities without a pixel area.
	ErrEmptyEntity = errors.New("entity has no area")

	// ErrEntityTooLarge is returned for entities whose bitmap would
	// exceed MaxBitmapSize.
	ErrEntityTooLarge = errors.New("entity too large")
)
