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

// Package engine composes several generators into a layered scene.
//
// Layers are kept in insertion order, which is also the drawing order:
// later layers are drawn on top.  A failing layer never fails the scene;
// its output is replaced by an empty list and a warning is logged.
package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
)

type layer struct {
	id   string
	gen  generator.Generator
	mode string
}

// Output is the result of one layer.
type Output struct {
	LayerID  string
	Elements []param.Element

	// Err is set if the layer failed.  Elements is empty in this case.
	Err error
}

// Engine owns the generators of a scene.
// An Engine is not safe for concurrent use.
type Engine struct {
	reg    *generator.Registry
	log    *slog.Logger
	layers []layer
}

// New returns an engine which creates generators from reg.  If logger is
// nil, slog.Default() is used.
func New(reg *generator.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{reg: reg, log: logger}
}

// AddLayer creates a generator and adds it as a layer.  If a layer with
// the same id exists, its generator is replaced and the layer keeps its
// position.
func (e *Engine) AddLayer(id, name string, params param.Parameters, seed string) error {
	g, ok := e.reg.Create(name, params, seed)
	if !ok {
		return fmt.Errorf("layer %q: %w %q", id, generator.ErrUnknownGenerator, name)
	}
	e.AddGenerator(id, g)
	return nil
}

// AddGenerator adds an existing generator as a layer.
func (e *Engine) AddGenerator(id string, g generator.Generator) {
	if i := e.find(id); i >= 0 {
		e.layers[i].gen = g
		return
	}
	e.layers = append(e.layers, layer{id: id, gen: g})
}

// RemoveLayer removes a layer and reports whether it existed.
func (e *Engine) RemoveLayer(id string) bool {
	i := e.find(id)
	if i < 0 {
		return false
	}
	e.layers = slices.Delete(e.layers, i, i+1)
	return true
}

// Layer returns the generator of a layer.
func (e *Engine) Layer(id string) (generator.Generator, bool) {
	if i := e.find(id); i >= 0 {
		return e.layers[i].gen, true
	}
	return nil, false
}

// SetMode selects the generation mode of a layer, overriding the mode of
// the options passed to Generate.  The empty string restores the default.
// SetMode reports whether the layer exists.
func (e *Engine) SetMode(id, mode string) bool {
	i := e.find(id)
	if i < 0 {
		return false
	}
	e.layers[i].mode = mode
	return true
}

// Layers returns the layer ids in drawing order.
func (e *Engine) Layers() []string {
	ids := make([]string, len(e.layers))
	for i, l := range e.layers {
		ids[i] = l.id
	}
	return ids
}

func (e *Engine) find(id string) int {
	return slices.IndexFunc(e.layers, func(l layer) bool { return l.id == id })
}

// Generate runs all layers in drawing order.  The result has one entry
// per layer.
func (e *Engine) Generate(opts param.Options) []Output {
	out := make([]Output, len(e.layers))
	for i, l := range e.layers {
		out[i].LayerID = l.id
		o := opts
		if l.mode != "" {
			o.Mode = l.mode
		}
		elems, err := generator.Run(l.gen, o)
		if err != nil {
			e.log.Warn("layer failed",
				"layer", l.id,
				"generator", l.gen.Metadata().Name,
				"mode", o.Mode,
				"err", err)
			out[i].Elements = []param.Element{}
			out[i].Err = err
			continue
		}
		out[i].Elements = elems
	}
	return out
}

// GenerateSingle creates a fresh generator and runs it once.  The only
// error returned is for an unknown generator name; failures inside the
// generator are logged and give an empty list.
func (e *Engine) GenerateSingle(name string, params param.Parameters, opts param.Options, seed string) ([]param.Element, error) {
	g, ok := e.reg.Create(name, params, seed)
	if !ok {
		return nil, fmt.Errorf("%w %q", generator.ErrUnknownGenerator, name)
	}
	elems, err := generator.Run(g, opts)
	if err != nil {
		e.log.Warn("generator failed", "generator", name, "err", err)
		return []param.Element{}, nil
	}
	return elems, nil
}

// Flatten concatenates the elements of all layers in drawing order.
func Flatten(outputs []Output) []param.Element {
	var n int
	for _, o := range outputs {
		n += len(o.Elements)
	}
	elems := make([]param.Element, 0, n)
	for _, o := range outputs {
		elems = append(elems, o.Elements...)
	}
	return elems
}
