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

// Package generator defines the contract between generative plugins and
// the code that runs them.
//
// A [Generator] turns its parameter set, a time value and its seeded
// random source into a list of declarative shape elements.  Generators
// are cheap: callers construct a fresh instance through a [Registry] for
// every render which must be reproducible, since generation consumes the
// random stream.
package generator

import (
	"errors"
	"fmt"

	"seehuhn.de/go/generative/param"
)

// Generator is implemented by all generative plugins.
type Generator interface {
	// Generate returns the elements for the given options.  If
	// opts.Mode is not empty, the named alternate mode is used.
	Generate(opts param.Options) ([]param.Element, error)

	// Metadata returns the static description of the generator.
	Metadata() param.Metadata

	// UpdateParameters merges u into the parameter set in place.
	UpdateParameters(u param.Partial)

	// Parameters returns a copy of the current parameter set.
	Parameters() param.Parameters
}

// ModeGenerator is implemented by generators with alternate modes.
// The empty mode selects the default output.
type ModeGenerator interface {
	Generator
	GenerateMode(mode string, opts param.Options) ([]param.Element, error)
}

// Constructor creates a generator from parameters and a seed.
type Constructor func(params param.Parameters, seed string) Generator

var (
	// ErrUnknownGenerator is returned when a generator name is not
	// registered.
	ErrUnknownGenerator = errors.New("unknown generator")

	// ErrUnknownMode is returned for unsupported alternate modes.
	ErrUnknownMode = errors.New("unknown mode")
)

// UnknownMode returns an error wrapping ErrUnknownMode.
func UnknownMode(generator, mode string) error {
	return fmt.Errorf("%s: %w %q", generator, ErrUnknownMode, mode)
}

// ErrInvalidCanvas is returned for options without a drawable area.
var ErrInvalidCanvas = errors.New("invalid canvas size")

// CheckOptions validates the canvas size of opts.
func CheckOptions(opts param.Options) error {
	if !(opts.Width > 0 && opts.Height > 0) {
		return fmt.Errorf("%w %gx%g", ErrInvalidCanvas, opts.Width, opts.Height)
	}
	return nil
}

// Run calls g.Generate and converts a panic into an error.
func Run(g Generator, opts param.Options) (elems []param.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			elems, err = nil, fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return g.Generate(opts)
}
