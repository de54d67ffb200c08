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

import (
	"errors"
	"fmt"
)

// Range is the documented closed interval of a parameter.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Metadata describes a generator.
type Metadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Modes       []string         `json:"modes,omitempty"`
	Defaults    Parameters       `json:"defaults"`
	Ranges      map[string]Range `json:"ranges,omitempty"`

	// ClampsToCanvas is set for generators which keep secondary
	// elements inside the canvas.
	ClampsToCanvas bool `json:"clampsToCanvas"`
}

// HasMode reports whether mode is one of the generator's alternate modes.
func (m *Metadata) HasMode(mode string) bool {
	for _, x := range m.Modes {
		if x == mode {
			return true
		}
	}
	return false
}

// CoreRanges are the documented ranges of the core parameters.
var CoreRanges = map[string]Range{
	"frequency":  {Min: 0.1, Max: 10},
	"amplitude":  {Min: 0, Max: 200},
	"complexity": {Min: 0, Max: 1},
	"chaos":      {Min: 0, Max: 1},
	"damping":    {Min: 0, Max: 1},
	"layers":     {Min: 1, Max: 10},
}

// RangeError reports a parameter outside its documented range.
type RangeError struct {
	Name  string
	Value float64
	Range Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("parameter %s=%g outside [%g, %g]", e.Name, e.Value, e.Range.Min, e.Range.Max)
}

// Validate checks the core parameters against ranges, falling back to
// CoreRanges for names missing from ranges.  All violations are joined
// into the returned error.  Parameters are never modified; generators
// accept out-of-range values.
func (p *Parameters) Validate(ranges map[string]Range) error {
	values := []struct {
		name string
		v    float64
	}{
		{"frequency", p.Frequency},
		{"amplitude", p.Amplitude},
		{"complexity", p.Complexity},
		{"chaos", p.Chaos},
		{"damping", p.Damping},
		{"layers", float64(p.Layers)},
	}
	var errs []error
	for _, x := range values {
		r, ok := ranges[x.name]
		if !ok {
			r, ok = CoreRanges[x.name]
		}
		if ok && !r.Contains(x.v) {
			errs = append(errs, &RangeError{Name: x.name, Value: x.v, Range: r})
		}
	}
	return errors.Join(errs...)
}
