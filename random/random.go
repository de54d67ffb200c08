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

// Package random provides the seeded pseudo-random source used by the
// generators.
//
// A Source is a 32-bit linear congruential generator whose state is
// derived from a string seed.  Two sources built from the same seed return
// the same sequence, as long as they are called the same number of times.
// The source is not suitable for cryptographic use.
package random

import (
	"hash/fnv"
)

// LCG constants (Numerical Recipes).
const (
	multiplier = 1664525
	increment  = 1013904223
)

// Source is a deterministic stream of pseudo-random numbers.
// A Source is not safe for concurrent use.
type Source struct {
	state uint32
}

// New returns a source whose state is the 32-bit FNV-1a hash of seed.
func New(seed string) *Source {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return &Source{state: h.Sum32()}
}

// Float64 returns the next value in [0,1).
func (s *Source) Float64() float64 {
	s.state = s.state*multiplier + increment // wraps mod 2^32
	return float64(s.state) / (1 << 32)
}

// Intn returns the next value in [0,n).  It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	return int(s.Float64() * float64(n))
}

// Range returns the next value in [lo,hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}
