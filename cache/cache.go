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

// Package cache keeps one rendered bitmap per entity.
//
// An entry is reused as long as the entity's parameters, custom code and
// quantised time are unchanged.  Time is quantised to multiples of a step
// (0.1 by default), so that a slowly advancing clock does not force a new
// render on every frame.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image"
	"math"
	"sync"

	"seehuhn.de/go/generative/param"
)

// DefaultStep is the time quantisation step used when New is called
// with a non-positive step.
const DefaultStep = 0.1

type entry struct {
	bitmap *image.RGBA
	hash   uint64
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int
	Misses int
}

// Cache maps entity ids to rendered bitmaps.
// All methods are safe for concurrent use.
type Cache struct {
	step float64

	mu      sync.Mutex
	entries map[string]entry
	stats   Stats
}

// New returns an empty cache quantising time to multiples of step.
func New(step float64) *Cache {
	if !(step > 0) {
		step = DefaultStep
	}
	return &Cache{
		step:    step,
		entries: make(map[string]entry),
	}
}

// Step returns the time quantisation step.
func (c *Cache) Step() float64 {
	return c.step
}

// Key returns the cache key for the given inputs.  Two calls give the
// same key if and only if params serialise identically, code is equal and
// time falls into the same quantisation bucket (up to hash collisions).
func (c *Cache) Key(params param.Parameters, code string, time float64) (uint64, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("cache key: %w", err)
	}

	h := fnv.New64a()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(code))
	h.Write([]byte{0})
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(c.bucket(time)))
	h.Write(buf[:])
	return h.Sum64(), nil
}

func (c *Cache) bucket(time float64) int64 {
	q := math.Round(time / c.step)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return int64(q)
}

// Render returns the bitmap for id.  If the cached entry was produced
// from the same inputs, it is returned and the second result is true.
// Otherwise fn is called and its result replaces the entry.  If fn fails,
// the previous entry is left in place and the error is returned.
//
// Inputs without a key, for example parameters containing infinite
// values, are rendered by fn on every call and are not cached.
func (c *Cache) Render(id string, params param.Parameters, code string, time float64, fn func() (*image.RGBA, error)) (*image.RGBA, bool, error) {
	key, err := c.Key(params, code, time)
	if err != nil {
		c.mu.Lock()
		delete(c.entries, id)
		c.stats.Misses++
		c.mu.Unlock()
		img, err := fn()
		return img, false, err
	}

	c.mu.Lock()
	e, ok := c.entries[id]
	if ok && e.hash == key {
		c.stats.Hits++
		c.mu.Unlock()
		return e.bitmap, true, nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	img, err := fn()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[id] = entry{bitmap: img, hash: key}
	c.mu.Unlock()
	return img, false, nil
}

// Get returns the cached bitmap for id, regardless of its key.
func (c *Cache) Get(id string) (*image.RGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	return e.bitmap, ok
}

// Retain removes all entries whose id is not in ids and returns the
// number of entries removed.
func (c *Cache) Retain(ids []string) int {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id := range c.entries {
		if _, ok := keep[id]; !ok {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

// Delete removes the entry for id, if any.
func (c *Cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts since the cache was created.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
