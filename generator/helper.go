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

// Helper is the view of a generator's shared helpers which is handed to
// user drawing code.
type Helper struct {
	b *Base
}

// Helper returns a Helper backed by b.  Calls to the helper consume
// b's random stream.
func (b *Base) Helper() *Helper {
	return &Helper{b: b}
}

// Random returns the next value of the seeded random stream.
func (h *Helper) Random() float64 { return h.b.Random() }

// Phase is [Base.CalculatePhase].
func (h *Helper) Phase(index, total int, time float64) float64 {
	return h.b.CalculatePhase(index, total, time)
}

// Damping is [Base.ApplyDamping].
func (h *Helper) Damping(value, distance float64) float64 {
	return h.b.ApplyDamping(value, distance)
}

// Chaos is [Base.AddChaos].
func (h *Helper) Chaos(value, intensity float64) float64 {
	return h.b.AddChaos(value, intensity)
}

// Scale is [Base.ScaleToCanvas].
func (h *Helper) Scale(value, size float64) float64 {
	return h.b.ScaleToCanvas(value, size)
}

// Color returns the CSS colour of a layer, see [Base.LayerColor].
func (h *Helper) Color(layer, layers int, time float64) string {
	c, _ := h.b.LayerColor(layer, layers, time)
	return c
}

// Opacity returns the opacity of a layer, see [Base.LayerColor].
func (h *Helper) Opacity(layer, layers int, time float64) float64 {
	_, a := h.b.LayerColor(layer, layers, time)
	return a
}
