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

package generative

import (
	"context"
	"maps"
	"slices"
	"testing"

	"seehuhn.de/go/generative/testcases"
)

// BenchmarkRenderEntity renders every scenario with a cold cache.
func BenchmarkRenderEntity(b *testing.B) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			b.Run(category+"_"+tc.Name, func(b *testing.B) {
				r := NewRenderer(nil)
				e := Entity{
					ID:         tc.Name,
					Width:      float64(tc.Width),
					Height:     float64(tc.Height),
					TemplateID: tc.Generator,
					Mode:       tc.Mode,
					Params:     tc.Params,
					Seed:       tc.Seed,
				}
				ctx := context.Background()
				b.ReportAllocs()
				for b.Loop() {
					r.Cache().Delete(e.ID)
					if _, _, err := r.RenderEntity(ctx, e, tc.Time, nil); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkFrameCached measures a frame in which every entity is served
// from the cache.
func BenchmarkFrameCached(b *testing.B) {
	var entities []Entity
	x := 0.0
	for _, tc := range testcases.All["wave"] {
		entities = append(entities, Entity{
			ID: tc.Name, X: x, Width: float64(tc.Width), Height: float64(tc.Height),
			TemplateID: tc.Generator, Mode: tc.Mode, Params: tc.Params, Seed: tc.Seed,
		})
		x += float64(tc.Width)
	}
	r := NewRenderer(nil)
	ctx := context.Background()
	r.RenderFrame(ctx, entities, int(x), 200, 0, nil)

	b.ReportAllocs()
	for b.Loop() {
		r.RenderFrame(ctx, entities, int(x), 200, 0, nil)
	}
}
