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

package main

import (
	"bytes"
	"encoding/json"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/generative/config"
	"seehuhn.de/go/generative/generators"
	"seehuhn.de/go/generative/param"
)

const scene = `
width = 64
height = 48
frames = 2
fps = 5
background = "#000"

[[entities]]
id = "w"
width = 64
height = 48
template = "wave"
seed = "x"
[entities.params]
frequency = 2
amplitude = 10
complexity = 0.5
damping = 0.8
layers = 2

[[entities]]
id = "bad"
width = 10
height = 10
template = "nonexistent"
`

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRender(t *testing.T) {
	cfg, err := config.Parse([]byte(scene))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, render(cfg, quiet(), dir, "f", 16))
	for _, name := range []string{"f0000.png", "f0001.png", "f0000_thumb.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	th := thumbnail(img, 50)
	assert.Equal(t, image.Rect(0, 0, 50, 25), th.Bounds())
}

func TestWriteElements(t *testing.T) {
	cfg, err := config.Parse([]byte(scene))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeElements(&buf, cfg, quiet()))

	var got []layerJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1) // the unknown generator is skipped
	assert.Equal(t, "w", got[0].Layer)
	assert.NotEmpty(t, got[0].Elements)
}

const modeScene = `
width = 64
height = 48
seed = "scene"

[[entities]]
id = "plain"
width = 64
height = 48
template = "wave"
seed = "x"

[[entities]]
id = "rings"
width = 64
height = 48
template = "wave"
mode = "ripples"
seed = "x"
`

func TestWriteElementsUsesModes(t *testing.T) {
	cfg, err := config.Parse([]byte(modeScene))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeElements(&buf, cfg, quiet()))
	var got []layerJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	for i, ent := range cfg.Entities {
		g, ok := generators.NewRegistry().Create(ent.TemplateID, ent.Params, ent.Seed)
		require.True(t, ok)
		elems, err := g.Generate(param.Options{
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
			Time:   cfg.Time,
			Seed:   cfg.Seed,
			Mode:   ent.Mode,
		})
		require.NoError(t, err)

		// compare after a JSON round trip, which turns all numbers into
		// float64
		data, err := json.Marshal(elems)
		require.NoError(t, err)
		var want []param.Element
		require.NoError(t, json.Unmarshal(data, &want))

		assert.Equal(t, ent.ID, got[i].Layer)
		assert.Empty(t, got[i].Error)
		assert.Equal(t, want, got[i].Elements, ent.ID)
	}
	assert.NotEqual(t, got[0].Elements, got[1].Elements)
}
