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
	"encoding/json"
	"errors"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Parameters {
	return Parameters{
		Frequency: 2, Amplitude: 50, Complexity: 0.5, Chaos: 0.1, Damping: 0.9, Layers: 3,
		Color:     &Color{Hue: 120, Palette: []string{"#fff", "#000"}},
		Animation: &Animation{Speed: 2},
		Custom:    map[string]any{"twist": 1.5},
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := sample()
	q := p.Clone()
	q.Color.Hue = 0
	q.Color.Palette[0] = "#f00"
	q.Animation.Speed = 5
	q.Custom["twist"] = 0.0

	assert.Equal(t, 120.0, p.Color.Hue)
	assert.Equal(t, "#fff", p.Color.Palette[0])
	assert.Equal(t, 2.0, p.Animation.Speed)
	assert.Equal(t, 1.5, p.Custom["twist"])
}

func TestMerge(t *testing.T) {
	p := sample()
	p.Merge(Partial{
		Amplitude: Ptr(10.0),
		Layers:    Ptr(7),
		Rotation:  Ptr(0.0),
		Custom:    map[string]any{"extra": "x"},
	})
	assert.Equal(t, 10.0, p.Amplitude)
	assert.Equal(t, 7, p.Layers)
	assert.Equal(t, 2.0, p.Frequency)
	assert.Equal(t, 1.5, p.Custom["twist"])
	assert.Equal(t, "x", p.Custom["extra"])

	c := &Color{Hue: 1}
	p.Merge(Partial{Color: c})
	c.Hue = 99
	assert.Equal(t, 1.0, p.Color.Hue)

	var empty Parameters
	empty.Merge(Partial{Custom: map[string]any{"k": 1}})
	assert.Equal(t, 1, empty.Custom["k"])
}

func TestSpeedAndFloat(t *testing.T) {
	var p Parameters
	assert.Equal(t, 1.0, p.Speed())
	assert.Equal(t, 3.0, p.Float("missing", 3))

	p = sample()
	assert.Equal(t, 2.0, p.Speed())
	assert.Equal(t, 1.5, p.Float("twist", 0))
}

func TestValidate(t *testing.T) {
	p := sample()
	assert.NoError(t, p.Validate(nil))

	p.Frequency = 20
	p.Layers = 0
	err := p.Validate(map[string]Range{"layers": {Min: 0, Max: 3}})
	require.Error(t, err)

	var re *RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "frequency", re.Name)
	assert.NotContains(t, err.Error(), "layers")
	assert.Equal(t, 20.0, p.Frequency) // not clamped
}

func TestEncoding(t *testing.T) {
	p := sample()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frequency":2`)
	assert.NotContains(t, string(data), "barCount")

	var q Parameters
	err = toml.Unmarshal([]byte("frequency = 1.5\nlayers = 4\nbar_count = 12\n[color]\nhue = 30\n"), &q)
	require.NoError(t, err)
	assert.Equal(t, 1.5, q.Frequency)
	assert.Equal(t, 4, q.Layers)
	assert.Equal(t, 12, q.BarCount)
	assert.Equal(t, 30.0, q.Color.Hue)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{Width: 200, Height: 100}
	assert.Equal(t, Point{X: 100, Y: 50}, o.CenterPoint())
	assert.Equal(t, DefaultResolution, o.Samples())
	assert.Equal(t, 1.0, o.Ratio())
	assert.Equal(t, 100.0, o.MinSide())

	o.Center = &Point{X: 1, Y: 2}
	o.Resolution = 7
	o.PixelRatio = 2
	assert.Equal(t, Point{X: 1, Y: 2}, o.CenterPoint())
	assert.Equal(t, 7, o.Samples())
	assert.Equal(t, 2.0, o.Ratio())
}

func TestProps(t *testing.T) {
	p := Props{"r": 3, "s": " 2.5 ", "bad": "x", "name": "ring"}
	assert.Equal(t, 3.0, p.Float("r", 0))
	assert.Equal(t, 2.5, p.Float("s", 0))
	assert.Equal(t, -1.0, p.Float("bad", -1))
	assert.Equal(t, "ring", p.String("name", ""))
	assert.Equal(t, "def", p.String("r", "def"))
}

func TestPaint(t *testing.T) {
	e := Element{
		Type:  Circle,
		Props: Props{"fill": "#fff", "strokeWidth": 2.0, "opacity": 1},
		Style: map[string]string{"fill": "red", "strokeWidth": "4px"},
	}
	assert.Equal(t, "red", e.Paint("fill"))
	assert.Equal(t, 4.0, e.PaintFloat("strokeWidth", 1))
	assert.Equal(t, 1.0, e.PaintFloat("opacity", 0))
	assert.Equal(t, 0.5, e.PaintFloat("missing", 0.5))
}

func TestMetadata(t *testing.T) {
	m := Metadata{Modes: []string{"flow"}}
	assert.True(t, m.HasMode("flow"))
	assert.False(t, m.HasMode(""))
	assert.True(t, CoreRanges["chaos"].Contains(1))
}
