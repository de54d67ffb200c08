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

package generators

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
)

var allNames = []string{CircleName, InfinityName, PrismName, TriangleName, WaveName}

func opts400x200() param.Options {
	return param.Options{Width: 400, Height: 200, Resolution: 100, Time: 0}
}

func count(elems []param.Element, shape param.Shape, role string) int {
	n := 0
	for _, e := range elems {
		if e.Type == shape && (role == "" || e.Props["role"] == role) {
			n++
		}
	}
	return n
}

func TestWaveLayerCount(t *testing.T) {
	p := param.Parameters{Frequency: 3, Amplitude: 50, Complexity: 0, Chaos: 0, Damping: 0.9, Layers: 2}
	g, ok := NewRegistry().Create(WaveName, p, "test")
	require.True(t, ok)

	elems, err := g.Generate(opts400x200())
	require.NoError(t, err)
	assert.Len(t, elems, 2)
	assert.Equal(t, 2, count(elems, param.Path, ""))
}

func TestCircleComplexityScaling(t *testing.T) {
	p := param.Parameters{Frequency: 1, Amplitude: 40, Complexity: 0.5, Chaos: 0.2, Damping: 0.8, Layers: 4}
	g, ok := NewRegistry().Create(CircleName, p, "test")
	require.True(t, ok)

	elems, err := g.Generate(opts400x200())
	require.NoError(t, err)
	assert.Equal(t, 4, count(elems, param.Circle, RolePrimary))
	assert.Equal(t, 6, count(elems, param.Circle, RoleOrbit))
	assert.Len(t, elems, 10)

	perLayer := map[int]int{}
	for _, e := range elems {
		if e.Props["role"] == RoleOrbit {
			perLayer[e.Props["layer"].(int)]++
		}
	}
	assert.Equal(t, map[int]int{0: 3, 1: 3}, perLayer)
}

func TestSecondaryCounts(t *testing.T) {
	cases := []struct {
		name  string
		shape param.Shape
		role  string
		k     int
	}{
		{WaveName, param.Circle, RoleParticle, 8},
		{CircleName, param.Circle, RoleOrbit, 6},
		{TriangleName, param.Polygon, RoleNested, 4},
		{InfinityName, param.Circle, RoleParticle, 8},
		{PrismName, param.Circle, RolePoint, 5},
	}
	reg := NewRegistry()
	for _, tc := range cases {
		p := param.Parameters{Frequency: 1, Amplitude: 30, Complexity: 0.3, Chaos: 0.5, Damping: 0.7, Layers: 5}
		g, _ := reg.Create(tc.name, p, "s")
		elems, err := g.Generate(opts400x200())
		require.NoError(t, err, tc.name)
		// layers 0, 1 and 2 satisfy layer < 5/2
		want := 3 * int(math.Ceil(0.3*float64(tc.k)))
		assert.Equal(t, want, count(elems, tc.shape, tc.role), tc.name)
	}
}

func TestRegistryBuiltins(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, allNames, reg.Names())

	g, ok := reg.Create("spiral", defaults, "")
	assert.False(t, ok)
	assert.Nil(t, g)
}

func TestDeterminism(t *testing.T) {
	reg := NewRegistry()
	p := param.Parameters{Frequency: 2, Amplitude: 40, Complexity: 0.7, Chaos: 0.9, Damping: 0.85, Layers: 4}
	for _, name := range allNames {
		modes := append([]string{""}, func() []string {
			g, _ := reg.Create(name, p, "")
			return g.Metadata().Modes
		}()...)
		for _, mode := range modes {
			o := opts400x200()
			o.Time = 1.25
			o.Mode = mode

			a, _ := reg.Create(name, p, "seed-42")
			b, _ := reg.Create(name, p, "seed-42")
			ea, err := a.Generate(o)
			require.NoError(t, err, name+"/"+mode)
			eb, err := b.Generate(o)
			require.NoError(t, err)
			require.NotEmpty(t, ea, name+"/"+mode)
			assert.Equal(t, ea, eb, name+"/"+mode)

			c, _ := reg.Create(name, p, "seed-43")
			ec, _ := c.Generate(o)
			assert.NotEqual(t, ea, ec, name+"/"+mode)
		}
	}
}

func TestStreamAdvances(t *testing.T) {
	p := defaults
	p.Chaos = 1
	g, _ := NewRegistry().Create(WaveName, p, "x")
	first, _ := g.Generate(opts400x200())
	second, _ := g.Generate(opts400x200())
	assert.NotEqual(t, first, second)
}

func TestUnknownMode(t *testing.T) {
	for _, name := range allNames {
		g, _ := NewRegistry().Create(name, defaults, "")
		o := opts400x200()
		o.Mode = "upside-down"
		_, err := g.Generate(o)
		assert.True(t, errors.Is(err, generator.ErrUnknownMode), name)

		mg, ok := g.(generator.ModeGenerator)
		require.True(t, ok)
		for _, m := range g.Metadata().Modes {
			elems, err := mg.GenerateMode(m, opts400x200())
			assert.NoError(t, err)
			assert.NotEmpty(t, elems, name+"/"+m)
		}
	}
}

func TestInvalidCanvas(t *testing.T) {
	for _, name := range allNames {
		g, _ := NewRegistry().Create(name, defaults, "")
		_, err := g.Generate(param.Options{Width: 0, Height: 100})
		assert.True(t, errors.Is(err, generator.ErrInvalidCanvas), name)
	}
}

func TestClampedGeneratorsStayInside(t *testing.T) {
	p := param.Parameters{Frequency: 4, Amplitude: 500, Complexity: 1, Chaos: 1, Damping: 1, Layers: 6}
	reg := NewRegistry()
	for _, name := range allNames {
		g, _ := reg.Create(name, p, "wild")
		if !g.Metadata().ClampsToCanvas {
			continue
		}
		elems, err := g.Generate(opts400x200())
		require.NoError(t, err)
		for _, e := range elems {
			if e.Props["role"] == RolePrimary {
				continue
			}
			if e.Type == param.Circle {
				assert.True(t, e.Props.Float("cx", -1) >= 0 && e.Props.Float("cx", -1) <= 400, name)
				assert.True(t, e.Props.Float("cy", -1) >= 0 && e.Props.Float("cy", -1) <= 200, name)
			}
		}
	}
	assert.True(t, NewWave(p, "").Metadata().ClampsToCanvas)
	assert.False(t, NewTriangle(p, "").Metadata().ClampsToCanvas)
	assert.False(t, NewPrism(p, "").Metadata().ClampsToCanvas)
}

func TestLemniscate(t *testing.T) {
	x, y := Lemniscate(10, 0)
	assert.InDelta(t, 10, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	x, y = Lemniscate(10, math.Pi/2)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	// at t = π/4 the denominator is 3/2
	x, y = Lemniscate(10, math.Pi/4)
	assert.InDelta(t, 10*math.Sqrt(0.5)/1.5, x, 1e-12)
	assert.InDelta(t, 10*0.5/1.5, y, 1e-12)
}

func TestPrismFaces(t *testing.T) {
	p := param.Parameters{Frequency: 1, Amplitude: 40, Complexity: 0, Chaos: 0, Damping: 0.9, Layers: 2}
	g, _ := NewRegistry().Create(PrismName, p, "")
	elems, err := g.Generate(opts400x200())
	require.NoError(t, err)
	require.Len(t, elems, 6)

	var lightness []float64
	for i, e := range elems[:3] {
		assert.Equal(t, param.Polygon, e.Type)
		assert.Equal(t, faceNames[i], e.Props["face"])
		c, err := colorful.Hex(e.Props.String("fill", ""))
		require.NoError(t, err)
		_, _, l := c.Hsl()
		lightness = append(lightness, l)
	}
	assert.Greater(t, lightness[0], lightness[1])
	assert.Greater(t, lightness[1], lightness[2])
}

func TestProject(t *testing.T) {
	pt := Project(100, 100, 10, 1, 0, 0)
	assert.InDelta(t, 100+10*math.Cos(math.Pi/6), pt.X, 1e-12)
	assert.InDelta(t, 105, pt.Y, 1e-12)

	pt = Project(100, 100, 10, 0, 0, 1)
	assert.InDelta(t, 100, pt.X, 1e-12)
	assert.InDelta(t, 90, pt.Y, 1e-12)
}

func TestFractalDepth(t *testing.T) {
	p := param.Parameters{Frequency: 1, Amplitude: 40, Complexity: 0.5, Damping: 0.9, Layers: 1}
	g, _ := NewRegistry().Create(TriangleName, p, "")
	o := opts400x200()
	o.Mode = "fractal"
	elems, err := g.Generate(o)
	require.NoError(t, err)
	assert.Len(t, elems, 27) // depth 1 + int(0.5*4) = 3
}

func TestPathsAreWellFormed(t *testing.T) {
	reg := NewRegistry()
	for _, name := range allNames {
		g, _ := reg.Create(name, defaults, "")
		elems, err := g.Generate(opts400x200())
		require.NoError(t, err)
		for _, e := range elems {
			if e.Type != param.Path {
				continue
			}
			d := e.Props.String("d", "")
			assert.True(t, strings.HasPrefix(d, "M "), name)
			assert.NotContains(t, d, "NaN")
		}
	}
}
