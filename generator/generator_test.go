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

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/generative/param"
	"seehuhn.de/go/generative/random"
)

type stub struct {
	Base
}

func (s *stub) Generate(opts param.Options) ([]param.Element, error) {
	return []param.Element{CircleElement(opts.Width/2, opts.Height/2, s.Random(), "#000", 1)}, nil
}

func newStub(p param.Parameters, seed string) Generator {
	return &stub{Base: NewBase(param.Metadata{Name: "stub"}, p, seed)}
}

func core() param.Parameters {
	return param.Parameters{Frequency: 2, Amplitude: 50, Complexity: 0.5, Chaos: 0.4, Damping: 0.5, Layers: 4}
}

func TestCalculatePhase(t *testing.T) {
	p := core()
	p.PhaseOffset = 0.25
	b := NewBase(param.Metadata{}, p, "")
	assert.InDelta(t, 0.25+1.5, b.CalculatePhase(0, 4, 1.5), 1e-12)
	assert.InDelta(t, 0.5*2*math.Pi*2+0.25, b.CalculatePhase(2, 4, 0), 1e-12)
	assert.InDelta(t, 0.25, b.CalculatePhase(0, 0, 0), 1e-12)
}

func TestApplyDampingAndScale(t *testing.T) {
	b := NewBase(param.Metadata{}, core(), "")
	assert.Equal(t, 100.0, b.ApplyDamping(100, 0))
	assert.Equal(t, 25.0, b.ApplyDamping(100, 2))
	assert.Equal(t, 40.0, b.ScaleToCanvas(10, 400))
}

func TestAddChaos(t *testing.T) {
	b := NewBase(param.Metadata{}, core(), "chaos")
	ref := random.New("chaos")
	for range 100 {
		r := ref.Float64()
		assert.InDelta(t, 10+(r-0.5)*0.4*20, b.AddChaos(10, 20), 1e-12)
	}

	// zero chaos leaves the value alone but still advances the stream
	p := core()
	p.Chaos = 0
	calm := NewBase(param.Metadata{}, p, "chaos")
	assert.Equal(t, 10.0, calm.AddChaos(10, 20))
	ref = random.New("chaos")
	ref.Float64()
	assert.Equal(t, ref.Float64(), calm.Random())
}

func TestEligibleAndSecondary(t *testing.T) {
	b := NewBase(param.Metadata{}, core(), "")
	assert.True(t, b.Eligible(0))
	assert.True(t, b.Eligible(1))
	assert.False(t, b.Eligible(2))
	assert.Equal(t, 3, b.Secondary(6))
	assert.Equal(t, 4, b.Secondary(8))

	p := core()
	p.Complexity = 0
	b0 := NewBase(param.Metadata{}, p, "")
	assert.False(t, b0.Eligible(0))

	p.Layers = 0
	b1 := NewBase(param.Metadata{}, p, "")
	assert.Equal(t, 1, b1.Layers())
}

func TestClampIsDeclared(t *testing.T) {
	clamping := NewBase(param.Metadata{ClampsToCanvas: true}, core(), "")
	free := NewBase(param.Metadata{}, core(), "")
	assert.Equal(t, 100.0, clamping.Clamp(150, 0, 100))
	assert.Equal(t, 150.0, free.Clamp(150, 0, 100))
}

func TestLayerColor(t *testing.T) {
	p := core()
	p.Color = &param.Color{Hue: 0, Saturation: 1, Lightness: 0.5}
	b := NewBase(param.Metadata{}, p, "")

	c, a := b.LayerColor(0, 4, 0)
	assert.Equal(t, "#ff0000", c)
	assert.Equal(t, 1.0, a)

	_, a2 := b.LayerColor(2, 4, 0)
	assert.Less(t, a2, a)

	c, _ = b.LayerColor(0, 3, 6) // 120 degrees later
	assert.Equal(t, "#00ff00", c)

	p.Color.Palette = []string{"#111111", "#222222"}
	b = NewBase(param.Metadata{}, p, "")
	c, _ = b.LayerColor(3, 4, 0)
	assert.Equal(t, "#222222", c)
}

func TestParametersSnapshot(t *testing.T) {
	g := newStub(core(), "x")
	snap := g.Parameters()
	snap.Frequency = 99
	assert.Equal(t, 2.0, g.Parameters().Frequency)

	g.UpdateParameters(param.Partial{Frequency: param.Ptr(7.0), Custom: map[string]any{"k": 1}})
	p := g.Parameters()
	assert.Equal(t, 7.0, p.Frequency)
	assert.Equal(t, 50.0, p.Amplitude)
	assert.Equal(t, 1, p.Custom["k"])
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("b", newStub)
	r.Register("a", newStub)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	g, ok := r.Create("missing", core(), "")
	assert.False(t, ok)
	assert.Nil(t, g)

	g, ok = r.Create("a", core(), "seed")
	require.True(t, ok)
	assert.Equal(t, "stub", g.Metadata().Name)

	// last registration wins
	r.Register("a", func(p param.Parameters, seed string) Generator {
		return &stub{Base: NewBase(param.Metadata{Name: "other"}, p, seed)}
	})
	g, _ = r.Create("a", core(), "")
	assert.Equal(t, "other", g.Metadata().Name)
}

func TestCreateClonesParameters(t *testing.T) {
	r := NewRegistry()
	r.Register("stub", newStub)
	p := core()
	p.Custom = map[string]any{"k": 1}
	g, _ := r.Create("stub", p, "")
	g.UpdateParameters(param.Partial{Custom: map[string]any{"k": 2}})
	assert.Equal(t, 1, p.Custom["k"])
}

func TestUnknownMode(t *testing.T) {
	err := UnknownMode("wave", "sideways")
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Contains(t, err.Error(), "sideways")
}

func TestPathData(t *testing.T) {
	d := (&PathData{}).MoveTo(0, 1.5).LineTo(10, -2.25).QuadTo(1, 2, 3, 4).Close()
	assert.Equal(t, "M 0 1.5 L 10 -2.25 Q 1 2 3 4 Z", d.String())
	assert.Equal(t, "1,2 3.5,4", Points([]param.Point{{X: 1, Y: 2}, {X: 3.5, Y: 4}}))
	assert.Equal(t, "M 0 0", (&PathData{}).MoveTo(math.NaN(), math.Inf(1)).String())
}

func TestCount(t *testing.T) {
	cases := []struct {
		f      float64
		lo, hi int
		want   int
	}{
		{3.7, 0, 10, 3},
		{-2, 0, 10, 0},
		{1e20, 0, 10, 10},
		{math.Inf(1), 2, 16, 16},
		{math.Inf(-1), 2, 16, 2},
		{math.NaN(), 2, 16, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Count(tc.f, tc.lo, tc.hi), "Count(%g, %d, %d)", tc.f, tc.lo, tc.hi)
	}
}

func TestElementCountsAreBounded(t *testing.T) {
	p := core()
	p.Layers = 1 << 40
	p.Complexity = 1e20
	b := NewBase(param.Metadata{}, p, "")
	assert.Equal(t, MaxLayers, b.Layers())
	assert.Equal(t, MaxSecondary, b.Secondary(6))

	p.Complexity = math.NaN()
	bNaN := NewBase(param.Metadata{}, p, "")
	assert.Equal(t, 0, bNaN.Secondary(6))
	p.Complexity = -3
	bNeg := NewBase(param.Metadata{}, p, "")
	assert.Equal(t, 0, bNeg.Secondary(6))
}
