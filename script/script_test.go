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

package script

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
)

func newEnv(c *canvas.Context) Env {
	p := param.Parameters{Frequency: 1, Amplitude: 8, Complexity: 0.5, Chaos: 0, Damping: 0.5, Layers: 2}
	base := generator.NewBase(param.Metadata{}, p, "script")
	return Env{
		Surface:   c,
		Width:     c.Width(),
		Height:    c.Height(),
		Params:    p,
		Generator: base.Helper(),
		Time:      0,
	}
}

func TestRunDraws(t *testing.T) {
	c := canvas.New(32, 32)
	code := `
ctx.SetFillStyle(utils.Rgb(255, 0, 0))
ctx.BeginPath()
utils.Circle(ctx, width/2, height/2, params.Amplitude)
ctx.Fill()
_ = math.Pi
`
	require.NoError(t, New(time.Second).Run(context.Background(), code, newEnv(c)))
	px := c.Image().RGBAAt(16, 16)
	assert.Equal(t, uint8(255), px.R)
	assert.Equal(t, uint8(255), px.A)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(1, 1).A)
}

func TestRunUsesHelpers(t *testing.T) {
	c := canvas.New(16, 16)
	code := `
for i := 0; i < params.Layers; i++ {
	r := generator.Damping(params.Amplitude, float64(i))
	ctx.SetFillStyle(utils.Hsl(generator.Phase(i, params.Layers, time)*57.3, 1, 0.5))
	ctx.FillRect(0, 0, r, r)
}
`
	require.NoError(t, New(time.Second).Run(context.Background(), code, newEnv(c)))
	assert.Equal(t, uint8(255), c.Image().RGBAAt(7, 7).A)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(9, 9).A)
}

func TestCompileError(t *testing.T) {
	c := canvas.New(4, 4)
	err := New(0).Run(context.Background(), "this is not go", newEnv(c))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile")
}

func TestNoAmbientPackages(t *testing.T) {
	c := canvas.New(4, 4)
	for _, code := range []string{
		`os.Exit(1)`,
		`fmt.Println("hi")`,
		`import "os"`,
	} {
		assert.Error(t, New(0).Run(context.Background(), code, newEnv(c)), code)
	}
}

func TestRuntimePanic(t *testing.T) {
	c := canvas.New(4, 4)
	code := `
var m map[string]int
m["x"] = 1
`
	assert.Error(t, New(time.Second).Run(context.Background(), code, newEnv(c)))
}

func TestTimeout(t *testing.T) {
	c := canvas.New(4, 4)
	code := `
x := 0.0
for {
	x += math.Sqrt(2)
}
`
	err := New(50*time.Millisecond).Run(context.Background(), code, newEnv(c))
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestEmptyCode(t *testing.T) {
	err := New(0).Run(context.Background(), "  \n\t", Env{})
	assert.True(t, errors.Is(err, ErrEmptyCode))
}

func TestParamsAreCopied(t *testing.T) {
	c := canvas.New(4, 4)
	env := newEnv(c)
	env.Params.Custom = map[string]any{"k": 1.0}
	code := `params.Custom["k"] = 2.0`
	require.NoError(t, New(time.Second).Run(context.Background(), code, env))
	assert.Equal(t, 1.0, env.Params.Custom["k"])
}

// slowSurface counts FillRect calls, each of which takes a while.
type slowSurface struct {
	*canvas.Context
	calls atomic.Int32
}

func (s *slowSurface) FillRect(x, y, w, h float64) {
	s.calls.Add(1)
	time.Sleep(20 * time.Millisecond)
	s.Context.FillRect(x, y, w, h)
}

func TestNoPaintingAfterTimeout(t *testing.T) {
	s := &slowSurface{Context: canvas.New(4, 4)}
	env := newEnv(s.Context)
	env.Surface = s
	code := `
for {
	ctx.FillRect(0, 0, 1, 1)
}
`
	err := New(50*time.Millisecond).Run(context.Background(), code, env)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)

	n := s.calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, n, s.calls.Load(), "surface used after Run returned")
}

func TestGuardClosed(t *testing.T) {
	c := canvas.New(4, 4)
	g := newGuard(context.Background(), c)
	g.FillRect(0, 0, 2, 2)
	g.close()
	g.FillRect(2, 2, 2, 2)

	assert.Equal(t, uint8(255), c.Image().RGBAAt(1, 1).A)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(3, 3).A)
	assert.Equal(t, 4.0, g.Width())
}

func TestGuardCancelled(t *testing.T) {
	c := canvas.New(4, 4)
	ctx, cancel := context.WithCancel(context.Background())
	g := newGuard(ctx, c)
	cancel()
	g.FillRect(0, 0, 4, 4)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(1, 1).A)
}

func TestHugeCoordinatesFinish(t *testing.T) {
	c := canvas.New(32, 32)
	code := `
utils.LineCap(ctx, "round")
ctx.MoveTo(0, 0)
ctx.BezierCurveTo(0, 0, 1e18, 1e18, 0, 0)
ctx.Stroke()
ctx.BeginPath()
utils.Polygon(ctx, 16, 16, 1e18, 1<<40, 0)
ctx.Fill()
ctx.BeginPath()
utils.Star(ctx, 16, 16, 1e20, -1e20, 1<<40)
ctx.Stroke()
`
	start := time.Now()
	require.NoError(t, New(5*time.Second).Run(context.Background(), code, newEnv(c)))
	assert.Less(t, time.Since(start), 5*time.Second)
}
