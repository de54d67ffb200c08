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

// Package script runs user drawing code in a restricted interpreter.
//
// User code is Go source for the body of a function.  It sees exactly the
// variables ctx, width, height, params, generator and time, plus the
// packages math and utils.  No other packages can be imported, output is
// discarded, and evaluation is bounded by a time budget.
//
// Example:
//
//	ctx.SetFillStyle(utils.Hsl(200+time*10, 0.7, 0.5))
//	for i := 0; i < params.Layers; i++ {
//		ctx.BeginPath()
//		utils.Circle(ctx, width/2, height/2, generator.Damping(params.Amplitude, float64(i)))
//		ctx.Fill()
//	}
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
	"seehuhn.de/go/generative/script/utils"
)

// DefaultTimeout is the time budget used when Runner.Timeout is zero.
const DefaultTimeout = 250 * time.Millisecond

var (
	// ErrEmptyCode is returned when there is no code to run.
	ErrEmptyCode = errors.New("empty code")

	// ErrTimeout is returned when user code exceeds its time budget.
	ErrTimeout = errors.New("time budget exceeded")
)

// Env holds the values visible to user code.
type Env struct {
	Surface   canvas.Surface
	Width     float64
	Height    float64
	Params    param.Parameters
	Generator *generator.Helper
	Time      float64
}

// Runner executes user code.  A Runner is safe for concurrent use; every
// run uses a fresh interpreter.
type Runner struct {
	// Timeout bounds the total run time of one piece of code.
	Timeout time.Duration
}

// New returns a runner with the given time budget.
func New(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// prelude binds the environment to the variable names seen by user code.
const prelude = `ctx, width, height, params, generator, time := env.Ctx(), env.Width(), env.Height(), env.Params(), env.Generator(), env.Time()
_, _, _, _, _, _ = ctx, width, height, params, generator, time
`

// Run compiles and executes code.  Compile errors, runtime panics and
// timeouts are returned as errors.
func (r *Runner) Run(ctx context.Context, code string, env Env) (err error) {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyCode
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script panicked: %v", p)
		}
	}()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	surface := newGuard(ctx, env.Surface)
	defer surface.close()
	env.Surface = surface

	in := interp.New(interp.Options{
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	if err := in.Use(exports(env)); err != nil {
		return err
	}
	in.ImportUsed()

	src := "func draw() {\n" + prelude + code + "\n}"
	if _, err := in.EvalWithContext(ctx, src); err != nil {
		return wrap(ctx, "compile", err)
	}
	if _, err := in.EvalWithContext(ctx, "draw()"); err != nil {
		return wrap(ctx, "run", err)
	}
	return nil
}

func wrap(ctx context.Context, stage string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", stage, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", stage, err)
}

// exports returns the symbol table of the interpreter: math from the
// standard library, the helper package and the environment.
func exports(env Env) interp.Exports {
	return interp.Exports{
		"math/math":   stdlib.Symbols["math/math"],
		"utils/utils": utilsSymbols,
		"env/env": {
			"Ctx":       reflect.ValueOf(func() canvas.Surface { return env.Surface }),
			"Width":     reflect.ValueOf(func() float64 { return env.Width }),
			"Height":    reflect.ValueOf(func() float64 { return env.Height }),
			"Params":    reflect.ValueOf(func() param.Parameters { return env.Params.Clone() }),
			"Generator": reflect.ValueOf(func() *generator.Helper { return env.Generator }),
			"Time":      reflect.ValueOf(func() float64 { return env.Time }),
		},
	}
}

var utilsSymbols = map[string]reflect.Value{
	"Background": reflect.ValueOf(utils.Background),
	"Circle":     reflect.ValueOf(utils.Circle),
	"Clamp":      reflect.ValueOf(utils.Clamp),
	"Distance":   reflect.ValueOf(utils.Distance),
	"Hsl":        reflect.ValueOf(utils.Hsl),
	"Hsla":       reflect.ValueOf(utils.Hsla),
	"Lerp":       reflect.ValueOf(utils.Lerp),
	"LineCap":    reflect.ValueOf(utils.LineCap),
	"LineJoin":   reflect.ValueOf(utils.LineJoin),
	"Map":        reflect.ValueOf(utils.Map),
	"Mix":        reflect.ValueOf(utils.Mix),
	"Polygon":    reflect.ValueOf(utils.Polygon),
	"Rgb":        reflect.ValueOf(utils.Rgb),
	"Star":       reflect.ValueOf(utils.Star),
}
