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

// Package template resolves what to draw for an entity.
//
// The executor tries, in order: the registered template or generator
// named by the entity, the entity's custom code, and finally the built-in
// [Default] visualisation.  Failures of one stage are reported through a
// callback and lead to the next stage, so that every entity ends up with
// a picture.
package template

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/draw"
	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/param"
	"seehuhn.de/go/generative/script"
)

// Stage identifies the stage of the fallback chain which produced a
// picture.
type Stage int

// These are the stages, in the order they are tried.
const (
	StageTemplate Stage = iota + 1
	StageCode
	StageDefault
)

func (s Stage) String() string {
	switch s {
	case StageTemplate:
		return "template"
	case StageCode:
		return "code"
	case StageDefault:
		return "default"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ErrUnknownTemplate is reported for template ids which are neither a
// registered template nor a registered generator.
var ErrUnknownTemplate = errors.New("unknown template")

// Func is a compiled template.  It draws directly onto the surface.
type Func func(s canvas.Surface, req Request) error

// Request describes what to draw.
type Request struct {
	TemplateID string
	Code       string
	Params     param.Parameters
	Seed       string
	Time       float64

	// Mode selects an alternate generator mode.
	Mode string

	// Resolution is passed to generators; zero selects the default.
	Resolution int

	// PixelRatio is the number of surface pixels per canvas unit.
	// Generators and custom code work in canvas units.  Values <= 0
	// mean 1.
	PixelRatio float64
}

// Executor runs the fallback chain.
type Executor struct {
	reg    *generator.Registry
	runner *script.Runner
	log    *slog.Logger

	mu        sync.RWMutex
	templates map[string]Func
}

// New returns an executor.  Template ids are looked up among the
// registered templates first, and then in reg.  If runner is nil, custom
// code is skipped.  If logger is nil, slog.Default() is used.
func New(reg *generator.Registry, runner *script.Runner, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		reg:       reg,
		runner:    runner,
		log:       logger,
		templates: make(map[string]Func),
	}
}

// RegisterTemplate adds a compiled template.  Registering an existing id
// replaces the previous template.
func (x *Executor) RegisterTemplate(id string, f Func) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.templates[id] = f
}

// Execute draws req onto s and returns the stage which produced the
// picture.  onError, if not nil, is called with the message of every
// failed stage.
func (x *Executor) Execute(ctx context.Context, s canvas.Surface, req Request, onError func(string)) Stage {
	fail := func(stage Stage, err error) {
		x.log.Debug("render stage failed", "stage", stage, "template", req.TemplateID, "err", err)
		if onError != nil {
			onError(fmt.Sprintf("%s: %v", stage, err))
		}
		reset(s)
	}

	if req.TemplateID != "" {
		err := x.runTemplate(s, req)
		if err == nil {
			return StageTemplate
		}
		fail(StageTemplate, err)
	}

	if req.Code != "" && x.runner != nil {
		err := x.runCode(ctx, s, req)
		if err == nil {
			return StageCode
		}
		fail(StageCode, err)
	}

	Default(s, req.Params, req.Time)
	return StageDefault
}

func (x *Executor) runTemplate(s canvas.Surface, req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template panicked: %v", r)
		}
	}()

	x.mu.RLock()
	f, ok := x.templates[req.TemplateID]
	x.mu.RUnlock()
	if ok {
		return f(s, req)
	}

	if x.reg == nil {
		return fmt.Errorf("%w %q", ErrUnknownTemplate, req.TemplateID)
	}
	g, ok := x.reg.Create(req.TemplateID, req.Params, req.Seed)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTemplate, req.TemplateID)
	}
	opts := param.Options{
		Resolution: req.Resolution,
		Time:       req.Time,
		Seed:       req.Seed,
		PixelRatio: req.PixelRatio,
		Mode:       req.Mode,
	}
	opts.Width, opts.Height = s.Width()/opts.Ratio(), s.Height()/opts.Ratio()
	elems, err := generator.Run(g, opts)
	if err != nil {
		return err
	}
	return draw.Elements(s, elems, opts.Ratio())
}

func (x *Executor) runCode(ctx context.Context, s canvas.Surface, req Request) error {
	ratio := (&param.Options{PixelRatio: req.PixelRatio}).Ratio()
	if ratio != 1 {
		s.Scale(ratio, ratio)
	}
	base := generator.NewBase(param.Metadata{Name: "script"}, req.Params.Clone(), req.Seed)
	return x.runner.Run(ctx, req.Code, script.Env{
		Surface:   s,
		Width:     s.Width() / ratio,
		Height:    s.Height() / ratio,
		Params:    req.Params,
		Generator: base.Helper(),
		Time:      req.Time,
	})
}

// reset clears a surface after a failed stage.  Surfaces with a Reset
// method also get their graphics state restored, since the failed stage
// may have left unbalanced Save calls behind.
func reset(s canvas.Surface) {
	if r, ok := s.(interface{ Reset() }); ok {
		r.Reset()
	}
	s.Save()
	s.ResetTransform()
	s.ClearRect(0, 0, s.Width(), s.Height())
	s.Restore()
}
