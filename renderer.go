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
	"fmt"
	"image"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"seehuhn.de/go/generative/cache"
	"seehuhn.de/go/generative/canvas"
	"seehuhn.de/go/generative/generator"
	"seehuhn.de/go/generative/generators"
	"seehuhn.de/go/generative/script"
	"seehuhn.de/go/generative/template"
)

// Options configures a [Renderer].  The zero value is usable.
type Options struct {
	// Registry holds the generators.  If nil, a registry with the
	// built-in generators is used.
	Registry *generator.Registry

	// QuantizeStep is the time quantisation step of the render cache.
	// Zero selects cache.DefaultStep.
	QuantizeStep float64

	// ScriptTimeout bounds the run time of custom drawing code.
	// Zero selects script.DefaultTimeout.
	ScriptTimeout time.Duration

	// Background is the colour a frame is cleared to before entities are
	// composited.  The empty string leaves the frame transparent.
	Background string

	// PixelRatio is the number of device pixels per canvas unit.  Entity
	// geometry and frame sizes are given in canvas units.  Values <= 0
	// select 1, values above MaxPixelRatio are reduced to MaxPixelRatio.
	PixelRatio float64

	Logger *slog.Logger
}

// MaxPixelRatio is the largest supported pixel ratio.
const MaxPixelRatio = 8

// MaxBitmapSize is the largest width or height, in device pixels, of an
// entity bitmap or a frame.
const MaxBitmapSize = 1 << 14

// Renderer renders entities.
// A Renderer is safe for concurrent use, but concurrent frames share the
// render cache.
type Renderer struct {
	reg        *generator.Registry
	exec       *template.Executor
	cache      *cache.Cache
	background string
	ratio      float64
	log        *slog.Logger
}

// NewRenderer returns a renderer configured by opt.  If opt is nil,
// defaults are used for everything.
func NewRenderer(opt *Options) *Renderer {
	if opt == nil {
		opt = &Options{}
	}
	reg := opt.Registry
	if reg == nil {
		reg = generators.NewRegistry()
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opt.ScriptTimeout
	if timeout <= 0 {
		timeout = script.DefaultTimeout
	}
	ratio := opt.PixelRatio
	if !(ratio > 0) {
		ratio = 1
	}
	ratio = min(ratio, MaxPixelRatio)
	return &Renderer{
		reg:        reg,
		exec:       template.New(reg, script.New(timeout), logger),
		cache:      cache.New(opt.QuantizeStep),
		background: opt.Background,
		ratio:      ratio,
		log:        logger,
	}
}

// Registry returns the generator registry used by r.
func (r *Renderer) Registry() *generator.Registry {
	return r.reg
}

// Cache returns the render cache used by r.
func (r *Renderer) Cache() *cache.Cache {
	return r.cache
}

// RegisterTemplate adds a compiled template, see
// [template.Executor.RegisterTemplate].
func (r *Renderer) RegisterTemplate(id string, f template.Func) {
	r.exec.RegisterTemplate(id, f)
}

// RenderEntity renders a single entity into a bitmap of the entity's size
// times the pixel ratio, going through the render cache.  The second return value reports
// whether the bitmap was taken from the cache.
//
// Failures of individual fallback stages are passed to onError (if not
// nil) and do not cause an error; the entity then shows the output of
// a later stage.
func (r *Renderer) RenderEntity(ctx context.Context, e Entity, t float64, onError func(msg string)) (*image.RGBA, bool, error) {
	w, h := pixelSize(e.Width*r.ratio), pixelSize(e.Height*r.ratio)
	if w <= 0 || h <= 0 {
		return nil, false, fmt.Errorf("entity %q: %w", e.ID, ErrEmptyEntity)
	}
	if w > MaxBitmapSize || h > MaxBitmapSize {
		return nil, false, fmt.Errorf("entity %q: %w (%dx%d pixels)", e.ID, ErrEntityTooLarge, w, h)
	}

	return r.cache.Render(e.ID, e.Params, cacheCode(e, w, h), t, func() (*image.RGBA, error) {
		c := canvas.New(w, h)
		stage := r.exec.Execute(ctx, c, template.Request{
			TemplateID: e.TemplateID,
			Code:       e.Code,
			Params:     e.Params,
			Seed:       e.Seed,
			Time:       t,
			Mode:       e.Mode,
			PixelRatio: r.ratio,
		}, onError)
		r.log.Debug("entity rendered", "entity", e.ID, "stage", stage)
		return c.Image(), nil
	})
}

// RenderFrame renders all entities and composites them onto a frame of
// the given size, in collection order so that later entities are drawn
// on top.  Afterwards, cache entries of entities which are no longer in
// the collection are discarded.
//
// The frame has width×height canvas units, that is the size times the
// pixel ratio in device pixels, limited to MaxBitmapSize.  Errors are
// reported per entity through onError and never abort the frame.
func (r *Renderer) RenderFrame(ctx context.Context, entities []Entity, width, height int, t float64, onError func(id, msg string)) *image.RGBA {
	fw := min(pixelSize(float64(width)*r.ratio), MaxBitmapSize)
	fh := min(pixelSize(float64(height)*r.ratio), MaxBitmapSize)
	frame := canvas.New(fw, fh)
	if r.background != "" {
		frame.SetFillStyle(r.background)
		frame.FillRect(0, 0, frame.Width(), frame.Height())
	}
	dst := frame.Image()

	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)

		var report func(string)
		if onError != nil {
			report = func(msg string) { onError(e.ID, msg) }
		}
		img, _, err := r.RenderEntity(ctx, e, t, report)
		if err != nil {
			r.log.Warn("entity failed", "entity", e.ID, "err", err)
			if report != nil {
				report(err.Error())
			}
			continue
		}

		at := image.Pt(offset(e.X*r.ratio), offset(e.Y*r.ratio))
		xdraw.Draw(dst, img.Bounds().Add(at), img, image.Point{}, xdraw.Over)
	}

	if n := r.cache.Retain(ids); n > 0 {
		r.log.Debug("cache purged", "entries", n)
	}
	return dst
}

// pixelSize rounds a size up to whole pixels.  Sizes above MaxBitmapSize
// give MaxBitmapSize+1.
func pixelSize(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v > MaxBitmapSize:
		return MaxBitmapSize + 1
	}
	return int(math.Ceil(v))
}

// offset rounds an entity position to whole pixels.  Positions far
// outside any frame are moved to just outside of it.
func offset(v float64) int {
	const limit = 2 * MaxBitmapSize
	if math.IsNaN(v) {
		return limit
	}
	return int(math.Round(max(-limit, min(limit, v))))
}

// cacheCode folds the non-parameter inputs of an entity into the code
// string used for the cache key.
func cacheCode(e Entity, w, h int) string {
	var b strings.Builder
	b.WriteString(e.TemplateID)
	b.WriteByte(0)
	b.WriteString(e.Mode)
	b.WriteByte(0)
	b.WriteString(e.Seed)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(w))
	b.WriteByte('x')
	b.WriteString(strconv.Itoa(h))
	b.WriteByte(0)
	b.WriteString(e.Code)
	return b.String()
}
