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

// Command genrender renders a scene file to PNG images.
//
// Usage:
//
//	genrender [flags] scene.toml
//
// One image is written per frame.  With -json, the elements produced by
// the generator entities of the first frame are written to standard
// output instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"seehuhn.de/go/generative"
	"seehuhn.de/go/generative/config"
	"seehuhn.de/go/generative/engine"
	"seehuhn.de/go/generative/param"
)

func main() {
	outDir := flag.String("o", ".", "output directory")
	prefix := flag.String("prefix", "frame", "file name prefix")
	thumb := flag.Int("thumb", 0, "also write thumbnails of this width")
	dumpJSON := flag.Bool("json", false, "write generated elements as JSON to stdout")
	envFile := flag.String("env", ".env", "environment file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scene.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnv(*envFile)
	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if *dumpJSON {
		err = writeElements(os.Stdout, cfg, logger)
	} else {
		err = render(cfg, logger, *outDir, *prefix, *thumb)
	}
	if err != nil {
		logger.Error("genrender failed", "err", err)
		os.Exit(1)
	}
}

func render(cfg *config.Config, logger *slog.Logger, outDir, prefix string, thumb int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	r := generative.NewRenderer(cfg.Options(logger))
	onError := func(id, msg string) {
		logger.Warn("entity fell back", "entity", id, "msg", msg)
	}
	ctx := context.Background()
	for i := range cfg.Frames {
		t := cfg.FrameTime(i)
		img := r.RenderFrame(ctx, cfg.Entities, cfg.Width, cfg.Height, t, onError)

		name := filepath.Join(outDir, fmt.Sprintf("%s%04d.png", prefix, i))
		if err := writePNG(name, img); err != nil {
			return err
		}
		if thumb > 0 {
			name := filepath.Join(outDir, fmt.Sprintf("%s%04d_thumb.png", prefix, i))
			if err := writePNG(name, thumbnail(img, thumb)); err != nil {
				return err
			}
		}
		logger.Info("frame written", "file", name, "time", t)
	}

	st := r.Cache().Stats()
	logger.Debug("cache", "hits", st.Hits, "misses", st.Misses)
	return nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// thumbnail scales img to the given width, keeping the aspect ratio.
func thumbnail(img *image.RGBA, width int) *image.RGBA {
	b := img.Bounds()
	height := max(1, b.Dy()*width/max(1, b.Dx()))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

type layerJSON struct {
	Layer    string          `json:"layer"`
	Elements []param.Element `json:"elements"`
	Error    string          `json:"error,omitempty"`
}

// writeElements runs the generator entities of cfg as layers of one
// engine, each in its own mode, on the full scene canvas, and writes the
// result.
func writeElements(w io.Writer, cfg *config.Config, logger *slog.Logger) error {
	r := generative.NewRenderer(cfg.Options(logger))
	e := engine.New(r.Registry(), logger)
	for _, ent := range cfg.Entities {
		if ent.TemplateID == "" {
			continue
		}
		if err := e.AddLayer(ent.ID, ent.TemplateID, ent.Params, ent.Seed); err != nil {
			logger.Warn("entity skipped", "entity", ent.ID, "err", err)
			continue
		}
		e.SetMode(ent.ID, ent.Mode)
	}

	outputs := e.Generate(param.Options{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Time:   cfg.Time,
		Seed:   cfg.Seed,
	})
	res := make([]layerJSON, 0, len(outputs))
	for _, out := range outputs {
		l := layerJSON{Layer: out.LayerID, Elements: out.Elements}
		if out.Err != nil {
			l.Error = out.Err.Error()
		}
		res = append(res, l)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
