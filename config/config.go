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

// Package config loads scene descriptions and runtime settings.
//
// A scene is a TOML file describing the canvas, the animation clock and
// the entities to draw.  Settings from the file can be overridden by
// environment variables, which in turn may come from a .env file:
//
//	GENERATIVE_QUANTIZE_STEP   render cache time step
//	GENERATIVE_SCRIPT_TIMEOUT  time budget for drawing code, e.g. "250ms"
//	GENERATIVE_LOG_LEVEL       debug, info, warn or error
//	GENERATIVE_SEED            seed for entities without their own seed
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/generative"
)

// Config is a scene together with the settings used to render it.
type Config struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Background string  `toml:"background,omitempty"`
	Time       float64 `toml:"time"`   // time of the first frame, in seconds
	Frames     int     `toml:"frames"` // number of frames to render
	FPS        float64 `toml:"fps"`
	Seed       string  `toml:"seed,omitempty"`

	// PixelRatio is the number of device pixels per canvas unit.
	// Zero means 1.
	PixelRatio float64 `toml:"pixel_ratio,omitempty"`

	QuantizeStep  float64    `toml:"quantize_step"`
	ScriptTimeout Duration   `toml:"script_timeout"`
	LogLevel      slog.Level `toml:"log_level"`

	Entities []generative.Entity `toml:"entities"`
}

// Duration is a time.Duration which is written as a string like "250ms"
// in TOML files.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the settings used for everything a scene file does
// not specify.
func Default() *Config {
	return &Config{
		Width:         800,
		Height:        600,
		Frames:        1,
		FPS:           30,
		QuantizeStep:  0.1,
		ScriptTimeout: Duration(250 * time.Millisecond),
		LogLevel:      slog.LevelInfo,
	}
}

var errInvalid = errors.New("invalid configuration")

// Load reads a scene file.  Values missing from the file keep their
// defaults; environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scene from TOML data.  See [Load].
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	c.fill()
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadEnv reads .env files into the process environment.  Missing files
// are skipped; variables which are already set are not overwritten.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() error {
	if v := getEnv("GENERATIVE_QUANTIZE_STEP", ""); v != "" {
		step, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GENERATIVE_QUANTIZE_STEP: %w", err)
		}
		c.QuantizeStep = step
	}
	if v := getEnv("GENERATIVE_SCRIPT_TIMEOUT", ""); v != "" {
		if err := c.ScriptTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("GENERATIVE_SCRIPT_TIMEOUT: %w", err)
		}
	}
	if v := getEnv("GENERATIVE_LOG_LEVEL", ""); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("GENERATIVE_LOG_LEVEL: %w", err)
		}
	}
	c.Seed = getEnv("GENERATIVE_SEED", c.Seed)
	return nil
}

// fill assigns ids to anonymous entities and hands out the scene seed.
func (c *Config) fill() {
	for i := range c.Entities {
		e := &c.Entities[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Seed == "" {
			e.Seed = c.Seed
		}
	}
}

// Check reports settings which cannot be rendered.
func (c *Config) Check() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: canvas size %dx%d", errInvalid, c.Width, c.Height))
	}
	if c.Frames < 1 {
		errs = append(errs, fmt.Errorf("%w: %d frames", errInvalid, c.Frames))
	}
	if !(c.PixelRatio >= 0 && c.PixelRatio <= generative.MaxPixelRatio) {
		errs = append(errs, fmt.Errorf("%w: pixel ratio %g", errInvalid, c.PixelRatio))
	}
	if c.Frames > 1 && !(c.FPS > 0) {
		errs = append(errs, fmt.Errorf("%w: fps %g", errInvalid, c.FPS))
	}
	seen := make(map[string]bool, len(c.Entities))
	for _, e := range c.Entities {
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate entity id %q", errInvalid, e.ID))
		}
		seen[e.ID] = true
	}
	return errors.Join(errs...)
}

// FrameTime returns the clock value of frame i.
func (c *Config) FrameTime(i int) float64 {
	if c.FPS <= 0 {
		return c.Time
	}
	return c.Time + float64(i)/c.FPS
}

// Options returns the renderer settings of c.
func (c *Config) Options(logger *slog.Logger) *generative.Options {
	return &generative.Options{
		QuantizeStep:  c.QuantizeStep,
		ScriptTimeout: time.Duration(c.ScriptTimeout),
		Background:    c.Background,
		PixelRatio:    c.PixelRatio,
		Logger:        logger,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
