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
	"fmt"
	"strconv"
	"strings"
)

// Shape is the kind of a generated element.
type Shape string

// These are the supported element shapes.
const (
	Circle  Shape = "circle"
	Rect    Shape = "rect"
	Path    Shape = "path"
	Polygon Shape = "polygon"
	Ellipse Shape = "ellipse"
	Line    Shape = "line"
)

// Props is the geometry and paint property bag of an element.
//
// Geometry keys depend on the shape: circle uses cx, cy, r; ellipse uses
// cx, cy, rx, ry; rect uses x, y, width, height; line uses x1, y1, x2,
// y2; path uses d (SVG path data); polygon uses points (SVG points).
// Paint keys are fill, stroke, strokeWidth, opacity, fillOpacity and
// strokeOpacity.
type Props map[string]any

// Float returns the numeric property key, or def if the key is missing or
// not numeric.
func (p Props) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// String returns the string property key, or def if the key is missing.
func (p Props) String(key string, def string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case nil:
		return def
	case fmt.Stringer:
		return v.String()
	}
	return def
}

// Hint carries optional animation information for an element.
type Hint struct {
	TransformOrigin string  `json:"transformOrigin,omitempty"`
	Easing          string  `json:"easing,omitempty"`
	Duration        float64 `json:"duration,omitempty"`
}

// Element is one drawable shape produced by a generator.
type Element struct {
	Type      Shape             `json:"type"`
	Props     Props             `json:"props"`
	Style     map[string]string `json:"style,omitempty"`
	Animation *Hint             `json:"animation,omitempty"`
}

// Paint returns the effective value of a paint property: a Style entry
// overrides the corresponding property.
func (e *Element) Paint(key string) string {
	if v, ok := e.Style[key]; ok {
		return v
	}
	if v, ok := e.Props[key]; ok {
		switch v := v.(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}

// PaintFloat is like Paint, but parses the value as a number.
func (e *Element) PaintFloat(key string, def float64) float64 {
	s := e.Paint(key)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil {
		return def
	}
	return f
}
