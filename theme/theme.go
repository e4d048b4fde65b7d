// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme decodes chart theme files and applies inline CSS style
// overrides. It is file decode plus overrides only: there is no style
// cascade or resolution system, the output is resolved series styles.
package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/chartex/chartex/series"
	"github.com/pelletier/go-toml/v2"
)

// SeriesTheme is the per-series style block of a theme file.
type SeriesTheme struct {
	Fill        string  `toml:"fill"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float32 `toml:"stroke_width"`
	Opacity     float32 `toml:"opacity"`
}

// Theme is a decoded theme file.
type Theme struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`

	// Palette supplies fill colors for series without an explicit
	// block, cycled by series index.
	Palette []string `toml:"palette"`

	// Series holds explicit per-series styles keyed by series name.
	Series map[string]SeriesTheme `toml:"series"`
}

// Default is the built-in theme used when no file is given.
func Default() Theme {
	return Theme{
		Name:       "default",
		Background: "#ffffff",
		Palette: []string{
			"#00bdae", "#404041", "#357cd2", "#e56590",
			"#f8b883", "#70ad47", "#dd8abd", "#7f84e8",
		},
	}
}

// Decode parses TOML theme data. Missing fields keep their zero
// values; the caller merges over Default as needed.
func Decode(data []byte) (Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("theme: decode: %w", err)
	}
	return t, nil
}

// Load reads and decodes a theme file.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return Decode(data)
}

// StyleFor resolves the style of a named series: its explicit block
// when present, otherwise a palette fill by index with full opacity.
func (t Theme) StyleFor(name string, index int) series.Style {
	if st, ok := t.Series[name]; ok {
		return series.Style{
			Fill:        st.Fill,
			Stroke:      st.Stroke,
			StrokeWidth: st.StrokeWidth,
			Opacity:     st.Opacity,
		}
	}
	s := series.Style{StrokeWidth: 1, Opacity: 1}
	if len(t.Palette) > 0 {
		s.Fill = t.Palette[index%len(t.Palette)]
	}
	return s
}

// ApplyOverrides layers an inline CSS declaration string over a style.
// Only fill, stroke, stroke-width, and opacity are recognized; unknown
// properties are ignored and malformed input leaves the style
// untouched.
func ApplyOverrides(st series.Style, css string) series.Style {
	if css == "" {
		return st
	}
	decls, err := parser.ParseDeclarations(css)
	if err != nil {
		return st
	}
	for _, d := range decls {
		val := strings.TrimSpace(d.Value)
		switch strings.ToLower(d.Property) {
		case "fill":
			st.Fill = val
		case "stroke":
			st.Stroke = val
		case "stroke-width":
			if f, ok := cssNumber(val); ok {
				st.StrokeWidth = f
			}
		case "opacity":
			if f, ok := cssNumber(val); ok {
				st.Opacity = f
			}
		}
	}
	return st
}

// cssNumber parses the leading numeric part of a CSS value, dropping a
// trailing unit like px.
func cssNumber(v string) (float32, bool) {
	end := len(v)
	for i, r := range v {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			end = i
			break
		}
	}
	f, err := strconv.ParseFloat(v[:end], 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}
