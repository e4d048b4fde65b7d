// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"testing"

	"github.com/chartex/chartex/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
name = "ocean"
background = "#0a192f"
palette = ["#64ffda", "#8892b0"]

[series.temps]
fill = "#64ffda"
stroke = "#0a192f"
stroke_width = 1.5
opacity = 0.8
`

func TestDecode(t *testing.T) {
	th, err := Decode([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "ocean", th.Name)
	assert.Equal(t, []string{"#64ffda", "#8892b0"}, th.Palette)

	st, ok := th.Series["temps"]
	require.True(t, ok)
	assert.Equal(t, "#64ffda", st.Fill)
	assert.InDelta(t, 1.5, st.StrokeWidth, 1e-6)
	assert.InDelta(t, 0.8, st.Opacity, 1e-6)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("palette = [unterminated"))
	assert.Error(t, err)
}

func TestStyleFor(t *testing.T) {
	th, err := Decode([]byte(sample))
	require.NoError(t, err)

	// explicit block wins
	st := th.StyleFor("temps", 0)
	assert.Equal(t, "#64ffda", st.Fill)
	assert.Equal(t, "#0a192f", st.Stroke)

	// unnamed series cycle the palette
	assert.Equal(t, "#64ffda", th.StyleFor("other", 0).Fill)
	assert.Equal(t, "#8892b0", th.StyleFor("other", 1).Fill)
	assert.Equal(t, "#64ffda", th.StyleFor("other", 2).Fill)
	assert.Equal(t, float32(1), th.StyleFor("other", 0).Opacity)
}

func TestApplyOverrides(t *testing.T) {
	base := series.Style{Fill: "#111", Stroke: "#222", StrokeWidth: 1, Opacity: 1}

	st := ApplyOverrides(base, "fill: #abc; stroke-width: 2.5px; opacity: 0.4")
	assert.Equal(t, "#abc", st.Fill)
	assert.Equal(t, "#222", st.Stroke)
	assert.InDelta(t, 2.5, st.StrokeWidth, 1e-6)
	assert.InDelta(t, 0.4, st.Opacity, 1e-6)

	// unknown properties are ignored
	st = ApplyOverrides(base, "display: none; stroke: red")
	assert.Equal(t, "red", st.Stroke)
	assert.Equal(t, "#111", st.Fill)

	// malformed values leave the field alone
	st = ApplyOverrides(base, "stroke-width: wide")
	assert.Equal(t, float32(1), st.StrokeWidth)

	assert.Equal(t, base, ApplyOverrides(base, ""))
}
