// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pathdata

import (
	"testing"

	"github.com/chartex/chartex/geom"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	p := Parse("M 0 0 L 10 5 Z ")
	assert.Equal(t, 3, len(p))
	assert.Equal(t, MoveTo, p[0].Type)
	assert.Equal(t, []float32{0, 0}, p[0].Coords)
	assert.Equal(t, LineTo, p[1].Type)
	assert.Equal(t, []float32{10, 5}, p[1].Coords)
	assert.Equal(t, Close, p[2].Type)

	p = Parse("M10,20L30,40")
	assert.Equal(t, 2, len(p))
	assert.Equal(t, []float32{10, 20}, p[0].Coords)

	p = Parse("M 1.5 2.25 C 1 2 3 4 5 6 Z")
	assert.Equal(t, 3, len(p))
	assert.Equal(t, CubeTo, p[1].Type)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, p[1].Coords)
}

func TestParseMalformed(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("garbage"))

	// too few coordinates drops the command, keeps the rest
	p := Parse("M 1 L 2 3")
	assert.Equal(t, 1, len(p))
	assert.Equal(t, LineTo, p[0].Type)

	// unparsable tokens are skipped
	p = Parse("M x 1 2 L 3 4")
	assert.Equal(t, 2, len(p))
	assert.Equal(t, []float32{1, 2}, p[0].Coords)

	// lowercase verbs are accepted as absolute
	p = Parse("m 1 2 l 3 4 z")
	assert.Equal(t, 3, len(p))
	assert.Equal(t, MoveTo, p[0].Type)
	assert.Equal(t, Close, p[2].Type)
}

func TestRoundTrip(t *testing.T) {
	for _, d := range []string{
		"M 0 0 L 10 5 Z ",
		"M 1.125 2.5 C 1 2 3 4 5 6 L 7 8 Z ",
		"M -3.25 4 L 0.001 -0.001 ",
	} {
		p := Parse(d)
		again := Parse(p.String())
		assert.True(t, p.Equals(again, 1e-3), "round trip of %q", d)
	}
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "0", FormatCoord(0))
	assert.Equal(t, "1.5", FormatCoord(1.5))
	assert.Equal(t, "1.235", FormatCoord(1.23456))
	assert.Equal(t, "-2", FormatCoord(-2.0001))
}

func TestString(t *testing.T) {
	var p Path
	p.Move(geom.Loc(0, 0))
	p.Line(geom.Loc(10, 5))
	p.ClosePath()
	assert.Equal(t, "M 0 0 L 10 5 Z ", p.String())
}

func TestBounds(t *testing.T) {
	p := Parse("M 1 2 L 5 -3 L 2 8")
	b := p.Bounds()
	assert.Equal(t, geom.Loc(1, -3), b.Min)
	assert.Equal(t, geom.Loc(5, 8), b.Max)

	assert.True(t, Parse("Z").Bounds().IsEmpty())
	assert.True(t, Path{}.Bounds().IsEmpty())
}

func TestPoints(t *testing.T) {
	p := Parse("M 0 0 C 1 1 2 2 3 3 L 4 4 Z")
	pts := p.Points()
	assert.Equal(t, []geom.Location{{X: 0, Y: 0}, {X: 3, Y: 3}, {X: 4, Y: 4}}, pts)
}
