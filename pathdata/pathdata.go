// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pathdata models the restricted SVG path mini-language used as
// the interchange format between series geometry, animation
// interpolation, and the drawing sink. The grammar is limited to
// M x y, L x y, C x1 y1 x2 y2 x y, and Z tokens separated by
// whitespace; any sink accepting that token grammar can consume the
// serialized output.
package pathdata

import (
	"strconv"
	"strings"

	"github.com/chartex/chartex/geom"
	"github.com/chewxy/math32"
)

// Command verbs. The byte values are the SVG command letters.
const (
	MoveTo byte = 'M'
	LineTo byte = 'L'
	CubeTo byte = 'C'
	Close  byte = 'Z'
)

// arity is the number of coordinates each verb carries.
func arity(typ byte) int {
	switch typ {
	case MoveTo, LineTo:
		return 2
	case CubeTo:
		return 6
	default:
		return 0
	}
}

// Command is one parsed path command. Coords holds an (x, y) pair for
// MoveTo and LineTo, three pairs for CubeTo (two control points then
// the end point), and is empty for Close.
type Command struct {
	Type   byte
	Coords []float32
}

// End returns the pen position after the command. Close has no
// coordinates; callers track the subpath start themselves.
func (c Command) End() geom.Location {
	n := len(c.Coords)
	if n < 2 {
		return geom.Location{}
	}
	return geom.Location{X: c.Coords[n-2], Y: c.Coords[n-1]}
}

// Path is a sequence of commands. A well-formed path starts with a
// MoveTo, but consumers tolerate anything [Parse] produces.
type Path []Command

// Parse tokenizes an SVG path string restricted to the M/L/C/Z grammar.
// Coordinate strings are split on whitespace and commas; entries that
// fail to parse are dropped. A command with too few coordinates for its
// verb is dropped entirely. Parse never fails: malformed input yields
// an empty or partial path.
func Parse(data string) Path {
	var p Path
	i := 0
	n := len(data)
	for i < n {
		typ := data[i]
		switch typ {
		case 'M', 'L', 'C', 'Z', 'm', 'l', 'c', 'z':
		default:
			i++
			continue
		}
		if typ >= 'a' {
			typ -= 'a' - 'A' // relative commands are treated as absolute
		}
		j := i + 1
		for j < n && !isCommandByte(data[j]) {
			j++
		}
		coords := parseCoords(data[i+1 : j])
		na := arity(typ)
		if len(coords) >= na {
			p = append(p, Command{Type: typ, Coords: coords[:na:na]})
		}
		i = j
	}
	return p
}

func isCommandByte(b byte) bool {
	switch b {
	case 'M', 'L', 'C', 'Z', 'm', 'l', 'c', 'z':
		return true
	}
	return false
}

func parseCoords(s string) []float32 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	coords := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			continue
		}
		fv := float32(v)
		if math32.IsNaN(fv) {
			continue
		}
		coords = append(coords, fv)
	}
	return coords
}

// Round3 rounds v to three decimals, the precision used for all
// serialized coordinates.
func Round3(v float32) float32 {
	return math32.Round(v*1000) / 1000
}

// FormatCoord formats one coordinate at the shared fixed precision.
func FormatCoord(v float32) string {
	return strconv.FormatFloat(float64(Round3(v)), 'f', -1, 32)
}

// String serializes the path back to the token grammar. Every command
// ends with a trailing space, so paths concatenate cleanly.
func (p Path) String() string {
	var b strings.Builder
	for _, c := range p {
		b.WriteByte(c.Type)
		b.WriteByte(' ')
		for _, v := range c.Coords {
			b.WriteString(FormatCoord(v))
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	c := make(Path, len(p))
	for i, cmd := range p {
		c[i] = Command{Type: cmd.Type, Coords: append([]float32(nil), cmd.Coords...)}
	}
	return c
}

// Points returns the end point of every coordinate-bearing command, in
// order. Close commands contribute nothing.
func (p Path) Points() []geom.Location {
	pts := make([]geom.Location, 0, len(p))
	for _, c := range p {
		if len(c.Coords) >= 2 {
			pts = append(pts, c.End())
		}
	}
	return pts
}

// Bounds returns the bounding box of every coordinate in the path,
// control points included. An empty or coordinate-free path yields an
// empty box.
func (p Path) Bounds() geom.Box {
	b := geom.EmptyBox()
	for _, c := range p {
		for i := 0; i+1 < len(c.Coords); i += 2 {
			b.ExpandByPoint(geom.Location{X: c.Coords[i], Y: c.Coords[i+1]})
		}
	}
	return b
}

// Move appends a MoveTo command.
func (p *Path) Move(l geom.Location) {
	*p = append(*p, Command{Type: MoveTo, Coords: []float32{l.X, l.Y}})
}

// Line appends a LineTo command.
func (p *Path) Line(l geom.Location) {
	*p = append(*p, Command{Type: LineTo, Coords: []float32{l.X, l.Y}})
}

// Cube appends a CubeTo command with control points c1, c2 and end
// point end.
func (p *Path) Cube(c1, c2, end geom.Location) {
	*p = append(*p, Command{Type: CubeTo,
		Coords: []float32{c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y}})
}

// ClosePath appends a Close command.
func (p *Path) ClosePath() {
	*p = append(*p, Command{Type: Close})
}

// Equals reports whether p and o contain the same commands with every
// coordinate within tol.
func (p Path) Equals(o Path, tol float32) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i].Type != o[i].Type || len(p[i].Coords) != len(o[i].Coords) {
			return false
		}
		for j := range p[i].Coords {
			if !geom.EqualTol(p[i].Coords[j], o[i].Coords[j], tol) {
				return false
			}
		}
	}
	return true
}
