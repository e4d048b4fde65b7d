// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the pixel-space primitives shared by the chart
// geometry and interaction packages: locations, rectangles, bounding
// boxes, and tolerance-based float comparison.
package geom

import "github.com/chewxy/math32"

// Epsilon is the default absolute tolerance below which two coordinate
// values are considered equal.
const Epsilon = 1e-6

// Location is a point in pixel space. Locations are copied by value
// throughout; nothing retains a reference to one.
type Location struct {
	X, Y float32
}

// Loc is a shorthand constructor for [Location].
func Loc(x, y float32) Location {
	return Location{X: x, Y: y}
}

// Add returns the component-wise sum of l and o.
func (l Location) Add(o Location) Location {
	return Location{l.X + o.X, l.Y + o.Y}
}

// Sub returns the component-wise difference of l and o.
func (l Location) Sub(o Location) Location {
	return Location{l.X - o.X, l.Y - o.Y}
}

// MulScalar returns l scaled by s.
func (l Location) MulScalar(s float32) Location {
	return Location{l.X * s, l.Y * s}
}

// Lerp returns the linear interpolation between l and o at t,
// with t=0 yielding l and t=1 yielding o.
func (l Location) Lerp(o Location, t float32) Location {
	return Location{l.X + (o.X-l.X)*t, l.Y + (o.Y-l.Y)*t}
}

// DistanceTo returns the Euclidean distance between l and o.
func (l Location) DistanceTo(o Location) float32 {
	return math32.Hypot(o.X-l.X, o.Y-l.Y)
}

// Size holds a width and height in pixels.
type Size struct {
	Width, Height float32
}

// Rect is an axis-aligned rectangle given by its top-left corner and
// dimensions, matching the SVG coordinate convention (y grows down).
type Rect struct {
	X, Y, Width, Height float32
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Location {
	return Location{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether l lies inside r, edges inclusive.
func (r Rect) Contains(l Location) bool {
	return l.X >= r.X && l.X <= r.X+r.Width &&
		l.Y >= r.Y && l.Y <= r.Y+r.Height
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// Inset returns r shrunk by d on every side. A negative d grows the
// rectangle. Width and height never go below zero.
func (r Rect) Inset(d float32) Rect {
	w := math32.Max(r.Width-2*d, 0)
	h := math32.Max(r.Height-2*d, 0)
	return Rect{r.X + d, r.Y + d, w, h}
}

// Clamp returns l constrained to lie within r.
func (r Rect) Clamp(l Location) Location {
	return Location{
		X: math32.Min(math32.Max(l.X, r.X), r.X+r.Width),
		Y: math32.Min(math32.Max(l.Y, r.Y), r.Y+r.Height),
	}
}

// Box is a bounding box given by its min and max corners.
// The zero box is not empty; use [EmptyBox] as the identity for
// [Box.ExpandByPoint] accumulation.
type Box struct {
	Min, Max Location
}

// EmptyBox returns a box that any point expands.
func EmptyBox() Box {
	inf := math32.Inf(1)
	return Box{Min: Location{inf, inf}, Max: Location{-inf, -inf}}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// ExpandByPoint grows the box to include l.
func (b *Box) ExpandByPoint(l Location) {
	b.Min.X = math32.Min(b.Min.X, l.X)
	b.Min.Y = math32.Min(b.Min.Y, l.Y)
	b.Max.X = math32.Max(b.Max.X, l.X)
	b.Max.Y = math32.Max(b.Max.Y, l.Y)
}

// ToRect converts the box to a [Rect]. An empty box yields the zero rect.
func (b Box) ToRect() Rect {
	if b.IsEmpty() {
		return Rect{}
	}
	return Rect{b.Min.X, b.Min.Y, b.Max.X - b.Min.X, b.Max.Y - b.Min.Y}
}

// Equal returns true if a and b are equal within an absolute
// tolerance of [Epsilon].
func Equal(a, b float32) bool {
	if a < b {
		return b-a <= Epsilon
	}
	return a-b <= Epsilon
}

// EqualTol returns true if a and b are equal within an absolute
// tolerance of tol.
func EqualTol(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

// EqualPoint reports whether both coordinates of a and b are equal
// within [Epsilon].
func EqualPoint(a, b Location) bool {
	return Equal(a.X, b.X) && Equal(a.Y, b.Y)
}
