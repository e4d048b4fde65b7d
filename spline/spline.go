// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spline converts point sequences into smooth cubic-Bezier
// paths using Catmull-Rom control points. It backs the spline-range
// series geometry and its animation interpolation: interpolation
// happens in point space and the curve is regenerated each frame, so
// every intermediate frame is itself a valid spline through the
// interpolated points.
package spline

import (
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
)

// tension is the Catmull-Rom tension factor for the Bezier control
// points.
const tension = 1.0 / 6.0

// Commands returns the smooth path through pts as parsed commands:
// a MoveTo at the first point followed by one CubeTo per segment.
// Zero points yield an empty path; a single point yields just the
// MoveTo.
func Commands(pts []geom.Location) pathdata.Path {
	n := len(pts)
	if n == 0 {
		return nil
	}
	var p pathdata.Path
	p.Move(pts[0])
	if n == 1 {
		return p
	}
	for i := 0; i < n-1; i++ {
		prev := pts[maxInt(i-1, 0)]
		cur := pts[i]
		next := pts[i+1]
		after := pts[minInt(i+2, n-1)]
		cp1 := cur.Add(next.Sub(prev).MulScalar(tension))
		cp2 := next.Sub(after.Sub(cur).MulScalar(tension))
		p.Cube(cp1, cp2, next)
	}
	return p
}

// Path returns the serialized smooth path through pts.
func Path(pts []geom.Location) string {
	return Commands(pts).String()
}

// Reverse returns the commands for the smooth path through pts
// traversed end to start. The Catmull-Rom tension is symmetric, so the
// reversed curve traces the same geometry.
func Reverse(pts []geom.Location) pathdata.Path {
	rev := make([]geom.Location, len(pts))
	for i, pt := range pts {
		rev[len(pts)-1-i] = pt
	}
	return Commands(rev)
}

// RangeFill assembles the closed fill outline for a spline range run:
// a straight riser from the first low point up to the first high point,
// the smooth curve along the high boundary, a straight riser down to
// the last low point, and the smooth low curve traversed back to the
// start, closed with Z. A single-point run degenerates to a straight
// low-to-high line plus Z, since a spline needs at least two points.
func RangeFill(low, high []geom.Location) pathdata.Path {
	if len(low) == 0 || len(high) == 0 {
		return nil
	}
	var p pathdata.Path
	if len(low) == 1 || len(high) == 1 {
		p.Move(low[0])
		p.Line(high[0])
		p.ClosePath()
		return p
	}
	p.Move(low[0])
	p.Line(high[0])
	p = append(p, Commands(high)[1:]...)
	p.Line(low[len(low)-1])
	p = append(p, Reverse(low)[1:]...)
	p.ClosePath()
	return p
}

// RangeBoundaries recovers the low and high boundary polylines from a
// path produced by [RangeFill]. The command endpoints carry the
// original data points because the spline interpolates through them.
// Returns nil polylines when the path does not have the RangeFill
// structure.
func RangeBoundaries(p pathdata.Path) (low, high []geom.Location) {
	if len(p) < 3 || p[0].Type != pathdata.MoveTo || p[1].Type != pathdata.LineTo {
		return nil, nil
	}
	// degenerate single-point run: M low L high Z
	if len(p) == 3 && p[2].Type == pathdata.Close {
		return []geom.Location{p[0].End()}, []geom.Location{p[1].End()}
	}
	high = append(high, p[1].End())
	i := 2
	for ; i < len(p) && p[i].Type == pathdata.CubeTo; i++ {
		high = append(high, p[i].End())
	}
	if i >= len(p) || p[i].Type != pathdata.LineTo {
		return nil, nil
	}
	lowRev := []geom.Location{p[i].End()}
	i++
	for ; i < len(p) && p[i].Type == pathdata.CubeTo; i++ {
		lowRev = append(lowRev, p[i].End())
	}
	low = make([]geom.Location, len(lowRev))
	for j, pt := range lowRev {
		low[len(lowRev)-1-j] = pt
	}
	return low, high
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
