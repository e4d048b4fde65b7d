// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp interpolates between successive series path strings to
// animate data and axis changes. Interpolators work on parsed
// [pathdata.Path] commands internally and serialize once at the
// boundary; the range-area variants recover the low and high boundary
// polylines from the flattened closed outline and interpolate them
// independently, so animation frames never blend points across the two
// boundaries.
package interp

import (
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
)

// Segment is the decomposition of one closed range-area subpath into
// its two boundary polylines, in path order: Low is the boundary
// traversed forward, High the one traversed backward (or vice versa,
// depending on where the pivot fell). NextIndex points past the
// subpath, including a trailing Close when present.
type Segment struct {
	Low, High   []geom.Location
	NextIndex   int
	ClosedWithZ bool
}

// SplitRangeSegment decomposes the subpath beginning at start, which
// must be a MoveTo, collecting points up to the next MoveTo, Close, or
// the end of the path. The pivot is the first adjacent pair whose x
// coordinates are nearly equal while the y coordinates are not: the
// vertical riser between the two boundaries of a range outline. With
// no such pair the pivot defaults to the midpoint. Returns nil when
// start is out of range or does not begin a subpath.
func SplitRangeSegment(p pathdata.Path, start int) *Segment {
	if start < 0 || start >= len(p) || p[start].Type != pathdata.MoveTo {
		return nil
	}
	pts := []geom.Location{p[start].End()}
	i := start + 1
	closed := false
	for i < len(p) {
		c := p[i]
		if c.Type == pathdata.MoveTo {
			break
		}
		if c.Type == pathdata.Close {
			closed = true
			i++
			break
		}
		pts = append(pts, c.End())
		i++
	}
	pivot := findPivot(pts)
	seg := &Segment{
		Low:         pts[:pivot+1],
		High:        pts[pivot+1:],
		NextIndex:   i,
		ClosedWithZ: closed,
	}
	return seg
}

func findPivot(pts []geom.Location) int {
	for i := 0; i+1 < len(pts); i++ {
		if geom.Equal(pts[i].X, pts[i+1].X) && !geom.Equal(pts[i].Y, pts[i+1].Y) {
			return i
		}
	}
	return (len(pts) - 1) / 2
}

// EqualizePolyline returns a and b grown to a common length
// max(|a|,|b|) by duplicating an end point of the shorter one. The
// duplicated end is the one farther from its counterpart in the other
// polyline, which keeps the geometrically anchored end stable and
// concentrates the distortion where the polylines already diverge.
// On a tie the tail is duplicated. No point is ever dropped.
func EqualizePolyline(a, b []geom.Location) ([]geom.Location, []geom.Location) {
	if len(a) == len(b) {
		return a, b
	}
	if len(a) < len(b) {
		return grow(a, b), b
	}
	return a, grow(b, a)
}

// grow pads short to the length of long.
func grow(short, long []geom.Location) []geom.Location {
	if len(short) == 0 {
		// nothing to duplicate; degrade to the counterpart so the
		// lerp collapses to it
		return append([]geom.Location(nil), long...)
	}
	diff := len(long) - len(short)
	headGap := short[0].DistanceTo(long[0])
	tailGap := short[len(short)-1].DistanceTo(long[len(long)-1])
	out := make([]geom.Location, 0, len(long))
	if headGap <= tailGap {
		out = append(out, short...)
		for n := 0; n < diff; n++ {
			out = append(out, short[len(short)-1])
		}
	} else {
		for n := 0; n < diff; n++ {
			out = append(out, short[0])
		}
		out = append(out, short...)
	}
	return out
}

// LerpPolyline linearly interpolates between two equal-length
// polylines, rounding each coordinate to the serialization precision.
func LerpPolyline(a, b []geom.Location, t float32) []geom.Location {
	out := make([]geom.Location, len(a))
	for i := range a {
		l := a[i].Lerp(b[i], t)
		out[i] = geom.Location{X: pathdata.Round3(l.X), Y: pathdata.Round3(l.Y)}
	}
	return out
}
