// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
	"github.com/chartex/chartex/spline"
)

// Kind selects the type-aware sub-interpolator for a series path role.
type Kind int

const (
	// Area is a generic filled outline: command-wise interpolation.
	Area Kind = iota

	// Border is a generic open polyline set: command-wise interpolation.
	Border

	// RangeArea is a closed low/high outline: the two boundaries are
	// recovered and interpolated independently.
	RangeArea

	// RangeBorder is the pair of open low/high polylines of a range
	// series border.
	RangeBorder

	// SplineArea is a smooth curve outline: interpolated in point
	// space and re-splined each frame.
	SplineArea

	// SplineRangeArea is the closed smooth low/high outline.
	SplineRangeArea

	// SplineRangeBorder is the pair of smooth low/high curves.
	SplineRangeBorder
)

// Interpolate morphs between two serialized paths of the given kind at
// progress t in [0,1]. t=0 reproduces the start geometry and t=1 the
// end geometry, up to coordinate rounding. Unrecognized structure
// degrades to the generic command interpolator; an empty start or end
// degrades to the other path.
func Interpolate(kind Kind, start, end string, t float32) string {
	switch kind {
	case RangeArea:
		return interpolateRangeArea(start, end, t)
	case RangeBorder:
		return interpolateSubpathPolylines(start, end, t)
	case SplineArea, SplineRangeBorder:
		return interpolateSplineSubpaths(start, end, t)
	case SplineRangeArea:
		return interpolateSplineRangeArea(start, end, t)
	default:
		return Path(start, end, t, false)
	}
}

// Path is the generic command-wise interpolator. When the command
// counts differ, the shorter list is padded by duplicating an adjacent
// command first: at the tail when tailChange reports that the data
// change removed or appended trailing points, otherwise right after the
// leading MoveTo. Commands whose verbs still disagree snap to the start
// command below t=0.5 and to the end command from there on.
func Path(start, end string, t float32, tailChange bool) string {
	s := pathdata.Parse(start)
	e := pathdata.Parse(end)
	if len(s) == 0 {
		return end
	}
	if len(e) == 0 {
		return start
	}
	if len(s) < len(e) {
		s = padCommands(s, len(e)-len(s), tailChange)
	} else if len(e) < len(s) {
		e = padCommands(e, len(s)-len(e), tailChange)
	}
	out := make(pathdata.Path, 0, len(s))
	for i := range s {
		a, b := s[i], e[i]
		if a.Type != b.Type || len(a.Coords) != len(b.Coords) {
			if t < 0.5 {
				out = append(out, a)
			} else {
				out = append(out, b)
			}
			continue
		}
		coords := make([]float32, len(a.Coords))
		for j := range coords {
			coords[j] = a.Coords[j] + (b.Coords[j]-a.Coords[j])*t
		}
		out = append(out, pathdata.Command{Type: a.Type, Coords: coords})
	}
	return out.String()
}

// padCommands inserts n duplicates of an adjacent command. Trailing
// Close commands stay at the end.
func padCommands(p pathdata.Path, n int, tail bool) pathdata.Path {
	if len(p) == 0 {
		return p
	}
	insert := len(p)
	if p[len(p)-1].Type == pathdata.Close {
		insert--
	}
	if !tail {
		// duplicate just after the leading MoveTo so the anchored tail
		// stays stable
		if insert > 1 {
			insert = 1
		}
	}
	dup := p[maxInt(insert-1, 0)]
	out := make(pathdata.Path, 0, len(p)+n)
	out = append(out, p[:insert]...)
	for k := 0; k < n; k++ {
		out = append(out, pathdata.Command{Type: dup.Type,
			Coords: append([]float32(nil), dup.Coords...)})
	}
	out = append(out, p[insert:]...)
	return out
}

func interpolateRangeArea(start, end string, t float32) string {
	s := pathdata.Parse(start)
	e := pathdata.Parse(end)
	if len(s) == 0 {
		return end
	}
	if len(e) == 0 {
		return start
	}
	var out pathdata.Path
	si, ei := 0, 0
	for si < len(s) && ei < len(e) {
		ss := SplitRangeSegment(s, si)
		es := SplitRangeSegment(e, ei)
		if ss == nil || es == nil {
			return Path(start, end, t, false)
		}
		lowA, lowB := EqualizePolyline(ss.Low, es.Low)
		highA, highB := EqualizePolyline(ss.High, es.High)
		low := LerpPolyline(lowA, lowB, t)
		high := LerpPolyline(highA, highB, t)
		out.Move(low[0])
		for _, pt := range low[1:] {
			out.Line(pt)
		}
		for _, pt := range high {
			out.Line(pt)
		}
		if es.ClosedWithZ || ss.ClosedWithZ {
			out.ClosePath()
		}
		si, ei = ss.NextIndex, es.NextIndex
	}
	if si < len(s) || ei < len(e) {
		// run counts differ (a visibility gap opened or closed);
		// no pairing is meaningful, snap to the target side
		return Path(start, end, t, false)
	}
	return out.String()
}

// interpolateSubpathPolylines pairs the open polylines of two border
// paths by subpath index and interpolates each pair.
func interpolateSubpathPolylines(start, end string, t float32) string {
	sp := subpathPoints(pathdata.Parse(start))
	ep := subpathPoints(pathdata.Parse(end))
	if len(sp) == 0 {
		return end
	}
	if len(ep) == 0 || len(sp) != len(ep) {
		return Path(start, end, t, false)
	}
	var out pathdata.Path
	for i := range sp {
		a, b := EqualizePolyline(sp[i], ep[i])
		pts := LerpPolyline(a, b, t)
		if len(pts) == 0 {
			continue
		}
		out.Move(pts[0])
		for _, pt := range pts[1:] {
			out.Line(pt)
		}
	}
	return out.String()
}

// interpolateSplineSubpaths pairs smooth-curve subpaths, interpolates
// their underlying points, and regenerates each spline, so every frame
// is itself a spline through the interpolated points rather than a
// control-point lerp. Subpaths without curves on either side are the
// straight risers of degenerate single-point runs and stay lines.
func interpolateSplineSubpaths(start, end string, t float32) string {
	ss := subpaths(pathdata.Parse(start))
	es := subpaths(pathdata.Parse(end))
	if len(ss) == 0 {
		return end
	}
	if len(es) == 0 || len(ss) != len(es) {
		return Path(start, end, t, false)
	}
	var b []byte
	for i := range ss {
		sp, ep := ss[i].Points(), es[i].Points()
		// a curve-free subpath on both sides is a degenerate
		// single-point-run riser; keep it a straight line so the
		// boundary frames reproduce the built form verbatim
		if !hasCurve(ss[i]) && !hasCurve(es[i]) {
			a, bp := EqualizePolyline(sp, ep)
			pts := LerpPolyline(a, bp, t)
			if len(pts) == 0 {
				continue
			}
			var line pathdata.Path
			line.Move(pts[0])
			for _, pt := range pts[1:] {
				line.Line(pt)
			}
			b = append(b, line.String()...)
			continue
		}
		b = append(b, SplinePolyline(sp, ep, t)...)
	}
	return string(b)
}

func hasCurve(p pathdata.Path) bool {
	for _, c := range p {
		if c.Type == pathdata.CubeTo {
			return true
		}
	}
	return false
}

func interpolateSplineRangeArea(start, end string, t float32) string {
	ss := subpaths(pathdata.Parse(start))
	es := subpaths(pathdata.Parse(end))
	if len(ss) == 0 {
		return end
	}
	if len(es) == 0 || len(ss) != len(es) {
		return Path(start, end, t, false)
	}
	var out []byte
	for i := range ss {
		lowS, highS := spline.RangeBoundaries(ss[i])
		lowE, highE := spline.RangeBoundaries(es[i])
		if lowS == nil || lowE == nil {
			return Path(start, end, t, false)
		}
		lowA, lowB := EqualizePolyline(lowS, lowE)
		highA, highB := EqualizePolyline(highS, highE)
		low := LerpPolyline(lowA, lowB, t)
		high := LerpPolyline(highA, highB, t)
		out = append(out, spline.RangeFill(low, high).String()...)
	}
	return string(out)
}

// SplinePolyline interpolates between two point sequences and returns
// the smooth path through the interpolated points: counts are equalized,
// each coordinate lerped at t and rounded, then the spline regenerated.
func SplinePolyline(startPts, endPts []geom.Location, t float32) string {
	a, b := EqualizePolyline(startPts, endPts)
	return spline.Path(LerpPolyline(a, b, t))
}

// subpaths splits a path at MoveTo boundaries.
func subpaths(p pathdata.Path) []pathdata.Path {
	var out []pathdata.Path
	start := -1
	for i, c := range p {
		if c.Type == pathdata.MoveTo {
			if start >= 0 {
				out = append(out, p[start:i])
			}
			start = i
		}
	}
	if start >= 0 {
		out = append(out, p[start:])
	}
	return out
}

// subpathPoints returns the command end points of each subpath.
func subpathPoints(p pathdata.Path) [][]geom.Location {
	subs := subpaths(p)
	out := make([][]geom.Location, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Points())
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
