// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"testing"

	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
	"github.com/chartex/chartex/spline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRangeSegment(t *testing.T) {
	// low0 low1 riser high1 high0, closed
	p := pathdata.Parse("M 0 1 L 1 2 L 1 4 L 0 5 Z")
	seg := SplitRangeSegment(p, 0)
	require.NotNil(t, seg)
	assert.Equal(t, []geom.Location{{X: 0, Y: 1}, {X: 1, Y: 2}}, seg.Low)
	assert.Equal(t, []geom.Location{{X: 1, Y: 4}, {X: 0, Y: 5}}, seg.High)
	assert.True(t, seg.ClosedWithZ)
	assert.Equal(t, 5, seg.NextIndex)
	assert.Equal(t, 4, len(seg.Low)+len(seg.High))
}

func TestSplitRangeSegmentMidpointDefault(t *testing.T) {
	// no vertical riser anywhere: pivot defaults to the midpoint
	p := pathdata.Parse("M 0 0 L 1 1 L 2 2 L 3 3")
	seg := SplitRangeSegment(p, 0)
	require.NotNil(t, seg)
	assert.Equal(t, 4, len(seg.Low)+len(seg.High))
	assert.Equal(t, 2, len(seg.Low))
	assert.False(t, seg.ClosedWithZ)
}

func TestSplitRangeSegmentMultiple(t *testing.T) {
	p := pathdata.Parse("M 0 1 L 0 5 Z M 3 1 L 3 5 Z")
	seg := SplitRangeSegment(p, 0)
	require.NotNil(t, seg)
	assert.Equal(t, 3, seg.NextIndex)
	seg2 := SplitRangeSegment(p, seg.NextIndex)
	require.NotNil(t, seg2)
	assert.Equal(t, geom.Loc(3, 1), seg2.Low[0])

	assert.Nil(t, SplitRangeSegment(p, 1))
	assert.Nil(t, SplitRangeSegment(p, 99))
}

func TestEqualizePolyline(t *testing.T) {
	a := []geom.Location{{X: 0, Y: 0}, {X: 1, Y: 1}}
	b := []geom.Location{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	a2, b2 := EqualizePolyline(a, b)
	assert.Equal(t, 4, len(a2))
	assert.Equal(t, 4, len(b2))
	// heads coincide, tail is farther: duplicates concentrate at the tail
	assert.Equal(t, geom.Loc(0, 0), a2[0])
	assert.Equal(t, geom.Loc(1, 1), a2[3])
	assert.Equal(t, geom.Loc(1, 1), a2[1])

	// tails coincide, head is farther: duplicates go to the head
	c := []geom.Location{{X: 2, Y: 2}, {X: 3, Y: 3}}
	c2, b3 := EqualizePolyline(c, b)
	assert.Equal(t, 4, len(c2))
	assert.Equal(t, b, b3)
	assert.Equal(t, geom.Loc(2, 2), c2[0])
	assert.Equal(t, geom.Loc(2, 2), c2[1])
	assert.Equal(t, geom.Loc(3, 3), c2[3])

	// equal lengths pass through untouched
	d2, e2 := EqualizePolyline(a, a)
	assert.Equal(t, a, d2)
	assert.Equal(t, a, e2)
}

func TestPathBoundaries(t *testing.T) {
	start := "M 0 0 L 10 0 L 10 5 Z "
	end := "M 0 0 L 20 0 L 20 9 Z "
	assert.Equal(t, start, Path(start, end, 0, false))
	assert.Equal(t, end, Path(start, end, 1, false))
	mid := pathdata.Parse(Path(start, end, 0.5, false))
	assert.InDelta(t, 15, mid[1].Coords[0], 1e-3)
	assert.InDelta(t, 7, mid[2].Coords[1], 1e-3)
}

func TestPathPadding(t *testing.T) {
	start := "M 0 0 L 10 0 "
	end := "M 0 0 L 5 0 L 10 0 "
	got := Path(start, end, 1, false)
	assert.Equal(t, end, got)
	got = Path(start, end, 1, true)
	assert.Equal(t, end, got)
	// empty sides degrade to the other path
	assert.Equal(t, end, Path("", end, 0.3, false))
	assert.Equal(t, start, Path(start, "", 0.3, false))
}

func TestInterpolateRangeAreaBoundaries(t *testing.T) {
	start := "M 0 1 L 1 2 L 1 4 L 0 5 Z "
	end := "M 0 2 L 1 3 L 1 6 L 0 7 Z "
	assert.Equal(t, start, Interpolate(RangeArea, start, end, 0))
	assert.Equal(t, end, Interpolate(RangeArea, start, end, 1))
	mid := pathdata.Parse(Interpolate(RangeArea, start, end, 0.5))
	assert.InDelta(t, 1.5, mid[0].Coords[1], 1e-3)
	assert.InDelta(t, 5, mid[2].Coords[1], 1e-3)
}

func TestInterpolateRangeAreaPointCountChange(t *testing.T) {
	start := "M 0 1 L 1 2 L 1 4 L 0 5 Z "
	end := "M 0 1 L 1 2 L 2 3 L 2 6 L 1 4 L 0 5 Z "
	got := Interpolate(RangeArea, start, end, 1)
	assert.Equal(t, end, got)
	// intermediate frames keep the run closed
	mid := Interpolate(RangeArea, start, end, 0.5)
	p := pathdata.Parse(mid)
	assert.Equal(t, pathdata.Close, p[len(p)-1].Type)
}

func TestInterpolateRangeBorder(t *testing.T) {
	start := "M 0 1 L 1 2 M 0 5 L 1 4 "
	end := "M 0 3 L 1 4 M 0 7 L 1 6 "
	assert.Equal(t, start, Interpolate(RangeBorder, start, end, 0))
	assert.Equal(t, end, Interpolate(RangeBorder, start, end, 1))
	mid := pathdata.Parse(Interpolate(RangeBorder, start, end, 0.5))
	assert.InDelta(t, 2, mid[0].Coords[1], 1e-3)
	assert.InDelta(t, 6, mid[2].Coords[1], 1e-3)
}

func TestSplinePolyline(t *testing.T) {
	a := []geom.Location{{X: 0, Y: 0}, {X: 10, Y: 0}}
	b := []geom.Location{{X: 0, Y: 10}, {X: 10, Y: 10}}
	assert.Equal(t, "M 0 5 C 1.667 5 8.333 5 10 5 ", SplinePolyline(a, b, 0.5))
	assert.Equal(t, "M 0 0 C 1.667 0 8.333 0 10 0 ", SplinePolyline(a, b, 0))
}

func TestSplineBorderStraightRiser(t *testing.T) {
	// a single-point run renders its border as a straight low-high
	// riser; interpolation keeps the line form instead of re-splining,
	// so the boundary frames reproduce the built path verbatim
	start := "M 0 1 L 0 5 "
	end := "M 2 1 L 2 6 "
	assert.Equal(t, start, Interpolate(SplineRangeBorder, start, end, 0))
	assert.Equal(t, end, Interpolate(SplineRangeBorder, start, end, 1))
	assert.Equal(t, "M 1 1 L 1 5.5 ", Interpolate(SplineRangeBorder, start, end, 0.5))

	// curved subpaths still regenerate as splines each frame
	curved := Interpolate(SplineRangeBorder,
		"M 0 0 C 1.667 0 8.333 0 10 0 ",
		"M 0 10 C 1.667 10 8.333 10 10 10 ", 0.5)
	assert.Equal(t, "M 0 5 C 1.667 5 8.333 5 10 5 ", curved)
}

func TestSplineRangeAreaRoundTrip(t *testing.T) {
	low := []geom.Location{{X: 0, Y: 5}, {X: 10, Y: 6}, {X: 20, Y: 5}}
	high := []geom.Location{{X: 0, Y: 1}, {X: 10, Y: 2}, {X: 20, Y: 1}}
	start := spline.RangeFill(low, high).String()
	high2 := []geom.Location{{X: 0, Y: 0}, {X: 10, Y: 1}, {X: 20, Y: 0}}
	end := spline.RangeFill(low, high2).String()
	assert.Equal(t, start, Interpolate(SplineRangeArea, start, end, 0))
	assert.Equal(t, end, Interpolate(SplineRangeArea, start, end, 1))
}

func TestRevealClip(t *testing.T) {
	b := geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}

	r := RevealClip(b, 0.5, false, false)
	assert.Equal(t, geom.Rect{X: 10, Y: 20, Width: 50, Height: 50}, r)

	r = RevealClip(b, 0.5, false, true)
	assert.Equal(t, geom.Rect{X: 60, Y: 20, Width: 50, Height: 50}, r)

	r = RevealClip(b, 0.5, true, false)
	assert.Equal(t, geom.Rect{X: 10, Y: 45, Width: 100, Height: 25}, r)

	r = RevealClip(b, 1, false, false)
	assert.Equal(t, b, r)

	assert.True(t, RevealDegenerate(geom.Rect{Width: 0, Height: 5}, false))
	assert.False(t, RevealDegenerate(b, false))
}
