// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"sort"

	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/series"
	"github.com/chewxy/math32"
)

// xToleranceBand is the slack beyond the visible range inside which a
// closest-x candidate still qualifies.
const xToleranceBand = 0.5

// ClosestXPoint scans the series x data linearly for the minimum
// absolute difference from the target value, constrained to the x axis
// visible range widened by half a unit on each side. It returns nil
// when no candidate qualifies or the winning value is not actually
// present in the data.
func ClosestXPoint(s *series.Series, xval float32) *series.Point {
	if s == nil || len(s.Points) == 0 {
		return nil
	}
	best := -1
	var bestDiff float32
	for i := range s.Points {
		p := &s.Points[i]
		if !p.Visible || p.IsEmpty {
			continue
		}
		if s.XAxis != nil && !s.XAxis.VisibleRange.Contains(p.XValue, xToleranceBand) {
			continue
		}
		d := math32.Abs(p.XValue - xval)
		if best == -1 || d < bestDiff {
			best, bestDiff = i, d
		}
	}
	if best == -1 {
		return nil
	}
	return &s.Points[best]
}

// CommonXValues returns the sorted union of x values across all
// visible series, used to align shared tooltip and trackball lookups
// when series do not share identical x grids.
func CommonXValues(list []*series.Series) []float32 {
	seen := map[float32]bool{}
	var out []float32
	for _, s := range list {
		if s == nil || !s.Visible {
			continue
		}
		for _, x := range s.XData() {
			if !seen[x] {
				seen[x] = true
				out = append(out, x)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClosestCommonX resolves the nearest common x value to the target.
func ClosestCommonX(list []*series.Series, xval float32) (float32, bool) {
	xs := CommonXValues(list)
	if len(xs) == 0 {
		return 0, false
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if math32.Abs(x-xval) < math32.Abs(best-xval) {
			best = x
		}
	}
	return best, true
}

// PointAtX returns the renderable point sampled exactly at the given
// x value, or nil when the series has no such sample. Shared-mode
// lookups resolve a common x value first and then guard with this, so
// a series missing the value contributes nothing instead of defaulting
// to a zero point.
func PointAtX(s *series.Series, xval float32) *series.Point {
	if s == nil {
		return nil
	}
	for i := range s.Points {
		p := &s.Points[i]
		if p.Visible && !p.IsEmpty && geom.Equal(p.XValue, xval) {
			return p
		}
	}
	return nil
}

// RegionHit reports the point of s whose hit region contains pos, or
// nil. Regions are stored relative to the series clip rect origin.
func RegionHit(pos geom.Location, s *series.Series) *series.Point {
	if s == nil || !s.Visible {
		return nil
	}
	for i := range s.Points {
		p := &s.Points[i]
		for _, r := range p.Regions {
			if r.Offset(s.ClipRect.X, s.ClipRect.Y).Contains(pos) {
				return p
			}
		}
	}
	return nil
}

// RegionHitAny runs the region hit test across a series list and
// reports the first hit in list order.
func RegionHitAny(pos geom.Location, list []*series.Series) *series.Point {
	for _, s := range list {
		if p := RegionHit(pos, s); p != nil {
			return p
		}
	}
	return nil
}

// NearestVisiblePoint finds the point whose resolved symbol location
// is closest to pos by Euclidean pixel distance, across all visible,
// tooltip-enabled series not rejected by exclude. The comparison is
// strict, so on an exact distance tie the first series in iteration
// order wins. For fixed inputs the result is deterministic.
func NearestVisiblePoint(pos geom.Location, list []*series.Series, exclude func(*series.Series) bool) (*series.Series, *series.Point) {
	var bestSeries *series.Series
	var bestPoint *series.Point
	bestDist := math32.Inf(1)
	for _, s := range list {
		if s == nil || !s.Visible || !s.EnableTooltip {
			continue
		}
		if exclude != nil && exclude(s) {
			continue
		}
		for i := range s.Points {
			p := &s.Points[i]
			if !p.Visible || p.IsEmpty || len(p.SymbolLocations) == 0 {
				continue
			}
			d := pos.DistanceTo(p.SymbolLocations[0])
			if d < bestDist {
				bestDist = d
				bestSeries, bestPoint = s, p
			}
		}
	}
	return bestSeries, bestPoint
}
