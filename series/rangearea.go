// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
	"github.com/chartex/chartex/spline"
	"github.com/chewxy/math32"
)

// defaultMarkerWidth widens hit regions when the series marker has no
// explicit size.
const defaultMarkerWidth = 8

func (s *Series) markerSize() (w, h float32) {
	w, h = s.Marker.Width, s.Marker.Height
	if w == 0 {
		w = defaultMarkerWidth
	}
	if h == 0 {
		h = w
	}
	return w, h
}

// clearPointGeometry drops the previous pass's symbol locations and
// regions so skipped points do not keep stale hit areas.
func (s *Series) clearPointGeometry() {
	for i := range s.Points {
		s.Points[i].SymbolLocations = nil
		s.Points[i].Regions = nil
	}
}

// runPoints resolves the low and high boundary pixel polylines for one
// run and refreshes each point's symbol locations and hit region.
func (s *Series) runPoints(run []*Point) (low, high []geom.Location) {
	mw, mh := s.markerSize()
	for _, p := range run {
		lo, hi := s.lowHigh(p)
		lp := s.locate(p.XValue, lo)
		hp := s.locate(p.XValue, hi)
		low = append(low, lp)
		high = append(high, hp)
		p.SymbolLocations = []geom.Location{hp, lp}
		p.Regions = []geom.Rect{s.rangeRegion(lp, hp, mw, mh)}
	}
	return low, high
}

// rangeRegion bounds the low/high pixel span of a point, widened by
// the marker half-size in the cross dimension, relative to the clip
// rect origin.
func (s *Series) rangeRegion(lp, hp geom.Location, mw, mh float32) geom.Rect {
	if s.Transposed {
		return geom.Rect{
			X:      math32.Min(lp.X, hp.X) - s.ClipRect.X,
			Y:      lp.Y - mh/2 - s.ClipRect.Y,
			Width:  math32.Abs(hp.X - lp.X),
			Height: mh,
		}
	}
	return geom.Rect{
		X:      lp.X - mw/2 - s.ClipRect.X,
		Y:      math32.Min(lp.Y, hp.Y) - s.ClipRect.Y,
		Width:  mw,
		Height: math32.Abs(hp.Y - lp.Y),
	}
}

// setTolerances caches the per-render snap tolerances from the average
// pixel gap between visible points.
func (s *Series) setTolerances(n int) {
	gaps := float32(n - 1)
	if gaps < 1 {
		gaps = 1
	}
	if s.Transposed {
		s.XTolerance = s.ClipRect.Height / gaps
		s.YTolerance = s.ClipRect.Width / gaps
		return
	}
	s.XTolerance = s.ClipRect.Width / gaps
	s.YTolerance = s.ClipRect.Height / gaps
}

// buildRangeArea emits one closed fill subpath per visible run, walking
// forward along the low boundary and backward along the high one, and
// a border of two open polylines per run so stroking shows the two
// edges without connecting risers.
func buildRangeArea(s *Series) Geometry {
	s.clearPointGeometry()
	var fill, border pathdata.Path
	var markers []MarkerDesc
	runs := s.runs()
	for _, run := range runs {
		low, high := s.runPoints(run)
		fill.Move(low[0])
		for _, pt := range low[1:] {
			fill.Line(pt)
		}
		for i := len(high) - 1; i >= 0; i-- {
			fill.Line(high[i])
		}
		fill.ClosePath()

		border.Move(low[0])
		for _, pt := range low[1:] {
			border.Line(pt)
		}
		border.Move(high[0])
		for _, pt := range high[1:] {
			border.Line(pt)
		}
		markers = append(markers, s.runMarkers(run)...)
	}
	s.setTolerances(len(s.VisiblePoints()))
	return Geometry{Fill: fill.String(), Border: border.String(), Markers: markers}
}

// buildSplineRangeArea renders each run's boundaries as smooth curves
// with straight risers joining them; a single-point run degenerates to
// a straight low-to-high segment.
func buildSplineRangeArea(s *Series) Geometry {
	s.clearPointGeometry()
	var fillStr, borderStr string
	var markers []MarkerDesc
	for _, run := range s.runs() {
		low, high := s.runPoints(run)
		fillStr += spline.RangeFill(low, high).String()
		if len(run) == 1 {
			var b pathdata.Path
			b.Move(low[0])
			b.Line(high[0])
			borderStr += b.String()
		} else {
			borderStr += spline.Commands(low).String()
			borderStr += spline.Commands(high).String()
		}
		markers = append(markers, s.runMarkers(run)...)
	}
	s.setTolerances(len(s.VisiblePoints()))
	return Geometry{Fill: fillStr, Border: borderStr, Markers: markers}
}

// runMarkers emits a symbol descriptor per boundary anchor when the
// series marker is enabled.
func (s *Series) runMarkers(run []*Point) []MarkerDesc {
	if !s.Marker.Visible {
		return nil
	}
	mw, _ := s.markerSize()
	var out []MarkerDesc
	for _, p := range run {
		for _, loc := range p.SymbolLocations {
			out = append(out, MarkerDesc{
				PointIndex: p.Index,
				Center:     loc,
				Radius:     mw / 2,
				Opacity:    1,
			})
		}
	}
	return out
}
