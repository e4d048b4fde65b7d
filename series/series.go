// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package series computes drawable geometry for chart series: fill and
// border path strings, per-point hit-test regions, and marker
// descriptors, from data values and the axis pixel mapping. Builders
// exist for range-area, spline-range-area, and bubble series; a single
// dispatch point chooses the builder by series type.
package series

import (
	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
)

// Type tags the geometry builder for a series.
type Type int

const (
	RangeArea Type = iota
	SplineRangeArea
	Bubble
)

// Rect-like and scatter-like types are excluded from some interaction
// paths; String supports diagnostics and template substitution.
func (t Type) String() string {
	switch t {
	case RangeArea:
		return "RangeArea"
	case SplineRangeArea:
		return "SplineRangeArea"
	case Bubble:
		return "Bubble"
	}
	return "Unknown"
}

// IsRange reports whether the type carries low/high values per point.
func (t Type) IsRange() bool {
	return t == RangeArea || t == SplineRangeArea
}

// Point is one chart data point. SymbolLocations and Regions are
// recomputed on every geometry pass; the series owns and overwrites
// them, they are never accumulated.
type Point struct {
	XValue float32
	YValue float32

	// Low and High apply to range series.
	Low, High float32

	// Size applies to bubble series.
	Size float32

	Visible bool
	IsEmpty bool

	// SymbolLocations are the resolved pixel anchors of the point
	// (high then low for range series, the center for bubbles).
	SymbolLocations []geom.Location

	// Regions are the hit-test rectangles of the point, one per
	// hit-testable sub-area, relative to the series clip rect origin.
	Regions []geom.Rect

	Index int
}

// PointTransform maps data values to pixel space. It is the coordinate
// transform boundary: the axis layout collaborator supplies it, and the
// builders treat it as a pure function, monotonic within the visible
// range.
type PointTransform func(xValue, yValue float32) geom.Location

// Marker configures the per-point symbol of a series.
type Marker struct {
	Visible       bool
	Width, Height float32
}

// Style is the resolved visual style of a series.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float32
	Opacity     float32
}

// Series holds the point array, shared axis references, clip rect,
// style, and the transient per-render caches. Axes are owned by the
// chart, not the series.
type Series struct {
	Index   int
	Name    string
	Type    Type
	Points  []Point
	XAxis   *axis.Axis
	YAxis   *axis.Axis
	Visible bool

	// ClipRect is the pixel rectangle geometry is clipped to; regions
	// and paths are relative to its origin.
	ClipRect geom.Rect

	Style  Style
	Marker Marker

	// Transform overrides the default axis mapping when set.
	Transform PointTransform

	// Transposed lays the series out with swapped axis orientations.
	Transposed bool

	EnableTooltip bool
	TooltipFormat string

	// StackingGroup links stacking series for the tooltip total line.
	StackingGroup string

	// MinRadius and MaxRadius bound bubble radii; both zero means the
	// series opts out of explicit radii.
	MinRadius, MaxRadius float32

	// RemovedPointIndex records the index of a point removed since the
	// previous render, or -1; equal to len(Points) it marks a tail
	// removal, which biases animation padding.
	RemovedPointIndex int

	// per-render caches
	XTolerance, YTolerance float32
	visiblePoints          []*Point

	Anim AnimState
}

// New returns a visible series of the given type with an empty
// animation state.
func New(typ Type, index int) *Series {
	return &Series{
		Type:              typ,
		Index:             index,
		Visible:           true,
		EnableTooltip:     true,
		RemovedPointIndex: -1,
		Anim:              AnimState{stored: map[string]string{}},
	}
}

// locate resolves the pixel location of a value pair through the
// injected transform or the axis mapping.
func (s *Series) locate(xv, yv float32) geom.Location {
	if s.Transform != nil {
		return s.Transform(xv, yv)
	}
	return axis.GetPoint(xv, yv, s.XAxis, s.YAxis, s.Transposed)
}

// VisiblePoints returns the cached filtered view of renderable points,
// recomputing it from Points. Point identity is never mutated; the
// cache holds pointers into Points.
func (s *Series) VisiblePoints() []*Point {
	s.visiblePoints = s.visiblePoints[:0]
	for i := range s.Points {
		p := &s.Points[i]
		if p.Visible && !p.IsEmpty {
			s.visiblePoints = append(s.visiblePoints, p)
		}
	}
	return s.visiblePoints
}

// XData returns the x values of all points in order.
func (s *Series) XData() []float32 {
	xs := make([]float32, len(s.Points))
	for i := range s.Points {
		xs[i] = s.Points[i].XValue
	}
	return xs
}

// runs splits the point array into maximal runs of consecutive
// renderable points. Gaps from invisible or empty points split runs,
// and each run closes independently.
func (s *Series) runs() [][]*Point {
	var out [][]*Point
	var cur []*Point
	for i := range s.Points {
		p := &s.Points[i]
		if p.Visible && !p.IsEmpty {
			cur = append(cur, p)
			continue
		}
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// withInRange is the neighbor-aware visibility check against the x
// axis visible range: a point renders when it or an adjacent neighbor
// falls inside the range, so geometry entering from a clipped edge is
// not dropped.
func (s *Series) withInRange(i int) bool {
	if s.XAxis == nil {
		return true
	}
	r := s.XAxis.VisibleRange
	if r.Contains(s.Points[i].XValue, 0) {
		return true
	}
	if i > 0 && r.Contains(s.Points[i-1].XValue, 0) {
		return true
	}
	if i+1 < len(s.Points) && r.Contains(s.Points[i+1].XValue, 0) {
		return true
	}
	return false
}

// lowHigh orders a point's boundary values, flipping when the y axis
// is inverted so the visually lower boundary is walked first.
func (s *Series) lowHigh(p *Point) (float32, float32) {
	lo, hi := p.Low, p.High
	if hi < lo {
		lo, hi = hi, lo
	}
	if s.YAxis != nil && s.YAxis.Inverted {
		lo, hi = hi, lo
	}
	return lo, hi
}

// MarkerDesc describes one rendered point symbol.
type MarkerDesc struct {
	PointIndex int
	Center     geom.Location
	Radius     float32
	Opacity    float32
}

// Geometry is the drawable output of one series build pass.
type Geometry struct {
	Fill    string
	Border  string
	Markers []MarkerDesc
}

// BuildContext carries the chart-level inputs a builder needs beyond
// the series itself.
type BuildContext struct {
	// ChartSize is the overall chart pixel size; bubble radii scale
	// against its larger dimension.
	ChartSize geom.Size

	// MaxBubbleSize is the maximum absolute point size discovered
	// across all bubble series; zero if none.
	MaxBubbleSize float32
}

// Build dispatches to the series type's geometry builder. A series
// with no renderable points or missing collaborators yields the zero
// Geometry rather than an error: chart interaction degrades instead of
// breaking the render pass.
func Build(s *Series, ctx BuildContext) Geometry {
	if s == nil || len(s.Points) == 0 {
		return Geometry{}
	}
	switch s.Type {
	case SplineRangeArea:
		return buildSplineRangeArea(s)
	case Bubble:
		return buildBubble(s, ctx)
	default:
		return buildRangeArea(s)
	}
}
