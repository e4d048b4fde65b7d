// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis models chart axes: the visible value range, the zoom
// factor/position pair, the pixel mapping between data space and the
// axis rectangle, and per-kind value formatting. The mapping functions
// are the coordinate-transform boundary the geometry and interaction
// packages depend on: monotonic within the visible range and
// inverse-consistent within floating-point tolerance.
package axis

import (
	"strconv"
	"strings"
	"time"

	"github.com/chartex/chartex/geom"
	"github.com/chewxy/math32"
)

// Kind is the scale type of an axis.
type Kind int

const (
	Linear Kind = iota
	Logarithmic
	Category
	DateTime
)

// Orientation distinguishes the pixel dimension an axis maps onto.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// MinZoomFactor is the smallest zoom factor an axis accepts; zooming
// further in is clamped here.
const MinZoomFactor = 0.003

// Range is a value interval.
type Range struct {
	Min, Max float32
}

// Delta returns the width of the range.
func (r Range) Delta() float32 { return r.Max - r.Min }

// Contains reports whether v lies inside the range, with tol slack on
// both sides.
func (r Range) Contains(v, tol float32) bool {
	return v >= r.Min-tol && v <= r.Max+tol
}

// Axis owns the visible range and zoom state for one chart dimension.
// Axes are owned by the chart; series hold shared references.
type Axis struct {
	Name        string
	Kind        Kind
	Orientation Orientation

	// Inverted flips the pixel direction of the axis.
	Inverted bool

	// ActualRange is the full data range; VisibleRange is the window
	// selected by the zoom state.
	ActualRange  Range
	VisibleRange Range

	// ZoomFactor is the fraction of the actual range that is visible,
	// in [MinZoomFactor, 1]. ZoomPosition is where the window starts,
	// in [0, 1-ZoomFactor]. Position+factor never exceeds 1.
	ZoomFactor   float32
	ZoomPosition float32

	// Rect is the pixel rectangle the axis maps onto.
	Rect geom.Rect

	// LogBase applies to Logarithmic axes.
	LogBase float32

	// Labels are the category labels for Category axes.
	Labels []string

	// LabelFormat, when it contains "{value}", wraps formatted values.
	LabelFormat string

	// DateFormat is the Go time layout for DateTime axes; values are
	// milliseconds since the Unix epoch.
	DateFormat string

	// CrosshairTooltip enables the axis-edge value tooltip while the
	// crosshair is active.
	CrosshairTooltip bool
}

// New returns an axis with an unzoomed full-range window.
func New(name string, kind Kind, orient Orientation) *Axis {
	return &Axis{
		Name:        name,
		Kind:        kind,
		Orientation: orient,
		ZoomFactor:  1,
		LogBase:     10,
		DateFormat:  "Jan 2, 2006",
	}
}

// Length returns the pixel length of the axis along its orientation.
func (a *Axis) Length() float32 {
	if a.Orientation == Horizontal {
		return a.Rect.Width
	}
	return a.Rect.Height
}

// ClampZoom enforces the zoom invariants after any mutation:
// factor in [MinZoomFactor, 1] and position in [0, 1-factor].
func (a *Axis) ClampZoom() {
	a.ZoomFactor = math32.Min(math32.Max(a.ZoomFactor, MinZoomFactor), 1)
	a.ZoomPosition = math32.Min(math32.Max(a.ZoomPosition, 0), 1-a.ZoomFactor)
}

// ApplyZoom recomputes the visible range from the actual range and the
// current zoom state, clamping first.
func (a *Axis) ApplyZoom() {
	a.ClampZoom()
	d := a.ActualRange.Delta()
	a.VisibleRange = Range{
		Min: a.ActualRange.Min + a.ZoomPosition*d,
		Max: a.ActualRange.Min + (a.ZoomPosition+a.ZoomFactor)*d,
	}
}

// IsZoomed reports whether the axis shows anything other than its full
// range.
func (a *Axis) IsZoomed() bool {
	return a.ZoomFactor != 1 || a.ZoomPosition != 0
}

// ValueToCoefficient maps a data value to [0,1] along the visible
// range, flipped when the axis is inverted.
func (a *Axis) ValueToCoefficient(v float32) float32 {
	d := a.VisibleRange.Delta()
	if d == 0 {
		return 0
	}
	c := (v - a.VisibleRange.Min) / d
	if a.Inverted {
		return 1 - c
	}
	return c
}

// CoefficientToValue is the inverse of [Axis.ValueToCoefficient].
func (a *Axis) CoefficientToValue(c float32) float32 {
	if a.Inverted {
		c = 1 - c
	}
	return a.VisibleRange.Min + c*a.VisibleRange.Delta()
}

// ValueByPoint maps a pixel coordinate inside the axis rect back to a
// data value.
func (a *Axis) ValueByPoint(px float32) float32 {
	length := a.Length()
	if length == 0 {
		return a.VisibleRange.Min
	}
	var c float32
	if a.Orientation == Horizontal {
		c = (px - a.Rect.X) / length
	} else {
		// pixel y grows down, values grow up
		c = 1 - (px-a.Rect.Y)/length
	}
	return a.CoefficientToValue(c)
}

// GetPoint maps an (xValue, yValue) pair to pixel space using the two
// axes. When transposed, the x axis maps onto the vertical dimension
// and vice versa.
func GetPoint(xValue, yValue float32, x, y *Axis, transposed bool) geom.Location {
	cx := x.ValueToCoefficient(xValue)
	cy := y.ValueToCoefficient(yValue)
	if transposed {
		// the x axis runs vertically; data y drives the horizontal pixel
		return geom.Location{
			X: y.Rect.X + cy*y.Rect.Width,
			Y: x.Rect.Y + (1-cx)*x.Rect.Height,
		}
	}
	return geom.Location{
		X: x.Rect.X + cx*x.Rect.Width,
		Y: y.Rect.Y + (1-cy)*y.Rect.Height,
	}
}

// FormatValue renders a value as an axis label per the axis kind.
// Logarithmic axes delog via base^value first; Category axes look up
// the label at the floored index; DateTime formats the value as
// milliseconds since the epoch. Numeric output formats to two decimals
// and falls back to one when the second decimal digit is zero; this
// exact behavior is relied on by existing consumers.
func (a *Axis) FormatValue(v float32) string {
	switch a.Kind {
	case Category:
		i := int(math32.Floor(v))
		if i < 0 || i >= len(a.Labels) {
			return ""
		}
		return a.Labels[i]
	case DateTime:
		return time.UnixMilli(int64(v)).UTC().Format(a.DateFormat)
	case Logarithmic:
		v = math32.Pow(a.LogBase, v)
	}
	return a.formatNumeric(v)
}

func (a *Axis) formatNumeric(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', 2, 32)
	if strings.HasSuffix(s, "0") {
		s = strconv.FormatFloat(float64(v), 'f', 1, 32)
	}
	if strings.Contains(a.LabelFormat, "{value}") {
		return strings.ReplaceAll(a.LabelFormat, "{value}", s)
	}
	return s
}
