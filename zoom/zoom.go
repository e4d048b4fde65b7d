// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zoom maintains the per-axis zoom factor/position state and
// translates selection, wheel, pinch, and pan gestures into mutations
// of it. Every mutating operation is optimistic: axes are mutated
// first, then a cancelable zoom-start event fires synchronously; a
// canceling callback rolls every participating axis back to its
// recorded pre-operation snapshot. This pre-commit/cancel/rollback
// order is the external event contract and must stay synchronous.
package zoom

import (
	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
	"github.com/chewxy/math32"
)

const (
	// minSelectionFactor guards against degenerate zero-width
	// selection zooms; below it the operation reverts.
	minSelectionFactor = 0.001

	// wheelZoomStep is the cumulative zoom increment per wheel notch.
	wheelZoomStep = 0.25

	// maxWheelCumulative caps cumulative wheel zoom to prevent
	// runaway factors.
	maxWheelCumulative = 100
)

// AxisData describes one axis's zoom state in start/end event
// payloads.
type AxisData struct {
	AxisName     string
	ZoomFactor   float32
	ZoomPosition float32
	AxisRange    axis.Range
}

// StartEvent is the cancelable payload passed to the zoom-start
// callback before an operation commits. Setting Cancel vetoes the
// operation and restores all participating axes.
type StartEvent struct {
	Cancel   bool
	AxisData []AxisData
}

type snapshot struct {
	factor, position float32
	visible          axis.Range
}

// Controller owns the zoom state for one chart. It is created once at
// the chart's measure phase and mutated in place for the chart's life.
type Controller struct {
	Axes []*axis.Axis

	// OnZoomStart fires synchronously before each operation commits
	// and may cancel it. OnZoomEnd fires per axis after commit.
	OnZoomStart func(*StartEvent)
	OnZoomEnd   func(AxisData)

	IsZoomed  bool
	IsPanning bool

	// ZoomingRect is the live selection rectangle during a drag.
	ZoomingRect geom.Rect

	// TouchStartList and TouchMoveList track the active touch points
	// of a pinch gesture.
	TouchStartList []geom.Location
	TouchMoveList  []geom.Location

	// Offset is the series bounds at gesture start.
	Offset geom.Rect

	prev map[*axis.Axis]snapshot

	pinchRect geom.Rect
	pinching  bool
}

// NewController returns a controller over the given axes.
func NewController(axes ...*axis.Axis) *Controller {
	return &Controller{Axes: axes, prev: map[*axis.Axis]snapshot{}}
}

// Reset restores every axis to the unzoomed {factor 1, position 0}
// state and clears all gesture flags. Calling it twice is the same as
// once.
func (c *Controller) Reset() {
	for _, a := range c.Axes {
		a.ZoomFactor = 1
		a.ZoomPosition = 0
		a.ApplyZoom()
	}
	c.IsZoomed = false
	c.IsPanning = false
	c.ZoomingRect = geom.Rect{}
	c.TouchStartList = nil
	c.TouchMoveList = nil
	c.pinching = false
	c.fireEnd()
}

// record snapshots every axis before an operation so a canceled start
// event can restore them precisely.
func (c *Controller) record() {
	if c.prev == nil {
		c.prev = map[*axis.Axis]snapshot{}
	}
	for _, a := range c.Axes {
		c.prev[a] = snapshot{factor: a.ZoomFactor, position: a.ZoomPosition, visible: a.VisibleRange}
	}
}

// commit fires the cancelable start event with the already-mutated
// state; on cancel it rolls back and reports false, otherwise it fires
// the end events and reports true.
func (c *Controller) commit() bool {
	ev := &StartEvent{AxisData: c.axisData()}
	if c.OnZoomStart != nil {
		c.OnZoomStart(ev)
	}
	if ev.Cancel {
		c.rollback()
		return false
	}
	c.fireEnd()
	return true
}

func (c *Controller) rollback() {
	for _, a := range c.Axes {
		if s, ok := c.prev[a]; ok {
			a.ZoomFactor = s.factor
			a.ZoomPosition = s.position
			a.VisibleRange = s.visible
		}
	}
	c.refreshZoomed()
}

func (c *Controller) fireEnd() {
	if c.OnZoomEnd == nil {
		return
	}
	for _, d := range c.axisData() {
		c.OnZoomEnd(d)
	}
}

func (c *Controller) axisData() []AxisData {
	out := make([]AxisData, 0, len(c.Axes))
	for _, a := range c.Axes {
		out = append(out, AxisData{
			AxisName:     a.Name,
			ZoomFactor:   a.ZoomFactor,
			ZoomPosition: a.ZoomPosition,
			AxisRange:    a.VisibleRange,
		})
	}
	return out
}

func (c *Controller) refreshZoomed() {
	c.IsZoomed = false
	for _, a := range c.Axes {
		if a.IsZoomed() {
			c.IsZoomed = true
		}
	}
}

// SelectionZoom commits a drag-selection rectangle, translating its
// proportion of the series bounds into new factor/position pairs. A
// selection collapsing below the minimum factor reverts rather than
// committing a degenerate zoom.
func (c *Controller) SelectionZoom(rect, bounds geom.Rect) bool {
	rect = clampRect(rect, bounds)
	if rect.Width <= 0 || rect.Height <= 0 {
		c.ZoomingRect = geom.Rect{}
		return false
	}
	// a selection collapsing below the minimum factor on any axis
	// reverts; checked against the unclamped targets
	for _, a := range c.Axes {
		if frac, _, ok := selectionWindow(a, rect, bounds); ok && a.ZoomFactor*frac < minSelectionFactor {
			c.ZoomingRect = geom.Rect{}
			return false
		}
	}
	c.record()
	for _, a := range c.Axes {
		applySelection(a, rect, bounds)
	}
	c.IsZoomed = true
	c.ZoomingRect = geom.Rect{}
	return c.commit()
}

// selectionWindow maps the selection rect onto one axis as a (window
// fraction, window offset) pair in zoomed coordinate space.
func selectionWindow(a *axis.Axis, rect, bounds geom.Rect) (frac, pos float32, ok bool) {
	if a.Orientation == axis.Horizontal {
		if bounds.Width == 0 {
			return 0, 0, false
		}
		return rect.Width / bounds.Width, (rect.X - bounds.X) / bounds.Width, true
	}
	if bounds.Height == 0 {
		return 0, 0, false
	}
	// pixel y grows down; the window position measures from the
	// bottom edge
	return rect.Height / bounds.Height, (bounds.Bottom() - rect.Bottom()) / bounds.Height, true
}

func applySelection(a *axis.Axis, rect, bounds geom.Rect) {
	frac, pos, ok := selectionWindow(a, rect, bounds)
	if !ok {
		return
	}
	a.ZoomPosition = a.ZoomPosition + pos*a.ZoomFactor
	a.ZoomFactor = a.ZoomFactor * frac
	a.ClampZoom()
	a.ApplyZoom()
}

// WheelZoom applies one mouse-wheel step anchored at the pointer: the
// data value under the cursor stays put while the window scales around
// it. A negative deltaY (wheel up) zooms in; the legacy detail field
// covers engines that do not populate deltaY.
func (c *Controller) WheelZoom(pos geom.Location, deltaY float32, detail int, bounds geom.Rect) bool {
	direction := float32(-1)
	if deltaY != 0 {
		if deltaY < 0 {
			direction = 1
		}
	} else if detail != 0 {
		if detail < 0 {
			direction = 1
		}
	} else {
		return false
	}
	c.record()
	for _, a := range c.Axes {
		applyWheel(a, pos, direction, bounds)
	}
	c.refreshZoomed()
	return c.commit()
}

func applyWheel(a *axis.Axis, pos geom.Location, direction float32, bounds geom.Rect) {
	var origin float32
	if a.Orientation == axis.Horizontal {
		if bounds.Width == 0 {
			return
		}
		origin = (pos.X - bounds.X) / bounds.Width
	} else {
		if bounds.Height == 0 {
			return
		}
		origin = 1 - (pos.Y-bounds.Y)/bounds.Height
	}
	origin = math32.Min(math32.Max(origin, 0), 1)
	factor := math32.Min(math32.Max(a.ZoomFactor, 0), 1)
	if factor == 0 {
		factor = 1
	}
	cumulative := math32.Max(1/factor+wheelZoomStep*direction, 1)
	cumulative = math32.Min(cumulative, maxWheelCumulative)
	if cumulative == 1 {
		a.ZoomFactor = 1
		a.ZoomPosition = 0
	} else {
		newFactor := 1 / cumulative
		// keep the value under the cursor fixed
		anchored := a.ZoomPosition + origin*a.ZoomFactor
		a.ZoomPosition = anchored - origin*newFactor
		a.ZoomFactor = newFactor
	}
	a.ClampZoom()
	a.ApplyZoom()
}

// Pan offsets every axis window by the pointer delta scaled to the
// axis pixel length and the current zoom factor, clamped per the zoom
// invariant.
func (c *Controller) Pan(delta geom.Location, bounds geom.Rect) bool {
	c.record()
	c.IsPanning = true
	for _, a := range c.Axes {
		if a.Orientation == axis.Horizontal {
			if bounds.Width == 0 {
				continue
			}
			a.ZoomPosition -= delta.X / bounds.Width * a.ZoomFactor
		} else {
			if bounds.Height == 0 {
				continue
			}
			a.ZoomPosition += delta.Y / bounds.Height * a.ZoomFactor
		}
		a.ClampZoom()
		a.ApplyZoom()
	}
	return c.commit()
}

// EndPan clears the panning flag at gesture end.
func (c *Controller) EndPan() { c.IsPanning = false }

// Pinch updates the live pinch transform from the current two-touch
// state. It returns the CSS transform applied to the series elements
// during the gesture, cheap and non-committal; the equivalent zoom
// commits once on [Controller.CommitPinch].
func (c *Controller) Pinch(bounds geom.Rect) string {
	if len(c.TouchStartList) < 2 || len(c.TouchMoveList) < 2 {
		return ""
	}
	s0, s1 := c.TouchStartList[0], c.TouchStartList[1]
	m0, m1 := c.TouchMoveList[0], c.TouchMoveList[1]
	scaleX := pinchScale(m1.X-m0.X, s1.X-s0.X)
	scaleY := pinchScale(m1.Y-m0.Y, s1.Y-s0.Y)
	tx := m0.X - s0.X*scaleX
	ty := m0.Y - s0.Y*scaleY
	// the pixel window of the original bounds the gesture exposes
	c.pinchRect = geom.Rect{
		X:      (bounds.X - tx) / scaleX,
		Y:      (bounds.Y - ty) / scaleY,
		Width:  bounds.Width / scaleX,
		Height: bounds.Height / scaleY,
	}
	c.pinching = true
	return "translate(" + pathdata.FormatCoord(tx) + "," + pathdata.FormatCoord(ty) +
		") scale(" + pathdata.FormatCoord(scaleX) + "," + pathdata.FormatCoord(scaleY) + ")"
}

func pinchScale(moveDist, startDist float32) float32 {
	moveDist = math32.Abs(moveDist)
	startDist = math32.Abs(startDist)
	if startDist == 0 || moveDist == 0 {
		return 1
	}
	return moveDist / startDist
}

// CommitPinch commits the settled pinch gesture through the same
// rect-to-bounds proportion as selection zoom.
func (c *Controller) CommitPinch(bounds geom.Rect) bool {
	if !c.pinching {
		return false
	}
	c.pinching = false
	rect := clampRect(c.pinchRect, bounds)
	c.TouchStartList = nil
	c.TouchMoveList = nil
	if rect.Width <= 0 || rect.Height <= 0 {
		return false
	}
	c.record()
	for _, a := range c.Axes {
		applySelection(a, rect, bounds)
	}
	c.refreshZoomed()
	return c.commit()
}

func clampRect(r, bounds geom.Rect) geom.Rect {
	x0 := math32.Max(r.X, bounds.X)
	y0 := math32.Max(r.Y, bounds.Y)
	x1 := math32.Min(r.Right(), bounds.Right())
	y1 := math32.Min(r.Bottom(), bounds.Bottom())
	return geom.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
