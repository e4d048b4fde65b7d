// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/pathdata"
	"github.com/chartex/chartex/series"
	"github.com/chewxy/math32"
)

// axisTooltipHeight and axisTooltipCharWidth size the crosshair's
// axis-edge value boxes.
const (
	axisTooltipHeight    = 20
	axisTooltipCharWidth = 7
	axisTooltipPad       = 10
)

// AxisTooltip is one axis-edge value box rendered with the crosshair.
type AxisTooltip struct {
	Axis *axis.Axis
	Text string
	Box  geom.Rect
}

// CrosshairRender is the drawable output of one crosshair update.
type CrosshairRender struct {
	// VerticalLine and HorizontalLine are path strings through the
	// anchor, spanning the clip rect.
	VerticalLine   string
	HorizontalLine string

	// Band is the category highlight band, when a category axis is
	// present.
	Band *geom.Rect

	Tooltips []AxisTooltip
}

// Crosshair tracks the crosshair lines and axis tooltips. It follows
// the shared visibility state shape: hidden until a qualifying move
// inside the clip rect, hidden again after a delay once the pointer
// leaves.
type Crosshair struct {
	// Snap anchors the crosshair to the nearest point symbol instead
	// of the literal pointer position.
	Snap bool

	Vis Visibility

	lastSeries int
	lastPoint  int
	hasLast    bool
}

// NewCrosshair returns a hidden crosshair.
func NewCrosshair() *Crosshair {
	return &Crosshair{lastSeries: -1, lastPoint: -1}
}

// Move updates the crosshair for a pointer position. It returns nil
// when the crosshair should not render: the pointer is outside the
// clip rect (a hide is then scheduled), a zoom or pan redraw is in
// progress, or a snapped move resolved to the same point as the
// previous call.
func (c *Crosshair) Move(pos geom.Location, clip geom.Rect, list []*series.Series,
	axes []*axis.Axis, avail geom.Size, touch, zoomRedraw bool) *CrosshairRender {
	if zoomRedraw {
		c.Vis.HideNow()
		return nil
	}
	if !clip.Contains(pos) {
		c.dropLast()
		if touch {
			c.Vis.HideAfter(TouchHideDelay)
		} else {
			c.Vis.HideAfter(MouseHideDelay)
		}
		return nil
	}
	anchor := pos
	if c.Snap {
		s, p := NearestVisiblePoint(pos, list, nil)
		if p == nil {
			c.dropLast()
			c.Vis.HideNow()
			return nil
		}
		if c.hasLast && c.lastSeries == s.Index && c.lastPoint == p.Index {
			return nil // same point, skip the redundant re-render
		}
		c.lastSeries, c.lastPoint, c.hasLast = s.Index, p.Index, true
		anchor = p.SymbolLocations[0]
	}
	c.Vis.Show()
	r := &CrosshairRender{
		VerticalLine:   linePath(geom.Loc(anchor.X, clip.Y), geom.Loc(anchor.X, clip.Bottom())),
		HorizontalLine: linePath(geom.Loc(clip.X, anchor.Y), geom.Loc(clip.Right(), anchor.Y)),
	}
	for _, a := range axes {
		if a == nil {
			continue
		}
		if a.Kind == axis.Category && a.Orientation == axis.Horizontal {
			r.Band = categoryBand(a, anchor, clip)
		}
		if a.CrosshairTooltip {
			r.Tooltips = append(r.Tooltips, axisTooltipFor(a, anchor, clip, avail))
		}
	}
	return r
}

// Leave schedules the hide for a pointer leaving the chart.
func (c *Crosshair) Leave(touch bool) {
	c.dropLast()
	if touch {
		c.Vis.HideAfter(TouchHideDelay)
	} else {
		c.Vis.HideAfter(MouseHideDelay)
	}
}

func (c *Crosshair) dropLast() {
	c.hasLast = false
	c.lastSeries, c.lastPoint = -1, -1
}

func linePath(a, b geom.Location) string {
	var p pathdata.Path
	p.Move(a)
	p.Line(b)
	return p.String()
}

// categoryBand computes the highlight band for the category under the
// anchor. When the category's half-width would overflow the clip rect,
// the overflow is redistributed: the width is clamped to the available
// span and the center shifts toward the interior by half the excess.
func categoryBand(a *axis.Axis, anchor geom.Location, clip geom.Rect) *geom.Rect {
	delta := a.VisibleRange.Delta()
	if delta <= 0 || a.Rect.Width <= 0 {
		return nil
	}
	unit := a.Rect.Width / delta
	val := math32.Floor(a.ValueByPoint(anchor.X))
	center := a.Rect.X + (val-a.VisibleRange.Min+0.5)*unit
	if a.Inverted {
		center = a.Rect.X + a.Rect.Width - (val-a.VisibleRange.Min+0.5)*unit
	}
	half := unit / 2
	left := center - half
	right := center + half
	if left < clip.X {
		excess := clip.X - left
		left = clip.X
		right = math32.Min(right+excess/2, clip.Right())
	}
	if right > clip.Right() {
		excess := right - clip.Right()
		right = clip.Right()
		left = math32.Max(left-excess/2, clip.X)
	}
	band := geom.Rect{X: left, Y: clip.Y, Width: right - left, Height: clip.Height}
	return &band
}

// axisTooltipFor formats the value under the anchor for one axis and
// sizes its edge box, clamped inside the available chart size.
func axisTooltipFor(a *axis.Axis, anchor geom.Location, clip geom.Rect, avail geom.Size) AxisTooltip {
	var val float32
	var box geom.Rect
	if a.Orientation == axis.Horizontal {
		val = a.ValueByPoint(anchor.X)
	} else {
		val = a.ValueByPoint(anchor.Y)
	}
	text := a.FormatValue(val)
	w := float32(len(text))*axisTooltipCharWidth + axisTooltipPad
	if a.Orientation == axis.Horizontal {
		box = geom.Rect{X: anchor.X - w/2, Y: clip.Bottom(), Width: w, Height: axisTooltipHeight}
	} else {
		box = geom.Rect{X: clip.X - w, Y: anchor.Y - axisTooltipHeight/2, Width: w, Height: axisTooltipHeight}
	}
	box.X = math32.Min(math32.Max(box.X, 0), avail.Width-box.Width)
	box.Y = math32.Min(math32.Max(box.Y, 0), avail.Height-box.Height)
	return AxisTooltip{Axis: a, Text: text, Box: box}
}
