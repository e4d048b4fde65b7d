// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart is the per-chart instance context. A Chart owns its
// axes, series, pointer router bucket, interaction state machines, and
// zoom controller; nothing about a chart lives in package-level state,
// so independent charts never observe each other's events or zoom.
package chart

import (
	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/interact"
	"github.com/chartex/chartex/series"
	"github.com/chartex/chartex/zoom"
	"github.com/chewxy/math32"
)

// Options configures a chart's interaction surface at construction.
type Options struct {
	ID   string
	Size geom.Size

	EnableCrosshair bool
	EnableTooltip   bool
	SharedTooltip   bool
	EnableTrackball bool

	EnableWheelZoom     bool
	EnableSelectionZoom bool
	EnablePan           bool
}

// Defaults returns the options a plain interactive chart starts from.
func (o *Options) Defaults() {
	if o.ID == "" {
		o.ID = interact.DefaultChartID
	}
	o.EnableTooltip = true
	o.EnableWheelZoom = true
}

// SeriesRender is the drawable output of one series for one animation
// frame.
type SeriesRender struct {
	Series  *series.Series
	Fill    series.Frame
	Border  series.Frame
	Markers []series.MarkerDesc
}

// Chart is one chart instance: the owner of every piece of mutable
// per-chart state.
type Chart struct {
	ID   string
	Size geom.Size

	// PlotRect is the series area. There is no measurement pass; the
	// host sets it (SetPlotRect) and the chart propagates it to axes
	// and series clip rects.
	PlotRect geom.Rect

	Axes   []*axis.Axis
	Series []*series.Series

	Router    *interact.Router
	Crosshair *interact.Crosshair
	Tooltip   *interact.Tooltip
	Trackball *interact.Trackball
	Zoom      *zoom.Controller

	// OnCrosshair, OnTooltip and OnTrackball publish interaction
	// updates to the host. A nil render/model means hide. Timed hides
	// deliver on the hide scheduler's goroutine, so implementations
	// must tolerate concurrent invocation. Set them before dispatching
	// events and leave them in place.
	OnCrosshair func(*interact.CrosshairRender)
	OnTooltip   func(*interact.Model)
	OnTrackball func(active bool)

	// NeedsRedraw is set whenever a committed zoom or pan invalidates
	// the series geometry; the host clears it by rendering.
	NeedsRedraw bool

	opts       Options
	zoomRedraw bool
	dragging   bool
	dragStart  geom.Location
	dragLast   geom.Location
	unregister []func()
}

// New builds a chart with its own router. Use Bind to attach to a
// shared router instead.
func New(opts Options) *Chart {
	if opts.ID == "" {
		opts.ID = interact.DefaultChartID
	}
	c := &Chart{
		ID:        opts.ID,
		Size:      opts.Size,
		Router:    interact.NewRouter(),
		Crosshair: interact.NewCrosshair(),
		Tooltip:   interact.NewTooltip(),
		Trackball: interact.NewTrackball(),
		Zoom:      zoom.NewController(),
		opts:      opts,
	}
	c.Tooltip.Shared = opts.SharedTooltip
	c.Tooltip.StackTotal = c.stackTotal

	// timed hides are observable transitions: when a machine's hide
	// timer fires the host hears about it, not only on the next
	// pointer event; these run on the scheduler's goroutine
	c.Tooltip.Vis.OnHide = func() {
		if c.OnTooltip != nil {
			c.OnTooltip(nil)
		}
	}
	c.Crosshair.Vis.OnHide = func() {
		if c.OnCrosshair != nil {
			c.OnCrosshair(nil)
		}
	}
	c.Trackball.Vis.OnHide = func() {
		if c.OnTrackball != nil {
			c.OnTrackball(false)
		}
	}
	c.wire()
	return c
}

// Bind re-targets the chart at a shared router, unregistering from the
// previous one first.
func (c *Chart) Bind(r *interact.Router) {
	c.Close()
	c.Router = r
	c.wire()
}

// Close detaches the chart from its router and cancels pending hide
// timers. Closing twice is harmless.
func (c *Chart) Close() {
	for _, un := range c.unregister {
		un()
	}
	c.unregister = nil
	c.Crosshair.Vis.CancelPending()
	c.Tooltip.Vis.CancelPending()
	c.Trackball.Vis.CancelPending()
}

// AddAxis registers an axis and adds it to the zoom controller.
func (c *Chart) AddAxis(a *axis.Axis) {
	c.Axes = append(c.Axes, a)
	c.Zoom.Axes = append(c.Zoom.Axes, a)
}

// AddSeries appends a series, assigns its index, and resolves its axis
// references by name. Unknown axis names leave the reference nil and
// the series degrades to empty geometry.
func (c *Chart) AddSeries(s *series.Series, xAxisName, yAxisName string) {
	s.Index = len(c.Series)
	s.XAxis = c.axisByName(xAxisName)
	s.YAxis = c.axisByName(yAxisName)
	if s.Transform == nil {
		s.Transform = func(xv, yv float32) geom.Location {
			return axis.GetPoint(xv, yv, s.XAxis, s.YAxis, s.Transposed)
		}
	}
	c.Series = append(c.Series, s)
}

func (c *Chart) axisByName(name string) *axis.Axis {
	for _, a := range c.Axes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// SetPlotRect sets the series area and lays the axes along its edges.
func (c *Chart) SetPlotRect(r geom.Rect) {
	c.PlotRect = r
	for _, a := range c.Axes {
		if a.Orientation == axis.Horizontal {
			a.Rect = geom.Rect{X: r.X, Y: r.Bottom(), Width: r.Width}
		} else {
			a.Rect = geom.Rect{X: r.X, Y: r.Y, Height: r.Height}
		}
	}
	for _, s := range c.Series {
		s.ClipRect = r
	}
}

// Render builds every visible series' geometry and advances its
// animation to the given progress. Rendering clears the redraw flag.
func (c *Chart) Render(progress float32) []SeriesRender {
	ctx := series.BuildContext{
		ChartSize:     c.Size,
		MaxBubbleSize: c.maxBubbleSize(),
	}
	out := make([]SeriesRender, 0, len(c.Series))
	for _, s := range c.Series {
		if !s.Visible {
			continue
		}
		geo := series.Build(s, ctx)
		r := SeriesRender{
			Series:  s,
			Fill:    s.AnimatePath(series.RoleArea, geo.Fill, progress),
			Markers: geo.Markers,
		}
		if geo.Border != "" {
			r.Border = s.AnimatePath(series.RoleBorder, geo.Border, progress)
		}
		out = append(out, r)
	}
	c.NeedsRedraw = false
	return out
}

// maxBubbleSize scans the bubble series for the largest absolute point
// size so radii normalize chart-wide, not per series.
func (c *Chart) maxBubbleSize() float32 {
	var max float32
	for _, s := range c.Series {
		if s.Type != series.Bubble || !s.Visible {
			continue
		}
		for i := range s.Points {
			max = math32.Max(max, math32.Abs(s.Points[i].Size))
		}
	}
	return max
}

// stackTotal sums the y values at the point's x across the visible
// series of the same stacking group.
func (c *Chart) stackTotal(s *series.Series, p *series.Point) (float32, bool) {
	if s.StackingGroup == "" {
		return 0, false
	}
	var total float32
	found := false
	for _, other := range c.Series {
		if !other.Visible || other.StackingGroup != s.StackingGroup {
			continue
		}
		if op := interact.PointAtX(other, p.XValue); op != nil {
			total += op.YValue
			found = true
		}
	}
	return total, found
}

// ZoomRedrawActive reports whether interaction overlays are suppressed
// while zoomed geometry rebuilds.
func (c *Chart) ZoomRedrawActive() bool { return c.zoomRedraw }

// EndZoomRedraw lifts the interaction suppression after the host has
// re-rendered the zoomed geometry.
func (c *Chart) EndZoomRedraw() { c.zoomRedraw = false }

func (c *Chart) wire() {
	reg := func(typ interact.EventType, h interact.Handler) {
		c.unregister = append(c.unregister, c.Router.Register(c.ID, typ, h))
	}
	reg(interact.MouseMove, c.onMove)
	reg(interact.MouseLeave, c.onLeave)
	reg(interact.MouseDown, c.onDown)
	reg(interact.MouseUp, c.onUp)
	if c.opts.EnableWheelZoom {
		reg(interact.MouseWheel, c.onWheel)
	}
	reg(interact.Click, c.onClick)
}

func (c *Chart) onMove(ev *interact.Event) {
	if c.dragging {
		c.onDrag(ev)
		return
	}
	avail := c.Size
	if c.opts.EnableCrosshair {
		r := c.Crosshair.Move(ev.Pos, c.PlotRect, c.Series, c.Axes, avail, ev.Touch, c.zoomRedraw)
		if c.OnCrosshair != nil {
			c.OnCrosshair(r)
		}
	}
	if c.opts.EnableTooltip {
		m := c.Tooltip.Move(ev.Pos, c.PlotRect, c.Series, avail, ev.Touch, c.zoomRedraw)
		if c.OnTooltip != nil && (m != nil || !c.Tooltip.Vis.Visible()) {
			c.OnTooltip(m)
		}
	}
	if c.opts.EnableTrackball {
		active := c.Trackball.Move(ev.Pos, c.PlotRect, c.Series, ev.Touch, c.zoomRedraw)
		if c.OnTrackball != nil {
			c.OnTrackball(active)
		}
	}
}

func (c *Chart) onLeave(ev *interact.Event) {
	c.Crosshair.Leave(ev.Touch)
	c.Tooltip.Leave(ev.Touch)
	c.Trackball.Leave(ev.Touch)
	c.dragging = false
	c.Zoom.EndPan()
}

func (c *Chart) onDown(ev *interact.Event) {
	if !c.opts.EnableSelectionZoom && !c.opts.EnablePan {
		return
	}
	if !c.PlotRect.Contains(ev.Pos) {
		return
	}
	c.dragging = true
	c.dragStart = ev.Pos
	c.dragLast = ev.Pos
}

func (c *Chart) onDrag(ev *interact.Event) {
	c.zoomRedraw = true
	if c.opts.EnableSelectionZoom {
		c.Zoom.ZoomingRect = dragRect(c.dragStart, ev.Pos)
	} else if c.opts.EnablePan {
		delta := ev.Pos.Sub(c.dragLast)
		if c.Zoom.Pan(delta, c.PlotRect) {
			c.NeedsRedraw = true
		}
	}
	c.dragLast = ev.Pos
}

func (c *Chart) onUp(ev *interact.Event) {
	if !c.dragging {
		return
	}
	c.dragging = false
	if c.opts.EnableSelectionZoom {
		if c.Zoom.SelectionZoom(dragRect(c.dragStart, ev.Pos), c.PlotRect) {
			c.NeedsRedraw = true
		}
	}
	c.Zoom.EndPan()
}

func (c *Chart) onWheel(ev *interact.Event) {
	if !c.PlotRect.Contains(ev.Pos) {
		return
	}
	c.zoomRedraw = true
	if c.Zoom.WheelZoom(ev.Pos, ev.DeltaY, ev.Detail, c.PlotRect) {
		c.NeedsRedraw = true
	}
}

func (c *Chart) onClick(ev *interact.Event) {
	if c.opts.EnableTooltip && interact.RegionHitAny(ev.Pos, c.Series) == nil {
		// Dismiss publishes the hide through the Vis.OnHide wiring
		c.Tooltip.Dismiss()
	}
}

func dragRect(a, b geom.Location) geom.Rect {
	x0 := math32.Min(a.X, b.X)
	y0 := math32.Min(a.Y, b.Y)
	return geom.Rect{X: x0, Y: y0, Width: math32.Abs(b.X - a.X), Height: math32.Abs(b.Y - a.Y)}
}
