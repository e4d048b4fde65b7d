// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"testing"
	"time"

	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/interact"
	"github.com/chartex/chartex/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noTimers(c *Chart) {
	sched := func(time.Duration, func()) func() { return func() {} }
	c.Crosshair.Vis.Schedule = sched
	c.Tooltip.Vis.Schedule = sched
	c.Trackball.Vis.Schedule = sched
}

func testChart(opts Options) *Chart {
	opts.Size = geom.Size{Width: 200, Height: 100}
	c := New(opts)
	noTimers(c)

	x := axis.New("x", axis.Linear, axis.Horizontal)
	x.ActualRange = axis.Range{Min: 0, Max: 10}
	x.VisibleRange = x.ActualRange
	y := axis.New("y", axis.Linear, axis.Vertical)
	y.ActualRange = axis.Range{Min: 0, Max: 10}
	y.VisibleRange = y.ActualRange
	c.AddAxis(x)
	c.AddAxis(y)

	s := series.New(series.RangeArea, 0)
	s.Name = "temps"
	s.Points = []series.Point{
		{XValue: 0, Low: 1, High: 5, Visible: true, Index: 0},
		{XValue: 5, Low: 2, High: 4, Visible: true, Index: 1},
		{XValue: 10, Low: 3, High: 6, Visible: true, Index: 2},
	}
	c.AddSeries(s, "x", "y")
	c.SetPlotRect(geom.Rect{X: 0, Y: 0, Width: 200, Height: 100})
	return c
}

func TestChartWiring(t *testing.T) {
	c := testChart(Options{ID: "c1"})
	s := c.Series[0]

	require.NotNil(t, s.XAxis)
	require.NotNil(t, s.YAxis)
	assert.Equal(t, "x", s.XAxis.Name)
	assert.Equal(t, c.PlotRect, s.ClipRect)
	assert.Equal(t, c.Zoom.Axes, c.Axes)

	// axes laid along the plot edges
	assert.Equal(t, float32(200), s.XAxis.Rect.Width)
	assert.Equal(t, float32(100), s.YAxis.Rect.Height)

	// default transform maps through the axes: x=5, high=5 lands at
	// the horizontal center, vertical midline
	loc := s.Transform(5, 5)
	assert.InDelta(t, 100, loc.X, 1e-3)
	assert.InDelta(t, 50, loc.Y, 1e-3)
}

func TestChartUnknownAxisDegrades(t *testing.T) {
	c := testChart(Options{})
	s := series.New(series.Bubble, 0)
	s.Points = []series.Point{{XValue: 1, YValue: 1, Size: 2, Visible: true}}
	c.AddSeries(s, "nope", "y")

	assert.Nil(t, s.XAxis)
	assert.NotPanics(t, func() { c.Render(1) })
}

func TestChartRender(t *testing.T) {
	c := testChart(Options{})
	out := c.Render(1)
	require.Len(t, out, 1)

	// at full progress the frame carries the built fill verbatim
	geo := series.Build(c.Series[0], series.BuildContext{ChartSize: c.Size})
	assert.Equal(t, geo.Fill, out[0].Fill.Path)
	assert.Equal(t, geo.Border, out[0].Border.Path)
	assert.False(t, c.NeedsRedraw)

	// hidden series render nothing
	c.Series[0].Visible = false
	assert.Empty(t, c.Render(1))
}

func TestChartMaxBubbleSize(t *testing.T) {
	c := testChart(Options{})
	b1 := series.New(series.Bubble, 0)
	b1.Points = []series.Point{{Size: 2, Visible: true}, {Size: -7, Visible: true}}
	b2 := series.New(series.Bubble, 0)
	b2.Points = []series.Point{{Size: 4, Visible: true}}
	c.AddSeries(b1, "x", "y")
	c.AddSeries(b2, "x", "y")

	assert.Equal(t, float32(7), c.maxBubbleSize())

	// hidden bubble series do not contribute
	b1.Visible = false
	assert.Equal(t, float32(4), c.maxBubbleSize())
}

func TestChartWheelZoom(t *testing.T) {
	c := testChart(Options{ID: "wheel"})
	c.Router.Dispatch("wheel", &interact.Event{
		Type: interact.MouseWheel, Pos: geom.Location{X: 100, Y: 50}, DeltaY: -3,
	})

	assert.True(t, c.NeedsRedraw)
	assert.True(t, c.ZoomRedrawActive())
	assert.InDelta(t, 0.8, c.Axes[0].ZoomFactor, 1e-5)

	// rendering clears the redraw flag; the host then lifts suppression
	c.Render(1)
	c.EndZoomRedraw()
	assert.False(t, c.NeedsRedraw)
	assert.False(t, c.ZoomRedrawActive())

	// wheel outside the plot is ignored
	before := c.Axes[0].ZoomFactor
	c.Router.Dispatch("wheel", &interact.Event{
		Type: interact.MouseWheel, Pos: geom.Location{X: 500, Y: 50}, DeltaY: -3,
	})
	assert.Equal(t, before, c.Axes[0].ZoomFactor)
}

func TestChartZoomRedrawSuppressesTooltip(t *testing.T) {
	c := testChart(Options{ID: "sup", EnableTooltip: true})
	var models []*interact.Model
	c.OnTooltip = func(m *interact.Model) { models = append(models, m) }

	c.Router.Dispatch("sup", &interact.Event{
		Type: interact.MouseWheel, Pos: geom.Location{X: 100, Y: 50}, DeltaY: -3,
	})
	c.Router.Dispatch("sup", &interact.Event{
		Type: interact.MouseMove, Pos: geom.Location{X: 100, Y: 50},
	})
	// suppressed while the zoomed geometry is still stale
	for _, m := range models {
		assert.Nil(t, m)
	}

	c.Render(1)
	c.EndZoomRedraw()
	models = nil
	c.Router.Dispatch("sup", &interact.Event{
		Type: interact.MouseMove, Pos: geom.Location{X: 100, Y: 50},
	})
	found := false
	for _, m := range models {
		if m != nil {
			found = true
		}
	}
	assert.True(t, found)
}

func TestChartSelectionDrag(t *testing.T) {
	c := testChart(Options{ID: "sel", EnableSelectionZoom: true})
	dispatch := func(typ interact.EventType, x, y float32) {
		c.Router.Dispatch("sel", &interact.Event{Type: typ, Pos: geom.Location{X: x, Y: y}})
	}

	dispatch(interact.MouseDown, 50, 25)
	dispatch(interact.MouseMove, 120, 60)
	assert.Equal(t, geom.Rect{X: 50, Y: 25, Width: 70, Height: 35}, c.Zoom.ZoomingRect)

	dispatch(interact.MouseUp, 150, 75)
	assert.True(t, c.NeedsRedraw)
	assert.True(t, c.Zoom.IsZoomed)
	assert.InDelta(t, 0.5, c.Axes[0].ZoomFactor, 1e-5)
	assert.InDelta(t, 0.25, c.Axes[0].ZoomPosition, 1e-5)

	// a second mouseUp without a down is inert
	c.NeedsRedraw = false
	dispatch(interact.MouseUp, 150, 75)
	assert.False(t, c.NeedsRedraw)
}

func TestChartPanDrag(t *testing.T) {
	c := testChart(Options{ID: "pan", EnablePan: true})
	c.Axes[0].ZoomFactor = 0.5
	c.Axes[0].ZoomPosition = 0.25
	c.Axes[0].ApplyZoom()

	dispatch := func(typ interact.EventType, x, y float32) {
		c.Router.Dispatch("pan", &interact.Event{Type: typ, Pos: geom.Location{X: x, Y: y}})
	}
	dispatch(interact.MouseDown, 100, 50)
	dispatch(interact.MouseMove, 60, 50)
	assert.True(t, c.Zoom.IsPanning)
	assert.InDelta(t, 0.35, c.Axes[0].ZoomPosition, 1e-5)

	dispatch(interact.MouseUp, 60, 50)
	assert.False(t, c.Zoom.IsPanning)
}

func TestChartStackTotal(t *testing.T) {
	c := testChart(Options{})
	a := series.New(series.RangeArea, 0)
	a.StackingGroup = "g"
	a.Points = []series.Point{{XValue: 1, YValue: 3, Visible: true}}
	b := series.New(series.RangeArea, 0)
	b.StackingGroup = "g"
	b.Points = []series.Point{{XValue: 1, YValue: 6.5, Visible: true}}
	c.AddSeries(a, "x", "y")
	c.AddSeries(b, "x", "y")

	total, ok := c.stackTotal(a, &a.Points[0])
	assert.True(t, ok)
	assert.InDelta(t, 9.5, total, 1e-5)

	// non-stacking series have no total
	_, ok = c.stackTotal(c.Series[0], &c.Series[0].Points[0])
	assert.False(t, ok)
}

func TestChartCloseDetaches(t *testing.T) {
	c := testChart(Options{ID: "gone", EnableTooltip: true})
	c.Close()

	called := false
	c.OnTooltip = func(*interact.Model) { called = true }
	c.Router.Dispatch("gone", &interact.Event{
		Type: interact.MouseMove, Pos: geom.Location{X: 100, Y: 50},
	})
	assert.False(t, called)

	// closing twice is fine
	assert.NotPanics(t, c.Close)
}

// hideTimer captures scheduled hide callbacks so tests fire them
// deliberately; superseded callbacks are disarmed by the visibility
// state itself.
type hideTimer struct{ fns []func() }

func (h *hideTimer) schedule(d time.Duration, f func()) func() {
	h.fns = append(h.fns, f)
	return func() {}
}

func (h *hideTimer) fire() {
	for _, f := range h.fns {
		f()
	}
	h.fns = nil
}

func TestChartTimedHideReachesHost(t *testing.T) {
	c := testChart(Options{
		ID:              "timed",
		EnableTooltip:   true,
		EnableCrosshair: true,
		EnableTrackball: true,
	})
	ht := &hideTimer{}
	c.Tooltip.Vis.Schedule = ht.schedule
	c.Crosshair.Vis.Schedule = ht.schedule
	c.Trackball.Vis.Schedule = ht.schedule
	c.Render(1)

	var tooltips []*interact.Model
	var crosshairs []*interact.CrosshairRender
	var track []bool
	c.OnTooltip = func(m *interact.Model) { tooltips = append(tooltips, m) }
	c.OnCrosshair = func(r *interact.CrosshairRender) { crosshairs = append(crosshairs, r) }
	c.OnTrackball = func(active bool) { track = append(track, active) }

	c.Router.Dispatch("timed", &interact.Event{
		Type: interact.MouseMove, Pos: geom.Location{X: 100, Y: 50},
	})
	require.NotEmpty(t, tooltips)
	assert.NotNil(t, tooltips[len(tooltips)-1])
	require.NotEmpty(t, crosshairs)
	assert.NotNil(t, crosshairs[len(crosshairs)-1])
	require.NotEmpty(t, track)
	assert.True(t, track[len(track)-1])

	// leaving only schedules the hides; nothing is published yet
	c.Router.Dispatch("timed", &interact.Event{Type: interact.MouseLeave})
	assert.NotNil(t, tooltips[len(tooltips)-1])
	require.NotEmpty(t, ht.fns)

	// the timed hide itself must reach the host, not wait for the
	// next pointer event
	ht.fire()
	assert.Nil(t, tooltips[len(tooltips)-1])
	assert.Nil(t, crosshairs[len(crosshairs)-1])
	assert.False(t, track[len(track)-1])
	assert.False(t, c.Tooltip.Vis.Visible())
}

func TestChartsOnSharedRouterAreIndependent(t *testing.T) {
	shared := interact.NewRouter()
	a := testChart(Options{ID: "a"})
	b := testChart(Options{ID: "b"})
	a.Bind(shared)
	b.Bind(shared)
	noTimers(a)
	noTimers(b)

	shared.Dispatch("a", &interact.Event{
		Type: interact.MouseWheel, Pos: geom.Location{X: 100, Y: 50}, DeltaY: -3,
	})
	assert.True(t, a.Zoom.IsZoomed)
	assert.False(t, b.Zoom.IsZoomed)
}
