// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/chart"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/interact"
	"github.com/chartex/chartex/series"
	"github.com/chartex/chartex/theme"
	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/pelletier/go-toml/v2"
)

// dataFile is the on-disk chart description.
type dataFile struct {
	Title  string       `toml:"title"`
	XRange [2]float32   `toml:"x_range"`
	YRange [2]float32   `toml:"y_range"`
	Series []dataSeries `toml:"series"`
}

type dataSeries struct {
	Name   string      `toml:"name"`
	Type   string      `toml:"type"`
	Style  string      `toml:"style"` // inline CSS overrides
	Points []dataPoint `toml:"points"`
}

type dataPoint struct {
	X    float32 `toml:"x"`
	Y    float32 `toml:"y"`
	Low  float32 `toml:"low"`
	High float32 `toml:"high"`
	Size float32 `toml:"size"`
}

type server struct {
	mu       sync.Mutex
	chart    *chart.Chart
	theme    theme.Theme
	dataPath string
	upgrader websocket.Upgrader

	// sink is the active websocket's update writer. Chart callbacks
	// fire both from event dispatch and from hide timers, so delivery
	// serializes through push under its own lock.
	sinkMu sync.Mutex
	sink   func(updateMsg)
}

func (s *server) push(u updateMsg) {
	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	if s.sink != nil {
		s.sink(u)
	}
}

func newServer(dataPath, themePath string) (*server, error) {
	th := theme.Default()
	if themePath != "" {
		loaded, err := theme.Load(themePath)
		if err != nil {
			return nil, err
		}
		th = loaded
	}
	s := &server{theme: th, dataPath: dataPath}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload rebuilds the chart from the data file. The previous chart is
// detached from its router so its interaction state dies with it.
func (s *server) reload() error {
	raw, err := os.ReadFile(s.dataPath)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	var df dataFile
	if err := toml.Unmarshal(raw, &df); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	c, err := buildChart(df, s.theme)
	if err != nil {
		return err
	}
	// wired once per chart, before installation: the closures must
	// stay in place because hide timers invoke them off the dispatch
	// goroutine
	c.OnTooltip = func(m *interact.Model) { s.push(updateMsg{Tooltip: m}) }
	c.OnCrosshair = func(r *interact.CrosshairRender) { s.push(updateMsg{Crosshair: r}) }
	s.mu.Lock()
	if s.chart != nil {
		s.chart.Close()
	}
	s.chart = c
	s.mu.Unlock()
	return nil
}

func (s *server) watch(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if err := s.reload(); err != nil {
					slog.Error("reload failed", "file", ev.Name, "err", err)
					continue
				}
				slog.Info("data reloaded", "file", ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("watch error", "err", err)
		}
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// renderPayload is the JSON shape of one rendered frame.
type renderPayload struct {
	Series []seriesPayload `json:"series"`
}

type seriesPayload struct {
	Name    string          `json:"name"`
	Fill    string          `json:"fill"`
	Border  string          `json:"border,omitempty"`
	Clip    *geom.Rect      `json:"clip,omitempty"`
	Style   series.Style    `json:"style"`
	Markers []markerPayload `json:"markers,omitempty"`
}

type markerPayload struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Radius float32 `json:"radius"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	frames := s.chart.Render(1)
	s.chart.EndZoomRedraw()
	s.mu.Unlock()

	var payload renderPayload
	for _, f := range frames {
		sp := seriesPayload{
			Name:   f.Series.Name,
			Fill:   f.Fill.Path,
			Border: f.Border.Path,
			Clip:   f.Fill.Clip,
			Style:  f.Series.Style,
		}
		for _, m := range f.Markers {
			sp.Markers = append(sp.Markers, markerPayload{X: m.Center.X, Y: m.Center.Y, Radius: m.Radius})
		}
		payload.Series = append(payload.Series, sp)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("render encode failed", "err", err)
	}
}

// pointerMsg is one browser pointer event over the websocket.
type pointerMsg struct {
	Type   string  `json:"type"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	DeltaY float32 `json:"deltaY"`
	Detail int     `json:"detail"`
	Touch  bool    `json:"touch"`
}

// updateMsg pushes interaction state back to the page.
type updateMsg struct {
	Tooltip   *interact.Model           `json:"tooltip,omitempty"`
	Crosshair *interact.CrosshairRender `json:"crosshair,omitempty"`
	Redraw    bool                      `json:"redraw,omitempty"`
}

var eventTypes = map[string]interact.EventType{
	"click":      interact.Click,
	"mousemove":  interact.MouseMove,
	"mousedown":  interact.MouseDown,
	"mouseup":    interact.MouseUp,
	"mousewheel": interact.MouseWheel,
	"mouseleave": interact.MouseLeave,
}

func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	slog.Info("pointer bridge connected", "remote", r.RemoteAddr)

	s.sinkMu.Lock()
	s.sink = func(u updateMsg) {
		if err := conn.WriteJSON(u); err != nil {
			slog.Error("pointer bridge write failed", "err", err)
		}
	}
	s.sinkMu.Unlock()
	defer func() {
		s.sinkMu.Lock()
		s.sink = nil
		s.sinkMu.Unlock()
	}()

	for {
		var msg pointerMsg
		if err := conn.ReadJSON(&msg); err != nil {
			slog.Info("pointer bridge closed", "remote", r.RemoteAddr, "err", err)
			return
		}
		typ, ok := eventTypes[msg.Type]
		if !ok {
			continue
		}

		s.mu.Lock()
		c := s.chart
		c.Router.Dispatch(c.ID, &interact.Event{
			Type:   typ,
			Pos:    geom.Location{X: msg.X, Y: msg.Y},
			DeltaY: msg.DeltaY,
			Detail: msg.Detail,
			Touch:  msg.Touch,
		})
		redraw := c.NeedsRedraw
		s.mu.Unlock()

		if redraw {
			s.push(updateMsg{Redraw: true})
		}
	}
}

func buildChart(df dataFile, th theme.Theme) (*chart.Chart, error) {
	c := chart.New(chart.Options{
		ID:              "demo",
		Size:            geom.Size{Width: 800, Height: 450},
		EnableCrosshair: true,
		EnableTooltip:   true,
		EnableWheelZoom: true,
	})

	c.AddAxis(newAxis("x", axis.Horizontal, df.XRange))
	c.AddAxis(newAxis("y", axis.Vertical, df.YRange))

	for i, ds := range df.Series {
		typ, err := seriesType(ds.Type)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", ds.Name, err)
		}
		sr := series.New(typ, i)
		sr.Name = ds.Name
		sr.Style = theme.ApplyOverrides(th.StyleFor(ds.Name, i), ds.Style)
		sr.Marker = series.Marker{Visible: true, Width: 8, Height: 8}
		for j, p := range ds.Points {
			sr.Points = append(sr.Points, series.Point{
				XValue: p.X, YValue: p.Y,
				Low: p.Low, High: p.High, Size: p.Size,
				Visible: true, Index: j,
			})
		}
		c.AddSeries(sr, "x", "y")
	}

	c.SetPlotRect(geom.Rect{X: 40, Y: 10, Width: 750, Height: 400})
	return c, nil
}

func newAxis(name string, orient axis.Orientation, r [2]float32) *axis.Axis {
	a := axis.New(name, axis.Linear, orient)
	if r[1] <= r[0] {
		r = [2]float32{0, 10}
	}
	a.ActualRange = axis.Range{Min: r[0], Max: r[1]}
	a.VisibleRange = a.ActualRange
	return a
}

func seriesType(name string) (series.Type, error) {
	switch name {
	case "rangearea", "":
		return series.RangeArea, nil
	case "splinerangearea":
		return series.SplineRangeArea, nil
	case "bubble":
		return series.Bubble, nil
	}
	return 0, fmt.Errorf("unknown series type %q", name)
}
