// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"strconv"
	"strings"

	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/series"
	"github.com/chewxy/math32"
)

const (
	tooltipLineHeight = 16
	tooltipCharWidth  = 7
	tooltipPad        = 8
)

// Formatter lets callers veto or rewrite a tooltip line. Returning
// ok=false suppresses the line entirely; an empty text with ok=true
// keeps the default. A panicking formatter is treated as "use the
// default text".
type Formatter func(s *series.Series, p *series.Point, text string) (out string, ok bool)

// Model is the resolved tooltip content and placement for one update.
type Model struct {
	Header string
	Lines  []string
	Anchor geom.Location
	Box    geom.Rect
}

// Tooltip is the tooltip state machine: hidden until a move resolves a
// point under (or near) the pointer, hidden again after a
// modality-dependent delay when the pointer leaves or the data
// disappears.
type Tooltip struct {
	// Shared groups one line per series at the common x value instead
	// of a single point.
	Shared bool

	// ShowNearest resolves the nearest point by pixel distance when no
	// region lies directly under the pointer.
	ShowNearest bool

	// Header is the header template; empty uses the series name.
	Header string

	// Format overrides the per-series default content template.
	Format string

	// UserFormatter can veto or rewrite content per line.
	UserFormatter Formatter

	// StackTotal supplies the running stack sum for a point of a
	// stacking series; nil disables the appended total line.
	StackTotal func(s *series.Series, p *series.Point) (float32, bool)

	Vis Visibility

	lastSeries int
	lastPoint  int
	hasLast    bool
}

// NewTooltip returns a hidden tooltip.
func NewTooltip() *Tooltip {
	return &Tooltip{ShowNearest: true, lastSeries: -1, lastPoint: -1}
}

// Move updates the tooltip for a pointer position. Nil means no
// re-render: pointer out of bounds (hide scheduled), a zoom gesture in
// progress, nothing resolved, or the same point as the previous call.
func (t *Tooltip) Move(pos geom.Location, clip geom.Rect, list []*series.Series,
	avail geom.Size, touch, zoomRedraw bool) *Model {
	if zoomRedraw {
		t.Vis.HideNow()
		return nil
	}
	if !clip.Contains(pos) {
		t.Leave(touch)
		return nil
	}
	s, p := t.resolve(pos, list)
	if p == nil {
		t.Leave(touch)
		return nil
	}
	if t.hasLast && t.lastSeries == s.Index && t.lastPoint == p.Index {
		return nil
	}
	t.lastSeries, t.lastPoint, t.hasLast = s.Index, p.Index, true
	t.Vis.Show()
	if t.Shared {
		xval := p.XValue
		return t.sharedModel(xval, list, p, avail)
	}
	return t.pointModel(s, p, avail)
}

// Dismiss hides the tooltip immediately; click-mode dismissal.
func (t *Tooltip) Dismiss() {
	t.dropLast()
	t.Vis.HideNow()
}

// Leave schedules the modality-appropriate hide.
func (t *Tooltip) Leave(touch bool) {
	t.dropLast()
	if touch {
		t.Vis.HideAfter(TouchHideDelay)
	} else {
		t.Vis.HideAfter(MouseHideDelay)
	}
}

func (t *Tooltip) dropLast() {
	t.hasLast = false
	t.lastSeries, t.lastPoint = -1, -1
}

func (t *Tooltip) resolve(pos geom.Location, list []*series.Series) (*series.Series, *series.Point) {
	for _, s := range list {
		if s == nil || !s.Visible || !s.EnableTooltip {
			continue
		}
		if p := RegionHit(pos, s); p != nil {
			return s, p
		}
	}
	if t.ShowNearest {
		return NearestVisiblePoint(pos, list, nil)
	}
	return nil, nil
}

func (t *Tooltip) pointModel(s *series.Series, p *series.Point, avail geom.Size) *Model {
	line, ok := t.lineFor(s, p)
	if !ok {
		return nil
	}
	m := &Model{
		Header: t.headerFor(s, p),
		Lines:  []string{line},
	}
	if len(p.SymbolLocations) > 0 {
		m.Anchor = p.SymbolLocations[0]
	}
	m.Box = tooltipBox(m, avail)
	return m
}

func (t *Tooltip) sharedModel(xval float32, list []*series.Series, hit *series.Point, avail geom.Size) *Model {
	m := &Model{}
	for _, s := range list {
		if s == nil || !s.Visible || !s.EnableTooltip {
			continue
		}
		p := PointAtX(s, xval)
		if p == nil {
			continue
		}
		if m.Header == "" {
			m.Header = t.headerFor(s, p)
		}
		if line, ok := t.lineFor(s, p); ok {
			m.Lines = append(m.Lines, line)
		}
	}
	if len(m.Lines) == 0 {
		return nil
	}
	if len(hit.SymbolLocations) > 0 {
		m.Anchor = hit.SymbolLocations[0]
	}
	m.Box = tooltipBox(m, avail)
	return m
}

// headerFor renders the header template, defaulting to the series
// name.
func (t *Tooltip) headerFor(s *series.Series, p *series.Point) string {
	if t.Header == "" {
		return s.Name
	}
	return substitute(t.Header, s, p)
}

// lineFor renders one content line: the explicit template when set,
// otherwise the per-series-type default, with the stacking total and
// the user formatter applied on top.
func (t *Tooltip) lineFor(s *series.Series, p *series.Point) (string, bool) {
	format := t.Format
	if format == "" {
		format = s.TooltipFormat
	}
	explicit := format != ""
	if !explicit {
		format = defaultFormat(s.Type)
	}
	text := substitute(format, s, p)
	if !explicit && s.StackingGroup != "" && t.StackTotal != nil {
		if total, ok := t.StackTotal(s, p); ok {
			text += " Total : " + formatNumber(total)
		}
	}
	return t.applyFormatter(s, p, text)
}

// applyFormatter runs the user formatter, swallowing panics and
// preserving the default text when it misbehaves.
func (t *Tooltip) applyFormatter(s *series.Series, p *series.Point, text string) (out string, ok bool) {
	out, ok = text, true
	if t.UserFormatter == nil {
		return out, ok
	}
	defer func() {
		if recover() != nil {
			out, ok = text, true
		}
	}()
	res, keep := t.UserFormatter(s, p, text)
	if !keep {
		return text, false
	}
	if res != "" {
		return res, true
	}
	return text, true
}

// defaultFormat picks the content template by series type: range
// families show high/low, bubbles include size, everything else the y
// value.
func defaultFormat(typ series.Type) string {
	switch {
	case typ.IsRange():
		return "${point.x} : ${point.high} : ${point.low}"
	case typ == series.Bubble:
		return "${point.x} : ${point.y} Size : ${point.size}"
	default:
		return "${point.x} : ${point.y}"
	}
}

// substitute performs direct string replacement of the
// ${point.*}/${series.*} placeholders; no templating engine.
func substitute(format string, s *series.Series, p *series.Point) string {
	r := strings.NewReplacer(
		"${point.x}", formatAxisValue(s.XAxis, p.XValue),
		"${point.y}", formatAxisValue(s.YAxis, p.YValue),
		"${point.low}", formatAxisValue(s.YAxis, p.Low),
		"${point.high}", formatAxisValue(s.YAxis, p.High),
		"${point.size}", formatNumber(p.Size),
		"${series.name}", s.Name,
		"${series.type}", s.Type.String(),
	)
	return r.Replace(format)
}

// formatAxisValue formats a point field with axis awareness: category
// label lookup, the axis {value} pattern, else the default numeric
// format.
func formatAxisValue(a *axis.Axis, v float32) string {
	if a != nil {
		switch {
		case a.Kind == axis.Category, a.Kind == axis.DateTime:
			return a.FormatValue(v)
		case strings.Contains(a.LabelFormat, "{value}"):
			return strings.ReplaceAll(a.LabelFormat, "{value}", formatNumber(v))
		}
	}
	return formatNumber(v)
}

// formatNumber renders whole values bare; fractional values format to
// two decimals, trimming to one when the second decimal digit is zero.
func formatNumber(v float32) string {
	if v == math32.Trunc(v) {
		return strconv.FormatFloat(float64(v), 'f', 0, 32)
	}
	s := strconv.FormatFloat(float64(v), 'f', 2, 32)
	if strings.HasSuffix(s, "0") {
		s = strconv.FormatFloat(float64(v), 'f', 1, 32)
	}
	return s
}

// tooltipBox sizes the box from the longest line and clamps it inside
// the available chart size, above the anchor when it fits.
func tooltipBox(m *Model, avail geom.Size) geom.Rect {
	longest := len(m.Header)
	for _, l := range m.Lines {
		if len(l) > longest {
			longest = len(l)
		}
	}
	lines := len(m.Lines)
	if m.Header != "" {
		lines++
	}
	w := float32(longest)*tooltipCharWidth + 2*tooltipPad
	h := float32(lines)*tooltipLineHeight + 2*tooltipPad
	box := geom.Rect{X: m.Anchor.X - w/2, Y: m.Anchor.Y - h - tooltipPad, Width: w, Height: h}
	box.X = math32.Min(math32.Max(box.X, 0), math32.Max(avail.Width-w, 0))
	box.Y = math32.Min(math32.Max(box.Y, 0), math32.Max(avail.Height-h, 0))
	return box
}
