// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"github.com/chartex/chartex/axis"
	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/series"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// trackballGrowSeconds is the duration of one marker grow or shrink
// transition.
const trackballGrowSeconds = 0.15

// TrackMarker is one trackball marker: the highlighted point of one
// eligible series.
type TrackMarker struct {
	SeriesIndex int
	PointIndex  int
	Center      geom.Location
	Radius      float32
}

type trackAnim struct {
	marker TrackMarker
	tween  *gween.Tween
	gone   bool // shrinking toward removal
}

// Trackball highlights the point at the common x value nearest the
// pointer on every eligible series, one marker per series. Markers
// grow in and shrink out through per-frame radius tweens instead of
// appearing instantly; the animation loop self-terminates when no
// marker is mid-transition.
type Trackball struct {
	Vis Visibility

	// MarkerRadius is the rest radius of a shown marker.
	MarkerRadius float32

	anims []*trackAnim
	lastX float32
	has   bool
}

// NewTrackball returns a hidden trackball.
func NewTrackball() *Trackball {
	return &Trackball{MarkerRadius: 8}
}

// Move retargets the trackball markers for a pointer position. Series
// without a sample at the resolved common x contribute no marker.
// Returns false when nothing resolved (and schedules the hide).
func (t *Trackball) Move(pos geom.Location, clip geom.Rect, list []*series.Series,
	touch, zoomRedraw bool) bool {
	if zoomRedraw {
		t.Vis.HideNow()
		t.shrinkAll()
		return false
	}
	if !clip.Contains(pos) {
		t.Leave(touch)
		return false
	}
	xAxis := firstXAxis(list)
	if xAxis == nil {
		return false
	}
	xval, ok := ClosestCommonX(list, xAxis.ValueByPoint(pos.X))
	if !ok {
		t.Leave(touch)
		return false
	}
	if t.has && t.lastX == xval {
		return true // same column, keep the current markers
	}
	t.lastX, t.has = xval, true
	t.Vis.Show()
	t.retarget(xval, list)
	return true
}

// Leave schedules the hide and shrinks all markers out.
func (t *Trackball) Leave(touch bool) {
	t.has = false
	if touch {
		t.Vis.HideAfter(TouchHideDelay)
	} else {
		t.Vis.HideAfter(MouseHideDelay)
	}
	t.shrinkAll()
}

func (t *Trackball) retarget(xval float32, list []*series.Series) {
	seen := map[int]bool{}
	for _, s := range list {
		if s == nil || !s.Visible || !s.EnableTooltip || s.Type == series.Bubble {
			continue
		}
		p := PointAtX(s, xval)
		if p == nil || len(p.SymbolLocations) == 0 {
			continue
		}
		seen[s.Index] = true
		m := TrackMarker{
			SeriesIndex: s.Index,
			PointIndex:  p.Index,
			Center:      p.SymbolLocations[0],
			Radius:      0,
		}
		if a := t.animFor(s.Index); a != nil {
			// retarget in place, growing from the current radius
			a.marker.PointIndex = p.Index
			a.marker.Center = m.Center
			a.tween = gween.New(a.marker.Radius, t.MarkerRadius, trackballGrowSeconds, ease.OutQuad)
			a.gone = false
			continue
		}
		a := &trackAnim{marker: m}
		a.tween = gween.New(0, t.MarkerRadius, trackballGrowSeconds, ease.OutQuad)
		t.anims = append(t.anims, a)
	}
	for _, a := range t.anims {
		if !seen[a.marker.SeriesIndex] && !a.gone {
			a.gone = true
			a.tween = gween.New(a.marker.Radius, 0, trackballGrowSeconds, ease.OutQuad)
		}
	}
}

func (t *Trackball) animFor(seriesIndex int) *trackAnim {
	for _, a := range t.anims {
		if a.marker.SeriesIndex == seriesIndex {
			return a
		}
	}
	return nil
}

func (t *Trackball) shrinkAll() {
	for _, a := range t.anims {
		if !a.gone {
			a.gone = true
			a.tween = gween.New(a.marker.Radius, 0, trackballGrowSeconds, ease.OutQuad)
		}
	}
}

// Tick advances all marker tweens by dt seconds and returns the
// markers to draw. active is false once every transition has settled
// and fully shrunk markers are pruned, which ends the frame loop.
func (t *Trackball) Tick(dt float32) (markers []TrackMarker, active bool) {
	var kept []*trackAnim
	for _, a := range t.anims {
		r, finished := a.tween.Update(dt)
		a.marker.Radius = r
		if !finished {
			active = true
		}
		if finished && a.gone {
			continue // fully shrunk, prune
		}
		kept = append(kept, a)
		markers = append(markers, a.marker)
	}
	t.anims = kept
	return markers, active
}

func firstXAxis(list []*series.Series) *axis.Axis {
	for _, s := range list {
		if s != nil && s.XAxis != nil {
			return s.XAxis
		}
	}
	return nil
}
