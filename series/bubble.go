// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"github.com/chartex/chartex/geom"
	"github.com/chewxy/math32"
)

// bubbleRadiusPercent scales the implicit bubble radius against the
// chart's larger dimension when the series carries no explicit
// min/max radius.
const bubbleRadiusPercent = 0.04

// buildBubble computes one marker per renderable point. Points failing
// the neighbor-aware range check are skipped entirely: no marker and
// no hit region. A radius that still comes out zero falls back to the
// series minimum radius.
func buildBubble(s *Series, ctx BuildContext) Geometry {
	maxSize := ctx.MaxBubbleSize
	if maxSize == 0 {
		maxSize = s.maxAbsSize()
	}
	minS, maxS := s.sizeRange()
	base := bubbleRadiusPercent * math32.Max(ctx.ChartSize.Width, ctx.ChartSize.Height)
	var markers []MarkerDesc
	for i := range s.Points {
		p := &s.Points[i]
		p.SymbolLocations = nil
		p.Regions = nil
		if !p.Visible || p.IsEmpty || !s.withInRange(i) {
			continue
		}
		rad := s.bubbleRadius(p, base, maxSize, minS, maxS)
		if rad == 0 {
			rad = s.MinRadius
		}
		center := s.locate(p.XValue, p.YValue)
		p.SymbolLocations = []geom.Location{center}
		p.Regions = []geom.Rect{{
			X:      center.X - rad - s.ClipRect.X,
			Y:      center.Y - rad - s.ClipRect.Y,
			Width:  2 * rad,
			Height: 2 * rad,
		}}
		markers = append(markers, MarkerDesc{
			PointIndex: p.Index,
			Center:     center,
			Radius:     rad,
			Opacity:    1,
		})
	}
	s.setTolerances(len(s.VisiblePoints()))
	return Geometry{Markers: markers}
}

// bubbleRadius normalizes a point's size into a pixel radius. With
// explicit min/max radii the size is normalized against the series'
// own size range; otherwise the size acts as a fraction of the
// discovered maximum applied to the uniform base radius.
func (s *Series) bubbleRadius(p *Point, base, maxSize, minS, maxS float32) float32 {
	if s.MinRadius > 0 || s.MaxRadius > 0 {
		denom := maxS - minS
		frac := float32(1)
		if denom > 0 {
			frac = (p.Size - minS) / denom
		}
		return s.MinRadius + (s.MaxRadius-s.MinRadius)*frac
	}
	if maxSize == 0 {
		return 0
	}
	return base * math32.Abs(p.Size) / maxSize
}

func (s *Series) maxAbsSize() float32 {
	var m float32
	for i := range s.Points {
		m = math32.Max(m, math32.Abs(s.Points[i].Size))
	}
	return m
}

func (s *Series) sizeRange() (minS, maxS float32) {
	if len(s.Points) == 0 {
		return 0, 0
	}
	minS, maxS = s.Points[0].Size, s.Points[0].Size
	for i := range s.Points {
		minS = math32.Min(minS, s.Points[i].Size)
		maxS = math32.Max(maxS, s.Points[i].Size)
	}
	return minS, maxS
}
