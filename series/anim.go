// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"

	"github.com/chartex/chartex/geom"
	"github.com/chartex/chartex/interp"
	"github.com/chartex/chartex/pathdata"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Role distinguishes the animated paths of one series.
type Role int

const (
	RoleArea Role = iota
	RoleBorder
)

func (r Role) String() string {
	if r == RoleBorder {
		return "border"
	}
	return "area"
}

// AnimState is the per-series animation state: whether the first-ever
// render has completed, and the last committed path per role. The
// stored path advances to the target only when progress reaches 1, so
// intermediate frames never become the next interpolation baseline.
type AnimState struct {
	initialDone bool
	stored      map[string]string
}

// Reset drops all committed paths and re-arms the initial reveal.
func (a *AnimState) Reset() {
	a.initialDone = false
	a.stored = map[string]string{}
}

// InitialRender reports whether the series has yet to complete its
// first-ever render animation.
func (a *AnimState) InitialRender() bool { return !a.initialDone }

func (s *Series) pathKey(role Role) string {
	return fmt.Sprintf("%s_%d", role, s.Index)
}

// Frame is the output of one animation step: the path to draw and,
// during the initial reveal, the clip rectangle that sweeps it in.
type Frame struct {
	Path string
	Clip *geom.Rect
}

// AnimatePath advances the animation for one series path role toward
// next at the given progress. The first-ever render sweeps the final
// path in behind a growing clip rectangle; when the path bounds are
// degenerate it falls back to morphing from a minimal synthesized
// path. Subsequent renders morph from the previously committed path
// with the type-aware interpolator. At progress 1 the target path is
// committed as the new baseline.
func (s *Series) AnimatePath(role Role, next string, progress float32) Frame {
	if s.Anim.stored == nil {
		s.Anim.stored = map[string]string{}
	}
	key := s.pathKey(role)
	eased := ease.OutQuad(clamp01(progress), 0, 1, 1)
	frame := s.animFrame(role, key, next, eased)
	if progress >= 1 {
		s.Anim.stored[key] = next
		s.Anim.initialDone = true
	}
	return frame
}

func (s *Series) animFrame(role Role, key, next string, progress float32) Frame {
	inverted := s.XAxis != nil && s.XAxis.Inverted
	if !s.Anim.initialDone {
		bounds := pathdata.Parse(next).Bounds().ToRect()
		if interp.RevealDegenerate(bounds, s.Transposed) {
			return Frame{Path: interp.Path(collapsedPath(next), next, progress, false)}
		}
		clip := interp.RevealClip(bounds, progress, s.Transposed, inverted)
		return Frame{Path: next, Clip: &clip}
	}
	prev := s.Anim.stored[key]
	if prev == "" || prev == next {
		return Frame{Path: next}
	}
	kind := s.interpKind(role)
	if kind == interp.Area || kind == interp.Border {
		tail := s.RemovedPointIndex == len(s.Points)
		return Frame{Path: interp.Path(prev, next, progress, tail)}
	}
	return Frame{Path: interp.Interpolate(kind, prev, next, progress)}
}

func (s *Series) interpKind(role Role) interp.Kind {
	switch s.Type {
	case RangeArea:
		if role == RoleBorder {
			return interp.RangeBorder
		}
		return interp.RangeArea
	case SplineRangeArea:
		if role == RoleBorder {
			return interp.SplineRangeBorder
		}
		return interp.SplineRangeArea
	}
	if role == RoleBorder {
		return interp.Border
	}
	return interp.Area
}

// collapsedPath synthesizes the minimal starting path for a degenerate
// reveal: every command of the target collapsed onto its first point.
func collapsedPath(next string) string {
	p := pathdata.Parse(next)
	if len(p) == 0 || len(p[0].Coords) < 2 {
		return ""
	}
	first := p[0].End()
	out := make(pathdata.Path, 0, len(p))
	for _, c := range p {
		coords := make([]float32, len(c.Coords))
		for i := 0; i+1 < len(coords); i += 2 {
			coords[i], coords[i+1] = first.X, first.Y
		}
		out = append(out, pathdata.Command{Type: c.Type, Coords: coords})
	}
	return out.String()
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MarkerAnimation tweens marker radii toward their target over
// animation-frame callbacks, producing the bubble reveal's grow effect.
// The loop self-terminates: Update reports done when every tween has
// finished.
type MarkerAnimation struct {
	targets []MarkerDesc
	tweens  []*gween.Tween
}

// NewMarkerAnimation starts a radius tween from zero to each marker's
// target radius over duration seconds.
func NewMarkerAnimation(markers []MarkerDesc, duration float32) *MarkerAnimation {
	ma := &MarkerAnimation{targets: markers}
	for _, m := range markers {
		ma.tweens = append(ma.tweens, gween.New(0, m.Radius, duration, ease.OutQuad))
	}
	return ma
}

// Update advances all tweens by dt seconds and returns the markers at
// their current radii. done is true once no marker is mid-transition.
func (ma *MarkerAnimation) Update(dt float32) (markers []MarkerDesc, done bool) {
	done = true
	markers = make([]MarkerDesc, len(ma.targets))
	for i, m := range ma.targets {
		r, finished := ma.tweens[i].Update(dt)
		m.Radius = r
		markers[i] = m
		if !finished {
			done = false
		}
	}
	return markers, done
}
