// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "github.com/chartex/chartex/geom"

// RevealClip computes the clip rectangle for the one-time entrance
// animation: the path's bounding rect inset proportionally to
// 1-progress along the dominant axis, so the shape sweeps in without
// needing a synthetic empty starting path. For a horizontal chart the
// width grows from the left edge, or from the right when the x axis is
// inverted; for a transposed chart the height grows from the bottom,
// or from the top when inverted. Degenerate bounds (zero width or
// height) are the caller's cue to fall back to path morphing.
func RevealClip(bounds geom.Rect, progress float32, transposed, inverted bool) geom.Rect {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	r := bounds
	if !transposed {
		w := bounds.Width * progress
		r.Width = w
		if inverted {
			r.X = bounds.X + bounds.Width - w
		}
		return r
	}
	h := bounds.Height * progress
	r.Height = h
	if !inverted {
		r.Y = bounds.Y + bounds.Height - h
	}
	return r
}

// RevealDegenerate reports whether bounds cannot drive a clip reveal
// along the chosen axis.
func RevealDegenerate(bounds geom.Rect, transposed bool) bool {
	if transposed {
		return bounds.Height == 0
	}
	return bounds.Width == 0
}
