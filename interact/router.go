// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact implements the pointer interaction subsystem:
// chart-scoped event routing, nearest-point resolution, and the
// crosshair, tooltip, and trackball state machines with their
// timer-driven visibility.
package interact

import "github.com/chartex/chartex/geom"

// EventType is the kind of pointer event a handler listens to.
type EventType int

const (
	Click EventType = iota
	MouseMove
	MouseDown
	MouseUp
	MouseWheel
	MouseLeave

	numEventTypes
)

// DefaultChartID is the implicit fallback bucket: handlers registered
// under it also receive events dispatched to any other chart.
const DefaultChartID = "default"

// Event carries one pointer event through the router.
type Event struct {
	Type EventType

	// Pos is the pointer position in chart pixel space.
	Pos geom.Location

	// DeltaY is the wheel delta; Detail carries the legacy
	// Firefox wheel direction when DeltaY is absent.
	DeltaY float32
	Detail int

	// Touch marks events originating from a touch device.
	Touch bool
}

// Handler receives dispatched events. Handlers are closures with all
// context captured, registered per chart.
type Handler func(*Event)

type registration struct {
	fn      Handler
	removed bool
}

type bucket struct {
	handlers [numEventTypes][]*registration
}

// Router dispatches pointer events to handlers keyed by chart id.
// Each chart owns its Router through the chart context, which ties the
// registry lifetime to the chart rather than a process-wide map.
type Router struct {
	// DefaultFallback preserves the compatibility behavior of also
	// notifying the "default" bucket after the chart's own handlers.
	// Note that with it on, shared default-bucket handlers hear every
	// chart's events.
	DefaultFallback bool

	buckets map[string]*bucket
}

// NewRouter returns a router with the default-bucket fallback on.
func NewRouter() *Router {
	return &Router{DefaultFallback: true, buckets: map[string]*bucket{}}
}

// Register adds a handler for one event type under the given chart id,
// lazily creating the chart's bucket. The returned function removes
// exactly this registration; calling it more than once, or after the
// handler is already gone, is a no-op.
func (r *Router) Register(chartID string, typ EventType, h Handler) func() {
	if r.buckets == nil {
		r.buckets = map[string]*bucket{}
	}
	b := r.buckets[chartID]
	if b == nil {
		b = &bucket{}
		r.buckets[chartID] = b
	}
	reg := &registration{fn: h}
	b.handlers[typ] = append(b.handlers[typ], reg)
	return func() {
		if reg.removed {
			return
		}
		reg.removed = true
		hs := b.handlers[typ]
		for i, cand := range hs {
			if cand == reg {
				b.handlers[typ] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch invokes every handler registered for the chart id in
// registration order, then, when the fallback is enabled and the id is
// not itself "default", every handler in the default bucket.
func (r *Router) Dispatch(chartID string, ev *Event) {
	r.call(chartID, ev)
	if r.DefaultFallback && chartID != DefaultChartID {
		r.call(DefaultChartID, ev)
	}
}

func (r *Router) call(chartID string, ev *Event) {
	b := r.buckets[chartID]
	if b == nil {
		return
	}
	// snapshot: handlers may unregister themselves mid-dispatch
	hs := append([]*registration(nil), b.handlers[ev.Type]...)
	for _, reg := range hs {
		if !reg.removed {
			reg.fn(ev)
		}
	}
}
