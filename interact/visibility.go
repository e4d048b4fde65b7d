// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"sync"
	"time"
)

// Hide delays per input modality: touch devices get long delays to
// accommodate tap-then-inspect, mouse hides quickly.
const (
	MouseHideDelay = 1000 * time.Millisecond
	TouchHideDelay = 2000 * time.Millisecond
)

// Visibility is the shared debounced show/hide state used by the
// crosshair, tooltip, and trackball machines. A pending hide is a
// single slot: scheduling a new one cancels the previous, never
// stacks. The hide callback runs only if the state is still visible
// when the timer fires, so a show racing a stale timer wins either
// way. State is guarded by an internal mutex because the default
// scheduler fires on a timer goroutine while Show/HideAfter run on the
// caller's.
type Visibility struct {
	mu      sync.Mutex
	visible bool
	cancel  func()

	// seq invalidates hide callbacks that fired before being
	// superseded but were still waiting on the lock.
	seq uint64

	// OnHide runs after a scheduled or immediate hide takes effect,
	// outside the internal lock. With the default scheduler it may run
	// on a timer goroutine, so it must be safe to call concurrently
	// with the machine's other methods.
	OnHide func()

	// Schedule overrides timer creation; tests substitute a fake that
	// captures f and fires it later. Schedule must not invoke f
	// before returning. Nil uses time.AfterFunc, whose callback fires
	// on its own goroutine.
	Schedule func(d time.Duration, f func()) (cancel func())
}

// Visible reports the current state.
func (v *Visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Show makes the state visible and cancels any pending hide.
func (v *Visibility) Show() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelLocked()
	v.visible = true
}

// HideNow hides immediately, canceling any pending hide first.
func (v *Visibility) HideNow() {
	v.mu.Lock()
	v.cancelLocked()
	v.hideLocked()
}

// HideAfter schedules a hide after d, replacing any pending one.
// A non-positive delay hides immediately.
func (v *Visibility) HideAfter(d time.Duration) {
	v.mu.Lock()
	v.cancelLocked()
	if d <= 0 {
		v.hideLocked()
		return
	}
	defer v.mu.Unlock()
	sched := v.Schedule
	if sched == nil {
		sched = func(d time.Duration, f func()) func() {
			t := time.AfterFunc(d, f)
			return func() { t.Stop() }
		}
	}
	seq := v.seq
	v.cancel = sched(d, func() {
		v.mu.Lock()
		if seq != v.seq {
			v.mu.Unlock()
			return
		}
		v.cancel = nil
		v.hideLocked()
	})
}

// CancelPending drops the pending hide, if any.
func (v *Visibility) CancelPending() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelLocked()
}

func (v *Visibility) cancelLocked() {
	v.seq++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// hideLocked flips to hidden and delivers OnHide outside the lock; it
// unlocks v.mu.
func (v *Visibility) hideLocked() {
	hid := v.visible
	v.visible = false
	onHide := v.OnHide
	v.mu.Unlock()
	if hid && onHide != nil {
		onHide()
	}
}
