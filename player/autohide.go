// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"sync"
	"time"
)

// DefaultHideDelay is how long the controls stay up after the pointer left
// them while playing.
const DefaultHideDelay = 2 * time.Second

// AutoHide decides whether the player controls are shown. They are visible
// while hovered or paused, and hide once the pointer has been away for the
// hide delay during playback. Any hover or pause shows them again at once
// and cancels a pending hide.
type AutoHide struct {
	mu sync.Mutex

	clock Clock
	delay time.Duration

	visible  bool
	hovering bool
	playing  bool

	pending Timer
	// bumped on every cancel so a timer that fired concurrently with Stop
	// can tell it was superseded
	generation uint64

	onChange func(visible bool)
}

func NewAutoHide(clock Clock, delay time.Duration) *AutoHide {
	if clock == nil {
		clock = SystemClock{}
	}
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return &AutoHide{
		clock:   clock,
		delay:   delay,
		visible: true,
	}
}

// OnChange sets the callback invoked whenever visibility flips. It is called
// without internal locks held.
func (a *AutoHide) OnChange(cb func(visible bool)) {
	a.mu.Lock()
	a.onChange = cb
	a.mu.Unlock()
}

func (a *AutoHide) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// SetHovering records whether the pointer is over the control surface.
func (a *AutoHide) SetHovering(hovering bool) {
	a.mu.Lock()
	if a.hovering == hovering {
		a.mu.Unlock()
		return
	}
	a.hovering = hovering
	notify := a.updateLocked()
	a.mu.Unlock()
	notify()
}

// SetPlaying records whether playback is running.
func (a *AutoHide) SetPlaying(playing bool) {
	a.mu.Lock()
	if a.playing == playing {
		a.mu.Unlock()
		return
	}
	a.playing = playing
	notify := a.updateLocked()
	a.mu.Unlock()
	notify()
}

// Close cancels a pending hide.
func (a *AutoHide) Close() {
	a.mu.Lock()
	a.cancelLocked()
	a.mu.Unlock()
}

func (a *AutoHide) updateLocked() (notify func()) {
	if a.hovering || !a.playing {
		a.cancelLocked()
		return a.setVisibleLocked(true)
	}

	// pointer away while playing: (re)start the countdown
	a.cancelLocked()
	gen := a.generation
	a.pending = a.clock.AfterFunc(a.delay, func() {
		a.expire(gen)
	})
	return func() {}
}

func (a *AutoHide) expire(gen uint64) {
	a.mu.Lock()
	if gen != a.generation {
		a.mu.Unlock()
		return
	}
	a.pending = nil
	notify := a.setVisibleLocked(false)
	a.mu.Unlock()
	notify()
}

func (a *AutoHide) cancelLocked() {
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.generation++
}

func (a *AutoHide) setVisibleLocked(visible bool) (notify func()) {
	if a.visible == visible {
		return func() {}
	}
	a.visible = visible
	cb := a.onChange
	return func() {
		if cb != nil {
			cb(visible)
		}
	}
}
