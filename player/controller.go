// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spezifisch/stpod/logger"
	"github.com/spezifisch/stpod/podcast"
)

// DefaultSkip is the jump distance of SkipForward/SkipBackward bound to the arrow keys.
const DefaultSkip = 5 * time.Second

var _ MediaListener = (*Controller)(nil)

// Controller owns the playback state of one player view. It turns user
// intents into commands for its MediaElement and media notifications into
// State. Operations that can't act (no media attached, unknown duration)
// are silently ignored.
type Controller struct {
	mu sync.Mutex

	media       MediaElement
	unsubscribe func()

	state    State
	chapters []podcast.Chapter

	controls *AutoHide
	logger   logger.LoggerInterface

	subscribers map[int]func(State)
	nextSubID   int

	// snapshots are numbered under mu and delivered in order under pubMu
	seq       uint64
	pubMu     sync.Mutex
	published uint64
}

type snapshot struct {
	seq   uint64
	state State
}

func NewController(logger logger.LoggerInterface, controls *AutoHide) *Controller {
	if controls == nil {
		controls = NewAutoHide(SystemClock{}, DefaultHideDelay)
	}
	return &Controller{
		state:       initialState(),
		controls:    controls,
		logger:      logger,
		subscribers: make(map[int]func(State)),
	}
}

// Attach binds the media element and subscribes to its notifications. The
// returned release function detaches it again; it is safe to call more than
// once. Attaching while another element is attached releases the old one.
func (c *Controller) Attach(media MediaElement) (release func()) {
	c.mu.Lock()
	c.detachLocked()
	c.media = media
	c.unsubscribe = media.Subscribe(c)
	c.state.IsPlaying = !media.Paused()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if c.media == media {
				c.detachLocked()
			}
			c.mu.Unlock()
		})
	}
}

func (c *Controller) detachLocked() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.media = nil
}

// Controls returns the auto-hide state of the control surface.
func (c *Controller) Controls() *AutoHide {
	return c.controls
}

// Subscribe registers cb for state changes until the returned function is
// called. cb runs on the goroutine that caused the change and must not call
// back into the Controller. Snapshots arrive in the order they were taken;
// one overtaken by a newer snapshot is dropped.
func (c *Controller) Subscribe(cb func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = cb
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// State returns a snapshot of the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	if st.Hover != nil {
		h := *st.Hover
		st.Hover = &h
	}
	return st
}

// Chapters returns a copy of the loaded episode's chapters.
func (c *Controller) Chapters() []podcast.Chapter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.chapters)
}

// CurrentChapter returns the index of the chapter at the playback position.
// ok is false without chapters or while the duration is unknown.
func (c *Controller) CurrentChapter() (index int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Duration == 0 {
		return -1, false
	}
	idx := ChapterAt(c.chapters, c.state.Position)
	return idx, idx >= 0
}

// Load prepares the controller for a new episode. Transport state starts
// over, volume, mute and rate carry over. The caller switches the media
// source itself.
func (c *Controller) Load(episode podcast.Episode) {
	c.mu.Lock()
	if c.media != nil && !c.media.Paused() {
		if err := c.media.Pause(); err != nil {
			c.logger.PrintError("Load: Pause", err)
		}
	}
	c.chapters = episode.Chapters
	c.state.IsPlaying = false
	c.state.Position = 0
	c.state.Duration = 0
	c.state.BufferedPercent = 0
	c.state.Hover = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

// TogglePlay starts playback when the media is paused and pauses it otherwise.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	if c.media == nil {
		c.mu.Unlock()
		return
	}
	c.setPlayingLocked(c.media.Paused())
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

// SetPlaying drives playback from outside the player view, e.g. a play
// button next to the episode details.
func (c *Controller) SetPlaying(want bool) {
	c.mu.Lock()
	if c.media == nil || want == !c.media.Paused() {
		c.mu.Unlock()
		return
	}
	c.setPlayingLocked(want)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Controller) setPlayingLocked(play bool) {
	if play {
		if err := c.media.Play(); err != nil {
			// e.g. the source could not be opened; stay paused
			c.logger.PrintError("Play", err)
			c.state.IsPlaying = false
			return
		}
		c.state.IsPlaying = true
	} else {
		if err := c.media.Pause(); err != nil {
			c.logger.PrintError("Pause", err)
		}
		c.state.IsPlaying = false
	}
}

// Seek moves playback to target seconds, clamped to the episode. The
// position in State follows once the media reports it.
func (c *Controller) Seek(target float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(target)
}

func (c *Controller) seekLocked(target float64) {
	if c.media == nil || !isFinite(target) {
		return
	}
	target = math.Max(target, 0)
	if c.state.Duration > 0 {
		target = math.Min(target, c.state.Duration)
	}
	if err := c.media.SetPosition(target); err != nil {
		c.logger.PrintError("Seek", err)
	}
}

// SeekByPointer seeks to the time under pointer column x on the track.
func (c *Controller) SeekByPointer(x int, track Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Duration == 0 {
		return
	}
	fraction, ok := PointerFraction(x, track)
	if !ok {
		return
	}
	c.seekLocked(fraction * c.state.Duration)
}

func (c *Controller) SkipForward(delta time.Duration) {
	c.skip(delta.Seconds())
}

func (c *Controller) SkipBackward(delta time.Duration) {
	c.skip(-delta.Seconds())
}

func (c *Controller) skip(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(c.state.Position + delta)
}

// SetVolume sets the output volume in [0,1]. Zero mutes; raising the volume
// of a muted player unmutes it.
func (c *Controller) SetVolume(v float64) {
	if !isFinite(v) {
		return
	}
	v = lo.Clamp(v, 0, 1)

	c.mu.Lock()
	if c.media == nil {
		c.mu.Unlock()
		return
	}
	if err := c.media.SetVolume(v); err != nil {
		c.logger.PrintError("SetVolume", err)
	}
	c.state.Volume = v
	switch {
	case v == 0 && !c.state.Muted:
		c.setMutedLocked(true)
	case v > 0 && c.state.Muted:
		c.setMutedLocked(false)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

// AdjustVolume changes the volume by delta.
func (c *Controller) AdjustVolume(delta float64) {
	c.SetVolume(c.State().Volume + delta)
}

// ToggleMute flips the mute flag, leaving the volume alone.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	if c.media == nil {
		c.mu.Unlock()
		return
	}
	c.setMutedLocked(!c.state.Muted)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Controller) setMutedLocked(muted bool) {
	if err := c.media.SetMuted(muted); err != nil {
		c.logger.PrintError("SetMuted", err)
	}
	c.state.Muted = muted
}

// CyclePlaybackRate advances to the next rate in PlaybackRates and returns it.
func (c *Controller) CyclePlaybackRate() float64 {
	c.mu.Lock()
	if c.media == nil {
		rate := c.state.Rate
		c.mu.Unlock()
		return rate
	}
	rate := NextRate(c.state.Rate)
	c.setRateLocked(rate)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
	return rate
}

// SetPlaybackRate switches to the entry of PlaybackRates closest to rate
// and returns it.
func (c *Controller) SetPlaybackRate(rate float64) float64 {
	if !isFinite(rate) {
		return c.State().Rate
	}
	rate = NearestRate(rate)

	c.mu.Lock()
	if c.media == nil || rate == c.state.Rate {
		current := c.state.Rate
		c.mu.Unlock()
		return current
	}
	c.setRateLocked(rate)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
	return rate
}

func (c *Controller) setRateLocked(rate float64) {
	if err := c.media.SetPlaybackRate(rate); err != nil {
		c.logger.PrintError("SetPlaybackRate", err)
	}
	c.state.Rate = rate
}

// UpdateHoverPreview shows the time and chapter under pointer column x.
func (c *Controller) UpdateHoverPreview(x int, track Rect) {
	c.mu.Lock()
	if c.state.Duration == 0 {
		c.mu.Unlock()
		return
	}
	fraction, ok := PointerFraction(x, track)
	if !ok {
		c.mu.Unlock()
		return
	}
	t := fraction * c.state.Duration
	c.state.Hover = &HoverPreview{
		Time:    t,
		X:       lo.Clamp(x-track.Left, 0, track.Width),
		Chapter: ChapterAt(c.chapters, t),
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Controller) ClearHoverPreview() {
	c.mu.Lock()
	if c.state.Hover == nil {
		c.mu.Unlock()
		return
	}
	c.state.Hover = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Controller) OnPositionUpdate(seconds float64) {
	if !isFinite(seconds) {
		return
	}
	c.update(func(s *State) {
		s.Position = seconds
	})
}

func (c *Controller) OnMetadataLoaded(duration float64) {
	if !isFinite(duration) || duration < 0 {
		duration = 0
	}
	c.update(func(s *State) {
		s.Duration = duration
	})
}

func (c *Controller) OnBufferProgress(ranges []TimeRange) {
	c.update(func(s *State) {
		s.BufferedPercent = BufferedPercent(ranges, s.Duration)
	})
}

func (c *Controller) OnPauseChange(paused bool) {
	c.update(func(s *State) {
		s.IsPlaying = !paused
	})
}

func (c *Controller) OnEnded() {
	c.update(func(s *State) {
		s.IsPlaying = false
	})
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Controller) snapshotLocked() snapshot {
	c.seq++
	return snapshot{seq: c.seq, state: c.state}
}

// publish must be called without c.mu held.
func (c *Controller) publish(snap snapshot) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	if snap.seq <= c.published {
		return
	}
	c.published = snap.seq

	c.controls.SetPlaying(snap.state.IsPlaying)

	c.mu.Lock()
	subs := make([]func(State), 0, len(c.subscribers))
	for _, cb := range c.subscribers {
		subs = append(subs, cb)
	}
	c.mu.Unlock()

	for _, cb := range subs {
		cb(snap.state)
	}
}
