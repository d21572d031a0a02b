// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

// TimeRange is a span of media, in seconds, that is ready for playback.
type TimeRange struct {
	Start float64
	End   float64
}

// MediaElement is the audio playback primitive driven by a Controller.
// Setters are fire-and-forget: the effect is observed later through the
// MediaListener notifications.
type MediaElement interface {
	Play() error
	Pause() error
	Paused() bool

	SetPosition(seconds float64) error
	SetVolume(volume float64) error
	SetMuted(muted bool) error
	SetPlaybackRate(rate float64) error

	// Duration is only valid once metadata has been loaded; 0 before that.
	Duration() float64
	Buffered() []TimeRange

	// Subscribe registers l for notifications until the returned function is called.
	Subscribe(l MediaListener) (unsubscribe func())
}

// MediaListener receives notifications from a MediaElement, in delivery order.
type MediaListener interface {
	OnPositionUpdate(seconds float64)
	OnMetadataLoaded(duration float64)
	OnBufferProgress(ranges []TimeRange)

	// reconciliation with playback state changed outside the controller
	OnPauseChange(paused bool)
	OnEnded()
}
