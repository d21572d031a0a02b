// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import "github.com/spezifisch/stpod/player"

// ControlledPlayer is the playback surface a remote control acts on.
// *player.Controller satisfies it.
type ControlledPlayer interface {
	TogglePlay()
	SetPlaying(play bool)
	Seek(seconds float64)
	SetVolume(volume float64)
	SetPlaybackRate(rate float64) float64
	State() player.State
}

// Navigator switches between episodes.
type Navigator interface {
	NextEpisode()
	PreviousEpisode()
}
