// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

// Rect is the on-screen extent of the seek track, in cells.
type Rect struct {
	Left  int
	Width int
}

// HoverPreview is the time under the pointer while it moves over the seek
// track. It never affects playback.
type HoverPreview struct {
	Time float64
	X    int
	// Chapter is the index of the chapter at Time, or -1.
	Chapter int
}

// State is a snapshot of everything the player view renders.
type State struct {
	IsPlaying       bool
	Position        float64
	Duration        float64
	BufferedPercent float64
	Volume          float64
	Muted           bool
	Rate            float64
	Hover           *HoverPreview
}

func initialState() State {
	return State{
		Volume: 1,
		Rate:   1,
	}
}

// Progress is the played fraction of the episode, in [0,1].
func (s State) Progress() float64 {
	return ProgressFraction(s.Position, s.Duration)
}
