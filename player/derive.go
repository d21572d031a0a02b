// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
	"github.com/spezifisch/stpod/podcast"
)

// ProgressFraction returns position/duration clamped to [0,1], or 0 while
// the duration is unknown.
func ProgressFraction(position, duration float64) float64 {
	if duration <= 0 || !isFinite(position) || !isFinite(duration) {
		return 0
	}
	return lo.Clamp(position/duration, 0, 1)
}

// PointerFraction maps a pointer column onto the track, clamped to [0,1].
// ok is false for a degenerate track.
func PointerFraction(x int, track Rect) (fraction float64, ok bool) {
	if track.Width <= 0 {
		return 0, false
	}
	return lo.Clamp(float64(x-track.Left)/float64(track.Width), 0, 1), true
}

// ChapterAt returns the index of the chapter playing at t: the last chapter
// starting at or before t. chapters must be sorted by Start. Returns -1 when
// there is no such chapter.
func ChapterAt(chapters []podcast.Chapter, t float64) int {
	// first chapter starting after t
	i := sort.Search(len(chapters), func(i int) bool {
		return chapters[i].Start > t
	})
	return i - 1
}

// BufferedPercent is the furthest buffered end relative to duration, in percent.
func BufferedPercent(ranges []TimeRange, duration float64) float64 {
	if len(ranges) == 0 || duration <= 0 {
		return 0
	}
	end := ranges[len(ranges)-1].End
	if !isFinite(end) {
		return 0
	}
	return lo.Clamp(end/duration*100, 0, 100)
}

// ChapterMarkers returns the position of each chapter start as a fraction of
// duration, for drawing markers on the seek track.
func ChapterMarkers(chapters []podcast.Chapter, duration float64) []float64 {
	if duration <= 0 {
		return nil
	}
	return lo.Map(chapters, func(c podcast.Chapter, _ int) float64 {
		return lo.Clamp(c.Start/duration, 0, 1)
	})
}

// FormatTime renders seconds as M:SS.
func FormatTime(seconds float64) string {
	if !isFinite(seconds) || seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
