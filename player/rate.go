// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import "math"

// PlaybackRates is the fixed cycle of speeds offered by CyclePlaybackRate.
var PlaybackRates = []float64{0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// NextRate returns the rate following current in PlaybackRates, wrapping
// around after the last one. A rate outside the set advances to the next
// larger one.
func NextRate(current float64) float64 {
	for _, r := range PlaybackRates {
		if r > current {
			return r
		}
	}
	return PlaybackRates[0]
}

// NearestRate returns the entry of PlaybackRates closest to rate; ties go to
// the slower one.
func NearestRate(rate float64) float64 {
	best := PlaybackRates[0]
	for _, r := range PlaybackRates[1:] {
		if math.Abs(r-rate) < math.Abs(best-rate) {
			best = r
		}
	}
	return best
}
