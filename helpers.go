// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import "math"

func secondsToMinAndSec(seconds int64) (int, int) {
	minutes := math.Floor(float64(seconds) / 60)
	remainingSeconds := int(seconds) % 60
	return int(minutes), remainingSeconds
}

// volumePercent renders a 0..1 volume as a whole percentage.
func volumePercent(volume float64) int64 {
	return int64(math.Round(volume * 100))
}
