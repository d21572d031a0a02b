package player

import (
	"math"
	"testing"

	"github.com/spezifisch/stpod/podcast"
	"github.com/stretchr/testify/assert"
)

var testChapters = []podcast.Chapter{
	{Title: "Intro", Start: 0},
	{Title: "News", Start: 64},
	{Title: "Interview", Start: 200},
	{Title: "Outro", Start: 540},
}

func TestChapterAt(t *testing.T) {
	testCases := []struct {
		name     string
		position float64
		want     int
	}{
		{"start", 0, 0},
		{"inside first", 63.9, 0},
		{"boundary", 64, 1},
		{"just before third", 199, 1},
		{"last chapter start", 540, 3},
		{"past last", 10000, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ChapterAt(testChapters, tc.position))
		})
	}

	assert.Equal(t, -1, ChapterAt(nil, 12))
	assert.Equal(t, -1, ChapterAt([]podcast.Chapter{{Start: 30}}, 12), "before the first chapter")
}

func TestProgressFraction(t *testing.T) {
	for _, duration := range []float64{1, 60, 1277.5} {
		for _, position := range []float64{0, duration / 3, duration} {
			f := ProgressFraction(position, duration)
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
			assert.InDelta(t, position/duration, f, 1e-9)
		}
	}

	assert.Equal(t, 0.0, ProgressFraction(10, 0))
	assert.Equal(t, 1.0, ProgressFraction(70, 60))
	assert.Equal(t, 0.0, ProgressFraction(math.NaN(), 60))
}

func TestPointerFraction(t *testing.T) {
	track := Rect{Left: 10, Width: 40}

	f, ok := PointerFraction(30, track)
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	f, _ = PointerFraction(2, track)
	assert.Equal(t, 0.0, f)

	f, _ = PointerFraction(90, track)
	assert.Equal(t, 1.0, f)

	_, ok = PointerFraction(10, Rect{Left: 10, Width: 0})
	assert.False(t, ok)
}

func TestBufferedPercent(t *testing.T) {
	assert.Equal(t, 25.0, BufferedPercent([]TimeRange{{Start: 0, End: 30}}, 120))
	assert.Equal(t, 50.0, BufferedPercent([]TimeRange{{0, 10}, {40, 60}}, 120), "last range counts")
	assert.Equal(t, 0.0, BufferedPercent(nil, 120))
	assert.Equal(t, 0.0, BufferedPercent([]TimeRange{{0, 30}}, 0))
}

func TestChapterMarkers(t *testing.T) {
	assert.Equal(t, []float64{0, 0.1, 0.5}, ChapterMarkers([]podcast.Chapter{{Start: 0}, {Start: 100}, {Start: 500}}, 1000))
	assert.Nil(t, ChapterMarkers(testChapters, 0))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00", FormatTime(0))
	assert.Equal(t, "1:04", FormatTime(64.9))
	assert.Equal(t, "21:17", FormatTime(1277))
	assert.Equal(t, "75:00", FormatTime(4500))
	assert.Equal(t, "0:00", FormatTime(math.NaN()))
	assert.Equal(t, "0:00", FormatTime(-3))
}

func TestNextRateCycle(t *testing.T) {
	rate := 1.0
	seen := []float64{}
	for i := 0; i < len(PlaybackRates); i++ {
		rate = NextRate(rate)
		seen = append(seen, rate)
	}
	assert.Equal(t, []float64{1.25, 1.5, 1.75, 2, 0.5, 0.75, 1}, seen)

	assert.Equal(t, 1.0, NextRate(0.9), "off-cycle rates advance to the next larger one")
	assert.Equal(t, 0.5, NextRate(3))
}

func TestNearestRate(t *testing.T) {
	assert.Equal(t, 1.0, NearestRate(1))
	assert.Equal(t, 1.25, NearestRate(1.2))
	assert.Equal(t, 0.75, NearestRate(0.875), "ties go to the slower rate")
	assert.Equal(t, 0.5, NearestRate(0.1))
	assert.Equal(t, 2.0, NearestRate(8))
}
