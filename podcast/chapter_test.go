package podcast

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChapterTime(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{"0:00", 0},
		{"1:04", 64},
		{"9:34", 574},
		{"21:17", 1277},
		{"45", 45},
		{"1:02:03", 3723},
		{" 2:30 ", 150},
		{"1:02.5", 62.5},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseChapterTime(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseChapterTimeMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1:xx", "1::2", "-1:00", "1:NaN", "Inf"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseChapterTime(in)
			assert.True(t, errors.Is(err, ErrMalformedTime), "expected ErrMalformedTime for %q, got %v", in, err)
		})
	}
}

func TestParseChapters(t *testing.T) {
	chapters, err := ParseChapters([]ChapterSource{
		{Title: "Outro", Time: "21:17"},
		{Title: "Intro", Time: "0:00"},
		{Title: "Broken", Time: "x:10"},
		{Title: "Main", Time: "1:04"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedTime))
	assert.Equal(t, []Chapter{
		{Title: "Intro", Start: 0},
		{Title: "Main", Start: 64},
		{Title: "Outro", Start: 1277},
	}, chapters)
}

func TestParseChaptersEmpty(t *testing.T) {
	chapters, err := ParseChapters(nil)
	assert.NoError(t, err)
	assert.Empty(t, chapters)
}
