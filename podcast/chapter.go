// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package podcast

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMalformedTime is returned for chapter times that are not colon
// separated non-negative numbers.
var ErrMalformedTime = errors.New("malformed chapter time")

// Chapter is a named offset into an episode's audio timeline.
type Chapter struct {
	Title string
	// Start is the offset from the beginning of the episode, in seconds.
	Start float64
}

// ChapterSource is the on-disk form of a chapter, e.g. {title = "Intro", time = "1:04"}.
type ChapterSource struct {
	Title string `mapstructure:"title"`
	Time  string `mapstructure:"time"`
}

// ParseChapterTime converts "SS", "M:SS" or "H:MM:SS" into seconds. Each
// segment is folded into the total as acc*60+val, most significant first.
func ParseChapterTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrMalformedTime, "empty")
	}

	var acc float64
	for _, seg := range strings.Split(s, ":") {
		val, err := strconv.ParseFloat(strings.TrimSpace(seg), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedTime, "%q", s)
		}
		if val < 0 || math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, errors.Wrapf(ErrMalformedTime, "%q: segment out of range", s)
		}
		acc = acc*60 + val
	}
	return acc, nil
}

// ParseChapters converts chapter sources, dropping the ones whose time
// doesn't parse. The returned chapters are sorted by start offset. A non-nil
// error carries one entry per dropped chapter.
func ParseChapters(sources []ChapterSource) ([]Chapter, error) {
	chapters := make([]Chapter, 0, len(sources))
	var errs error
	for _, src := range sources {
		start, err := ParseChapterTime(src.Time)
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "chapter %q", src.Title))
			continue
		}
		chapters = append(chapters, Chapter{Title: src.Title, Start: start})
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Start < chapters[j].Start
	})
	return chapters, errs
}
