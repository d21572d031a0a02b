// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package podcast

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

type Episode struct {
	ID           string
	Title        string
	Number       int
	Duration     string // display only, the player learns the real duration from the media
	Date         string
	Description  string
	AudioURL     string
	ThumbnailURL string
	Chapters     []Chapter
}

type Series struct {
	ID            string
	Title         string
	Author        string
	Description   string
	Categories    []string
	TotalEpisodes int
	ThumbnailURL  string
}

// Catalog is a series and its episodes, in display order.
type Catalog struct {
	Series   Series
	Episodes []Episode
}

// Index returns the position of the episode with the given id, or -1.
func (c *Catalog) Index(id string) int {
	_, idx, ok := lo.FindIndexOf(c.Episodes, func(e Episode) bool {
		return e.ID == id
	})
	if !ok {
		return -1
	}
	return idx
}

// Get returns the episode with the given id.
func (c *Catalog) Get(id string) (Episode, bool) {
	idx := c.Index(id)
	if idx < 0 {
		return Episode{}, false
	}
	return c.Episodes[idx], true
}

// Next returns the episode after id, wrapping around at the end of the list.
// An unknown id yields the first episode.
func (c *Catalog) Next(id string) (Episode, bool) {
	if len(c.Episodes) == 0 {
		return Episode{}, false
	}
	idx := c.Index(id)
	return c.Episodes[(idx+1)%len(c.Episodes)], true
}

// Previous is the inverse of Next.
func (c *Catalog) Previous(id string) (Episode, bool) {
	if len(c.Episodes) == 0 {
		return Episode{}, false
	}
	idx := c.Index(id)
	if idx <= 0 {
		return c.Episodes[len(c.Episodes)-1], true
	}
	return c.Episodes[idx-1], true
}

// UpNext returns up to n episodes other than the current one, in catalog order.
func (c *Catalog) UpNext(currentID string, n int) []Episode {
	others := lo.Filter(c.Episodes, func(e Episode, _ int) bool {
		return e.ID != currentID
	})
	if len(others) > n {
		others = others[:n]
	}
	return others
}

// Filter returns the episodes whose title or description fuzzily matches query.
// An empty query matches everything.
func (c *Catalog) Filter(query string) []Episode {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Episodes
	}
	return lo.Filter(c.Episodes, func(e Episode, _ int) bool {
		return fuzzy.MatchFold(query, e.Title) || fuzzy.MatchFold(query, e.Description)
	})
}
