// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package podcast

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var (
	ErrNoEpisodes       = errors.New("catalog has no episodes")
	ErrInvalidEpisode   = errors.New("invalid episode")
	ErrDuplicateEpisode = errors.New("duplicate episode id")
)

// catalog file layout, see stpod-catalog.example.toml
type catalogFile struct {
	Series   seriesFile    `mapstructure:"series"`
	Episodes []episodeFile `mapstructure:"episodes"`
}

type seriesFile struct {
	ID            string   `mapstructure:"id"`
	Title         string   `mapstructure:"title"`
	Author        string   `mapstructure:"author"`
	Description   string   `mapstructure:"description"`
	Categories    []string `mapstructure:"categories"`
	TotalEpisodes int      `mapstructure:"total_episodes"`
	ThumbnailURL  string   `mapstructure:"thumbnail_url"`
}

type episodeFile struct {
	ID           string          `mapstructure:"id"`
	Title        string          `mapstructure:"title"`
	Number       int             `mapstructure:"number"`
	Duration     string          `mapstructure:"duration"`
	Date         string          `mapstructure:"date"`
	Description  string          `mapstructure:"description"`
	AudioURL     string          `mapstructure:"audio_url"`
	ThumbnailURL string          `mapstructure:"thumbnail_url"`
	Chapters     []ChapterSource `mapstructure:"chapters"`
}

// LoadCatalog reads a catalog file (toml, yaml or json, by extension) from fs.
// Chapters with malformed times are dropped; they are reported through warn,
// which may be nil.
func LoadCatalog(fs afero.Fs, path string, warn func(error)) (*Catalog, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}

	var raw catalogFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, errors.Wrapf(err, "decoding catalog %s", path)
	}

	return raw.toCatalog(warn)
}

func (raw catalogFile) toCatalog(warn func(error)) (*Catalog, error) {
	if len(raw.Episodes) == 0 {
		return nil, ErrNoEpisodes
	}

	c := &Catalog{
		Series: Series{
			ID:            raw.Series.ID,
			Title:         raw.Series.Title,
			Author:        raw.Series.Author,
			Description:   raw.Series.Description,
			Categories:    raw.Series.Categories,
			TotalEpisodes: raw.Series.TotalEpisodes,
			ThumbnailURL:  raw.Series.ThumbnailURL,
		},
		Episodes: make([]Episode, 0, len(raw.Episodes)),
	}
	if c.Series.TotalEpisodes == 0 {
		c.Series.TotalEpisodes = len(raw.Episodes)
	}

	seen := make(map[string]struct{}, len(raw.Episodes))
	for i, e := range raw.Episodes {
		if e.ID == "" {
			return nil, errors.Wrapf(ErrInvalidEpisode, "episode #%d: missing id", i+1)
		}
		if e.AudioURL == "" {
			return nil, errors.Wrapf(ErrInvalidEpisode, "episode %s: missing audio_url", e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, errors.Wrapf(ErrDuplicateEpisode, "%s", e.ID)
		}
		seen[e.ID] = struct{}{}

		chapters, err := ParseChapters(e.Chapters)
		if err != nil && warn != nil {
			warn(errors.Wrapf(err, "episode %s", e.ID))
		}

		thumb := e.ThumbnailURL
		if thumb == "" {
			thumb = c.Series.ThumbnailURL
		}

		c.Episodes = append(c.Episodes, Episode{
			ID:           e.ID,
			Title:        e.Title,
			Number:       e.Number,
			Duration:     e.Duration,
			Date:         e.Date,
			Description:  strings.TrimSpace(e.Description),
			AudioURL:     e.AudioURL,
			ThumbnailURL: thumb,
			Chapters:     chapters,
		})
	}

	return c, nil
}
