// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spezifisch/stpod/logger"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
	"github.com/spezifisch/stpod/subsonic"
	"github.com/spf13/afero"
)

var errNoChannel = errors.New("no matching podcast channel on server")

// loadCatalog reads the catalog from the configured file or, without one,
// from the podcast channels of the configured server.
func loadCatalog(cfg *Config, fs afero.Fs, logger logger.LoggerInterface) (*podcast.Catalog, error) {
	if cfg.Catalog != "" {
		return podcast.LoadCatalog(fs, cfg.Catalog, func(err error) {
			logger.PrintError("catalog", err)
		})
	}

	connection := subsonic.Init(logger)
	connection.SetClientInfo(Name, APIVersion)
	connection.Username = cfg.Auth.Username
	connection.Password = cfg.Auth.Password
	connection.Host = cfg.Server.Host
	connection.PlaintextAuth = cfg.Auth.Plaintext

	channels, err := connection.GetPodcasts()
	if err != nil {
		return nil, errors.Wrap(err, "fetch podcasts")
	}
	return catalogFromChannels(connection, channels, cfg.Server.Channel)
}

// catalogFromChannels turns one server channel into a catalog. selector
// matches a channel id or, case-insensitively, its title; empty selects the
// first channel that has playable episodes.
func catalogFromChannels(connection *subsonic.Connection, channels []subsonic.PodcastChannel, selector string) (*podcast.Catalog, error) {
	idx := -1
	if selector == "" {
		_, idx, _ = lo.FindIndexOf(channels, func(c subsonic.PodcastChannel) bool {
			return lo.SomeBy(c.Episodes, subsonic.PodcastEpisode.Playable)
		})
	} else {
		_, idx, _ = lo.FindIndexOf(channels, func(c subsonic.PodcastChannel) bool {
			return string(c.Id) == selector || strings.EqualFold(c.Title, selector)
		})
	}
	if idx < 0 {
		if selector != "" {
			return nil, errors.Wrapf(errNoChannel, "%q", selector)
		}
		return nil, podcast.ErrNoEpisodes
	}

	channel := channels[idx]
	thumbnail := connection.GetCoverArtUrl(channel.CoverArtId)
	if thumbnail == "" {
		thumbnail = channel.OriginalImageUrl
	}

	playable := lo.Filter(channel.Episodes, func(e subsonic.PodcastEpisode, _ int) bool {
		return e.Playable()
	})
	if len(playable) == 0 {
		return nil, errors.Wrapf(podcast.ErrNoEpisodes, "channel %q", channel.Title)
	}

	episodes := lo.Map(playable, func(e subsonic.PodcastEpisode, i int) podcast.Episode {
		art := connection.GetCoverArtUrl(e.CoverArtId)
		if art == "" {
			art = thumbnail
		}
		return podcast.Episode{
			ID:           string(e.Id),
			Title:        e.Title,
			Number:       len(playable) - i,
			Duration:     player.FormatTime(float64(e.Duration)),
			Date:         publishDate(e.PublishDate),
			Description:  strings.TrimSpace(e.Description),
			AudioURL:     connection.GetPlayUrl(e.StreamId),
			ThumbnailURL: art,
		}
	})

	return &podcast.Catalog{
		Series: podcast.Series{
			ID:            string(channel.Id),
			Title:         channel.Title,
			Description:   strings.TrimSpace(channel.Description),
			TotalEpisodes: len(channel.Episodes),
			ThumbnailURL:  thumbnail,
		},
		Episodes: episodes,
	}, nil
}

// publishDate keeps the date part of an ISO 8601 timestamp.
func publishDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}
