// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package subsonic

import (
	"encoding/json"
	"strconv"
)

// response structs
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Id accepts both the string ids of OpenSubsonic and the numeric ids some
// older servers send.
type Id string

func (si *Id) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, (*string)(si))
	}
	var i int
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}
	*si = Id(strconv.Itoa(i))
	return nil
}

type PodcastEpisode struct {
	Id          Id     `json:"id"`
	StreamId    Id     `json:"streamId"`
	ChannelId   Id     `json:"channelId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishDate string `json:"publishDate"`
	Status      string `json:"status"`
	CoverArtId  string `json:"coverArt"`
	Duration    int    `json:"duration"`
}

// Playable is true once the server has downloaded the episode.
func (e PodcastEpisode) Playable() bool {
	return e.StreamId != "" && (e.Status == "" || e.Status == "completed")
}

type PodcastChannel struct {
	Id               Id               `json:"id"`
	Url              string           `json:"url"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	CoverArtId       string           `json:"coverArt"`
	OriginalImageUrl string           `json:"originalImageUrl"`
	Status           string           `json:"status"`
	Episodes         []PodcastEpisode `json:"episode"`
}

type Podcasts struct {
	Channels []PodcastChannel `json:"channel"`
}

type NewestPodcasts struct {
	Episodes []PodcastEpisode `json:"episode"`
}

type Response struct {
	Status         string         `json:"status"`
	Version        string         `json:"version"`
	Type           string         `json:"type"`
	ServerVersion  string         `json:"serverVersion"`
	OpenSubsonic   bool           `json:"openSubsonic"`
	Error          Error          `json:"error"`
	Podcasts       Podcasts       `json:"podcasts"`
	NewestPodcasts NewestPodcasts `json:"newestPodcasts"`
}

type responseWrapper struct {
	Response Response `json:"subsonic-response"`
}
