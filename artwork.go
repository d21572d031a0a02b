// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spezifisch/stpod/logger"
)

// artwork larger than this is not decoded
const maxArtworkBytes = 8 << 20

type artworkFetcher struct {
	client *http.Client
}

func newArtworkFetcher() *artworkFetcher {
	return &artworkFetcher{client: &http.Client{Timeout: 20 * time.Second}}
}

func (f *artworkFetcher) Fetch(url string) (image.Image, error) {
	res, err := f.client.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "artwork request")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Newf("artwork request: unexpected status %s", res.Status)
	}

	img, _, err := image.Decode(io.LimitReader(res.Body, maxArtworkBytes))
	if err != nil {
		return nil, errors.Wrap(err, "decode artwork")
	}
	return img, nil
}

// newArtworkCache keeps up to size decoded images, keyed by URL. fetched is
// called on the cache goroutine whenever an image arrives.
func newArtworkCache(size int, fetched func(url string, img image.Image), logger logger.LoggerInterface) *Cache[image.Image] {
	lru := NewLRU(size)
	return NewCache[image.Image](
		nil,
		newArtworkFetcher().Fetch,
		fetched,
		lru.Touch,
		logger,
	)
}
