// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"

	"github.com/spezifisch/stpod/logger"
)

// Cache fetches assets and holds a copy, returning them on request.
// A Cache is composed of four mechanisms:
//
// 1. a zero object
// 2. a function for fetching assets
// 3. a function for invalidating assets
// 4. a call-back function for when an asset is fetched
//
// When an asset is requested, Cache returns the asset if it is cached.
// Otherwise, it returns the zero object, and queues up a fetch for the object
// in the background. When the fetch is complete, the callback function is
// called, allowing the caller to get the real asset. An invalidation function
// allows Cache to manage the cache size by removing cached invalid objects.
//
// Caches are indexed by strings; artwork is keyed by its URL.
type Cache[T any] struct {
	zero T

	mu         sync.Mutex
	cache      map[string]T
	pending    map[string]struct{}
	cacheCheck func(string) string

	pipeline chan string
	closed   bool
}

// NewCache sets up a new cache, given
//
//   - a zeroValue, returned immediately on cache misses
//   - a fetcher, which can be a long-running function that loads assets.
//     fetcher should take a key ID and return an asset, or an error.
//   - a fetchedItem call-back function, which will be called when a requested asset is available. It
//     will be called with the asset ID, and the loaded asset.
//   - a cacheCheck function which, when given a key, returns a key to remove from the
//     cache, or the empty string if nothing is to be removed.
//   - a logger, used for reporting errors returned by the fetching function
//
// cacheCheck is only ever called with the cache lock held.
func NewCache[T any](
	zeroValue T,
	fetcher func(string) (T, error),
	fetchedItem func(string, T),
	cacheCheck func(string) string,
	logger logger.LoggerInterface,
) *Cache[T] {
	c := &Cache[T]{
		zero:       zeroValue,
		cache:      make(map[string]T),
		pending:    make(map[string]struct{}),
		cacheCheck: cacheCheck,
		pipeline:   make(chan string, 100),
	}

	go func() {
		for key := range c.pipeline {
			asset, err := fetcher(key)

			c.mu.Lock()
			delete(c.pending, key)
			if err != nil {
				c.mu.Unlock()
				logger.Printf("error fetching asset %s: %s", key, err)
				continue
			}
			c.cache[key] = asset
			if remove := c.cacheCheck(key); remove != "" {
				delete(c.cache, remove)
			}
			c.mu.Unlock()

			fetchedItem(key, asset)
		}
	}()

	return c
}

// Get returns a cached asset, or the zero asset on a cache miss.
// On a cache miss, the requested asset is queued for fetching unless a
// fetch for it is already queued.
func (c *Cache[T]) Get(key string) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.cache[key]; ok {
		// We're just touching something in the cache, not putting anything in it,
		// so we just call cacheCheck to refresh this key
		c.cacheCheck(key)
		return v
	}
	if _, ok := c.pending[key]; ok || c.closed {
		return c.zero
	}

	select {
	case c.pipeline <- key:
		c.pending[key] = struct{}{}
	default:
		// fetcher is backed up, the caller asks again later
	}
	return c.zero
}

// Close releases resources used by the cache, clearing the cache
// and shutting down goroutines. It should be called when the
// Cache is no longer used.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	clear(c.cache)
	close(c.pipeline)
}
