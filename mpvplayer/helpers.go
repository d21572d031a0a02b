// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/spezifisch/stpod/player"
	"github.com/supersonic-app/go-mpv"
)

var errNilProperty = errors.New("nil value")

func nilProperty(name string) error {
	return errors.Wrapf(errNilProperty, "property %s", name)
}

func (p *Player) getPropertyFloat64(name string) (float64, error) {
	value, err := p.instance.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	} else if value == nil {
		return 0, nilProperty(name)
	}
	return value.(float64), err
}

func (p *Player) getPropertyBool(name string) (bool, error) {
	value, err := p.instance.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	} else if value == nil {
		return false, nilProperty(name)
	}
	return value.(bool), err
}

// mpv volume is a percentage
func volumeToMpv(volume float64) float64 {
	return math.Round(math.Max(0, math.Min(1, volume)) * 100)
}

func bufferedRanges(position, cacheEnd, duration float64) []player.TimeRange {
	if duration <= 0 || cacheEnd <= 0 {
		return nil
	}
	if position < 0 {
		position = 0
	}
	if cacheEnd > duration {
		cacheEnd = duration
	}
	if cacheEnd < position {
		return nil
	}
	return []player.TimeRange{{Start: position, End: cacheEnd}}
}
