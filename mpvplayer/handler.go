// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"github.com/spezifisch/stpod/player"
	"github.com/supersonic-app/go-mpv"
)

// reply userdata of the observed properties
const (
	observeTimePos uint64 = iota + 1
	observeDuration
	observeCacheTime
	observePause
)

// EventLoop translates mpv events into MediaListener notifications until Quit.
func (p *Player) EventLoop() {
	observed := []struct {
		id   uint64
		name string
	}{
		{observeTimePos, "time-pos"},
		{observeDuration, "duration"},
		{observeCacheTime, "demuxer-cache-time"},
		{observePause, "pause"},
	}
	for _, o := range observed {
		format := mpv.FORMAT_DOUBLE
		if o.id == observePause {
			format = mpv.FORMAT_FLAG
		}
		if err := p.instance.ObserveProperty(o.id, o.name, format); err != nil {
			p.logger.PrintError("Observe "+o.name, err)
		}
	}

	for evt := range p.mpvEvents {
		if evt == nil {
			// quit signal
			break
		}

		switch evt.Event_Id {
		case mpv.EVENT_PROPERTY_CHANGE:
			p.handlePropertyChange(evt.Reply_Userdata)

		case mpv.EVENT_START_FILE:
			p.mu.Lock()
			p.replaceInProgress = false
			p.mu.Unlock()

		case mpv.EVENT_FILE_LOADED:
			if duration := p.Duration(); duration > 0 {
				p.notify(func(l player.MediaListener) { l.OnMetadataLoaded(duration) })
			}

		case mpv.EVENT_END_FILE:
			p.mu.Lock()
			replacing := p.replaceInProgress
			p.mu.Unlock()
			// the previous episode ending because we loaded a new one is no news
			if !replacing {
				p.logger.Print("mpv.EventLoop: end of episode")
				p.notify(func(l player.MediaListener) { l.OnEnded() })
			}

		case mpv.EVENT_IDLE, mpv.EVENT_NONE:
			continue

		default:
			p.logger.Printf("mpv.EventLoop: unhandled event id %v", evt.Event_Id)
		}
	}
}

func (p *Player) handlePropertyChange(id uint64) {
	switch id {
	case observeTimePos:
		pos, err := p.getPropertyFloat64("time-pos")
		if err != nil {
			// unavailable between episodes
			return
		}
		p.notify(func(l player.MediaListener) { l.OnPositionUpdate(pos) })

	case observeDuration:
		if duration := p.Duration(); duration > 0 {
			p.notify(func(l player.MediaListener) { l.OnMetadataLoaded(duration) })
		}

	case observeCacheTime:
		ranges := p.Buffered()
		p.notify(func(l player.MediaListener) { l.OnBufferProgress(ranges) })

	case observePause:
		paused := p.Paused()
		p.notify(func(l player.MediaListener) { l.OnPauseChange(paused) })
	}
}

func (p *Player) notify(fn func(l player.MediaListener)) {
	p.mu.Lock()
	listeners := make([]player.MediaListener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		fn(l)
	}
}
