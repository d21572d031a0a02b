// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spezifisch/stpod/logger"
	"github.com/spezifisch/stpod/player"
	"github.com/supersonic-app/go-mpv"
)

var ErrNothingLoaded = errors.New("no episode loaded")

var _ player.MediaElement = (*Player)(nil)

// Player is the libmpv backed media element. All methods are safe to call
// from any goroutine; listeners are notified from the EventLoop goroutine.
type Player struct {
	instance  *mpv.Mpv
	mpvEvents chan *mpv.Event
	logger    logger.LoggerInterface

	mu        sync.Mutex
	uri       string
	listeners map[int]player.MediaListener
	nextID    int

	// an END_FILE for the previous episode is expected while replacing
	replaceInProgress bool
}

func NewPlayer(logger logger.LoggerInterface) (p *Player, err error) {
	mpvInstance := mpv.Create()

	// TODO figure out what other mpv options we need
	if err = mpvInstance.SetOptionString("audio-display", "no"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}
	if err = mpvInstance.SetOptionString("video", "no"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}
	// metadata and buffering start right away, playback waits for Play
	if err = mpvInstance.SetOptionString("pause", "yes"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}

	if err = mpvInstance.Initialize(); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}

	p = &Player{
		instance:  mpvInstance,
		mpvEvents: make(chan *mpv.Event),
		logger:    logger,
		listeners: make(map[int]player.MediaListener),
	}

	go p.mpvEngineEventHandler(mpvInstance)
	return
}

func (p *Player) mpvEngineEventHandler(instance *mpv.Mpv) {
	for {
		evt := instance.WaitEvent(1)
		if evt != nil && evt.Event_Id == mpv.EVENT_SHUTDOWN {
			return
		}
		p.mpvEvents <- evt
	}
}

func (p *Player) Quit() {
	p.mpvEvents <- nil
	p.instance.TerminateDestroy()
}

// Load replaces the current source. Playback stays paused until Play.
func (p *Player) Load(uri string) error {
	p.mu.Lock()
	p.uri = uri
	p.replaceInProgress = true
	p.mu.Unlock()

	if err := p.instance.SetProperty("pause", mpv.FORMAT_FLAG, true); err != nil {
		p.logger.PrintError("Load: pause", err)
	}
	return p.instance.Command([]string{"loadfile", uri})
}

func (p *Player) Play() error {
	p.mu.Lock()
	uri := p.uri
	p.mu.Unlock()
	if uri == "" {
		return ErrNothingLoaded
	}

	// after the end of an episode mpv is idle; start it over
	if idle, err := p.getPropertyBool("idle-active"); err == nil && idle {
		if err := p.instance.Command([]string{"loadfile", uri}); err != nil {
			return errors.Wrap(err, "reload")
		}
	}
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, false)
}

func (p *Player) Pause() error {
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, true)
}

// Paused reports true when nothing is audible: paused, or idle without a file.
func (p *Player) Paused() bool {
	if idle, err := p.getPropertyBool("idle-active"); err == nil && idle {
		return true
	}
	paused, err := p.getPropertyBool("pause")
	if err != nil {
		return true
	}
	return paused
}

func (p *Player) SetPosition(seconds float64) error {
	return p.instance.Command([]string{"seek", strconv.FormatFloat(seconds, 'f', 3, 64), "absolute"})
}

func (p *Player) SetVolume(volume float64) error {
	return p.instance.SetProperty("volume", mpv.FORMAT_DOUBLE, volumeToMpv(volume))
}

func (p *Player) SetMuted(muted bool) error {
	return p.instance.SetProperty("mute", mpv.FORMAT_FLAG, muted)
}

func (p *Player) SetPlaybackRate(rate float64) error {
	return p.instance.SetProperty("speed", mpv.FORMAT_DOUBLE, rate)
}

func (p *Player) Duration() float64 {
	duration, err := p.getPropertyFloat64("duration")
	if err != nil {
		return 0
	}
	return duration
}

// TimePos is the current playback position in seconds.
func (p *Player) TimePos() float64 {
	pos, err := p.getPropertyFloat64("time-pos")
	if err != nil {
		return 0
	}
	return pos
}

// Buffered reports the span from the playback position to the end of the
// demuxer cache. Sources mpv doesn't cache (local files) count as fully
// buffered.
func (p *Player) Buffered() []player.TimeRange {
	duration := p.Duration()
	if duration <= 0 {
		return nil
	}
	cacheEnd, err := p.getPropertyFloat64("demuxer-cache-time")
	if err != nil {
		cacheEnd = duration
	}
	return bufferedRanges(p.TimePos(), cacheEnd, duration)
}

func (p *Player) Subscribe(l player.MediaListener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}
