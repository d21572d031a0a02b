// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import "github.com/spezifisch/stpod/player"

type episodeRequest struct {
	id   string
	play bool
}

type eventLoop struct {
	// latest controller snapshot, older ones are dropped
	states          chan player.State
	controlsVisible chan bool

	// episode switches are handled by background loop
	switchEpisode chan episodeRequest
	ended         chan struct{}
}

func (ui *Ui) initEventLoops() {
	ui.eventLoop = &eventLoop{
		states:          make(chan player.State, 1),
		controlsVisible: make(chan bool, 1),
		switchEpisode:   make(chan episodeRequest, 10),
		ended:           make(chan struct{}, 1),
	}
}

// pushState never blocks; it may run on the ui goroutine.
func (el *eventLoop) pushState(st player.State) {
	select {
	case <-el.states:
	default:
	}
	select {
	case el.states <- st:
	default:
	}
}

func (el *eventLoop) pushControlsVisible(visible bool) {
	select {
	case <-el.controlsVisible:
	default:
	}
	select {
	case el.controlsVisible <- visible:
	default:
	}
}

func (ui *Ui) runEventLoops() {
	go ui.guiEventLoop()
	go ui.backgroundEventLoop()
}

// handle ui updates
func (ui *Ui) guiEventLoop() {
	var lastDuration float64

	for {
		select {
		case msg := <-ui.logger.Prints:
			// handle log page output
			ui.logPage.Print(msg)

		case st := <-ui.eventLoop.states:
			ui.app.QueueUpdateDraw(func() {
				ui.renderState(st)
			})

			if ui.mprisPlayer != nil {
				ui.mprisPlayer.OnStateChange(st)
				if durationLearned(lastDuration, st.Duration) {
					ui.mprisPlayer.OnEpisodeChange(ui.currentEpisode(), ui.catalog.Series.Author, st.Duration)
				}
			}
			lastDuration = st.Duration

		case visible := <-ui.eventLoop.controlsVisible:
			ui.app.QueueUpdateDraw(func() {
				ui.playerPage.SetControlsVisible(visible)
			})
		}
	}
}

// durationLearned reports whether a state carries a new, known episode
// length that remote metadata should pick up.
func durationLearned(last, current float64) bool {
	return current > 0 && current != last
}

// loop for blocking background tasks that would otherwise block the ui
func (ui *Ui) backgroundEventLoop() {
	for {
		select {
		case req := <-ui.eventLoop.switchEpisode:
			ui.loadEpisode(req)

		case <-ui.eventLoop.ended:
			if !ui.continuous {
				continue
			}
			current := ui.currentEpisode()
			if next, ok := ui.catalog.Next(current.ID); ok && ui.catalog.Index(next.ID) > ui.catalog.Index(current.ID) {
				ui.logger.Printf("continuing with episode %s", next.ID)
				ui.loadEpisode(episodeRequest{id: next.ID, play: true})
			}
		}
	}
}

// episodeEndWatcher forwards the end of an episode to the background loop.
type episodeEndWatcher struct {
	ended chan<- struct{}
}

var _ player.MediaListener = episodeEndWatcher{}

func (w episodeEndWatcher) OnPositionUpdate(float64)            {}
func (w episodeEndWatcher) OnMetadataLoaded(float64)            {}
func (w episodeEndWatcher) OnBufferProgress([]player.TimeRange) {}
func (w episodeEndWatcher) OnPauseChange(bool)                  {}

func (w episodeEndWatcher) OnEnded() {
	select {
	case w.ended <- struct{}{}:
	default:
	}
}
