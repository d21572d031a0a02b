// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/stpod/podcast"
)

const volumeStep = 0.05

// typing reports whether keys should go to a text input instead of the
// global bindings.
func (ui *Ui) typing() bool {
	if ui.helpWidget.visible {
		return true
	}
	_, ok := ui.app.GetFocus().(*tview.InputField)
	return ok
}

func (ui *Ui) handlePageInput(event *tcell.EventKey) *tcell.EventKey {
	if ui.typing() {
		return event
	}

	cmd := navigationCommand(event)
	if page, ok := pageForCommand(cmd); ok {
		ui.ShowPage(page)
		return nil
	}

	switch cmd {
	case cmdFilter:
		ui.ShowPage(PageEpisodes)
		ui.episodesPage.FocusFilter()

	case cmdHelp:
		ui.ShowHelp()

	case cmdQuit:
		ui.Quit()

	default:
		return event
	}

	return nil
}

func (ui *Ui) handlePlayerInput(event *tcell.EventKey) *tcell.EventKey {
	if ui.typing() {
		return event
	}

	switch playerCommand(event) {
	case cmdTogglePlay:
		ui.controller.TogglePlay()

	case cmdSkipForward:
		ui.controller.SkipForward(ui.skip)

	case cmdSkipBackward:
		ui.controller.SkipBackward(ui.skip)

	case cmdToggleMute:
		ui.controller.ToggleMute()

	case cmdVolumeDown:
		ui.controller.AdjustVolume(-volumeStep)

	case cmdVolumeUp:
		ui.controller.AdjustVolume(volumeStep)

	case cmdCycleRate:
		rate := ui.controller.CyclePlaybackRate()
		ui.logger.Printf("playback rate %gx", rate)

	case cmdNextEpisode:
		ui.NextEpisode()

	case cmdPreviousEpisode:
		ui.PreviousEpisode()

	default:
		return event
	}

	return nil
}

// handleMouse drives the hover preview, click-to-seek and the controls
// hover state from pointer events over the player page.
func (ui *Ui) handleMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	if event == nil {
		return event, action
	}
	if name, _ := ui.pages.GetFrontPage(); name != PagePlayer {
		return event, action
	}

	x, y := event.Position()
	ui.controller.Controls().SetHovering(ui.playerPage.InPlayerPanel(x, y))

	seekBar := ui.playerPage.seekBar
	if !seekBar.OnTrack(x, y) {
		if ui.controller.State().Hover != nil {
			ui.controller.ClearHoverPreview()
		}
		return event, action
	}

	track := seekBar.Track()
	ui.controller.UpdateHoverPreview(x, track)
	if action == tview.MouseLeftClick {
		ui.controller.SeekByPointer(x, track)
		return nil, action
	}
	return event, action
}

func (ui *Ui) ShowPage(name string) {
	if name != PagePlayer {
		ui.controller.Controls().SetHovering(false)
		ui.controller.ClearHoverPreview()
	}
	ui.pages.SwitchToPage(name)
	ui.menuWidget.SetActivePage(name)
	_, prim := ui.pages.GetFrontPage()
	ui.app.SetFocus(prim)
}

// PlayEpisode switches to the episode with the given id; play starts it.
// Picking an episode by hand leaves it paused, only continuous playback
// starts the next one on its own.
func (ui *Ui) PlayEpisode(id string, play bool) {
	ui.eventLoop.switchEpisode <- episodeRequest{id: id, play: play}
}

func (ui *Ui) NextEpisode() {
	if next, ok := ui.catalog.Next(ui.currentEpisode().ID); ok {
		ui.PlayEpisode(next.ID, false)
	}
}

func (ui *Ui) PreviousEpisode() {
	if prev, ok := ui.catalog.Previous(ui.currentEpisode().ID); ok {
		ui.PlayEpisode(prev.ID, false)
	}
}

// loadEpisode switches the media source; runs on the background loop.
func (ui *Ui) loadEpisode(req episodeRequest) {
	episode, ok := ui.catalog.Get(req.id)
	if !ok {
		ui.logger.Printf("loadEpisode: unknown episode %s", req.id)
		return
	}

	ui.controller.Load(episode)
	if err := ui.media.Load(episode.AudioURL); err != nil {
		ui.logger.PrintError("loadEpisode", err)
		ui.app.QueueUpdateDraw(func() {
			ui.showMessageBox("Could not load " + episode.Title)
		})
		return
	}
	ui.setCurrentEpisode(episode)
	ui.logger.Printf("loaded episode %s", episode.ID)

	if req.play {
		ui.controller.SetPlaying(true)
	}
	if ui.mprisPlayer != nil {
		ui.mprisPlayer.OnEpisodeChange(episode, ui.catalog.Series.Author, 0)
	}

	upNext := ui.catalog.UpNext(episode.ID, upNextCount)
	ui.app.QueueUpdateDraw(func() {
		ui.playerPage.SetEpisode(episode, ui.catalog.Series, upNext)
		ui.episodesPage.SetCurrent(episode.ID)
		ui.renderState(ui.controller.State())
	})
}

func (ui *Ui) artworkFor(episode podcast.Episode) image.Image {
	if ui.hideArtwork || episode.ThumbnailURL == "" {
		return nil
	}
	return ui.artwork.Get(episode.ThumbnailURL)
}

func (ui *Ui) Quit() {
	for i := len(ui.releases) - 1; i >= 0; i-- {
		ui.releases[i]()
	}
	ui.releases = nil

	ui.controller.Controls().Close()
	ui.artwork.Close()
	ui.media.Quit()
	ui.app.Stop()
}
