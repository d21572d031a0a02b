// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"

	"github.com/rivo/tview"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
)

const upNextCount = 3

type PlayerPage struct {
	Root *tview.Flex

	artwork     *tview.Image
	details     *tview.TextView
	chapterList *tview.List
	upNextList  *tview.List

	// seek bar and controls bar, the area that keeps the controls visible
	playerPanel *tview.Flex
	seekBar     *SeekBar
	controls    *tview.TextView

	// data
	episode        podcast.Episode
	upNext         []podcast.Episode
	currentChapter int

	// external refs
	ui *Ui
}

func (ui *Ui) createPlayerPage() *PlayerPage {
	playerPage := PlayerPage{
		ui:             ui,
		currentChapter: -1,
	}

	playerPage.artwork = tview.NewImage()

	playerPage.details = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	playerPage.details.SetBorder(true).SetTitle(" Episode ")

	playerPage.chapterList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	playerPage.chapterList.SetBorder(true).SetTitle(" Chapters ")

	playerPage.upNextList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	playerPage.upNextList.SetBorder(true).SetTitle(" Up next ")

	playerPage.seekBar = NewSeekBar()
	playerPage.controls = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)

	playerPage.playerPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(playerPage.seekBar, 2, 0, false).
		AddItem(playerPage.controls, 1, 0, false)

	sideColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(playerPage.chapterList, 0, 1, true).
		AddItem(playerPage.upNextList, upNextCount+2, 0, false)

	topFlex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(playerPage.artwork, 0, 1, false).
		AddItem(playerPage.details, 0, 2, false).
		AddItem(sideColumn, 0, 2, true)

	playerPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topFlex, 0, 1, true).
		AddItem(playerPage.playerPanel, 3, 0, false)

	// escape moves between chapters and up next
	playerPage.chapterList.SetDoneFunc(func() {
		ui.app.SetFocus(playerPage.upNextList)
	})
	playerPage.upNextList.SetDoneFunc(func() {
		ui.app.SetFocus(playerPage.chapterList)
	})

	return &playerPage
}

// SetEpisode shows a newly loaded episode. Artwork that is not cached yet
// arrives later through SetArtwork.
func (p *PlayerPage) SetEpisode(episode podcast.Episode, series podcast.Series, upNext []podcast.Episode) {
	p.episode = episode
	p.upNext = upNext
	p.currentChapter = -1

	p.details.SetText(formatEpisodeDetails(episode, series)).ScrollToBeginning()
	p.SetArtwork(episode.ThumbnailURL, p.ui.artworkFor(episode))

	p.chapterList.Clear()
	for _, chapter := range episode.Chapters {
		start := chapter.Start
		p.chapterList.AddItem(formatChapterEntry(chapter, false), "", 0, func() {
			p.ui.controller.Seek(start)
		})
	}

	p.upNextList.Clear()
	for _, next := range upNext {
		id := next.ID
		p.upNextList.AddItem(formatEpisodeEntry(next, false), "", 0, func() {
			p.ui.PlayEpisode(id, false)
		})
	}
}

// SetArtwork shows art if it belongs to the current episode.
func (p *PlayerPage) SetArtwork(url string, art image.Image) {
	if url != p.episode.ThumbnailURL || p.ui.hideArtwork {
		return
	}
	p.artwork.SetImage(art)
}

// Update renders a state snapshot.
func (p *PlayerPage) Update(st player.State, chapters []podcast.Chapter, chapter int) {
	p.seekBar.SetState(st, chapters)
	p.controls.SetText(formatControls(st, chapters, chapter))

	if chapter != p.currentChapter && len(chapters) == p.chapterList.GetItemCount() {
		if p.currentChapter >= 0 && p.currentChapter < len(chapters) {
			p.chapterList.SetItemText(p.currentChapter, formatChapterEntry(chapters[p.currentChapter], false), "")
		}
		if chapter >= 0 {
			p.chapterList.SetItemText(chapter, formatChapterEntry(chapters[chapter], true), "")
		}
		p.currentChapter = chapter
	}
}

// SetControlsVisible shows or hides the controls bar. The seek bar stays.
func (p *PlayerPage) SetControlsVisible(visible bool) {
	height := 0
	if visible {
		height = 1
	}
	p.playerPanel.ResizeItem(p.controls, height, 0)
}

// InPlayerPanel reports whether the screen position is over the seek bar or
// the controls.
func (p *PlayerPage) InPlayerPanel(x, y int) bool {
	return p.playerPanel.InRect(x, y)
}
