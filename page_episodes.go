// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/stpod/podcast"
)

type EpisodesPage struct {
	Root *tview.Flex

	filterField *tview.InputField
	episodeList *tview.List

	// data
	shown     []podcast.Episode
	currentID string

	// external refs
	ui *Ui
}

func (ui *Ui) createEpisodesPage() *EpisodesPage {
	episodesPage := EpisodesPage{
		ui: ui,
	}

	episodesPage.filterField = tview.NewInputField().
		SetLabel("filter: ").
		SetFieldWidth(0).
		SetChangedFunc(func(text string) {
			episodesPage.applyFilter(text)
		})
	episodesPage.filterField.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			episodesPage.filterField.SetText("")
			ui.app.SetFocus(episodesPage.episodeList)
		case tcell.KeyEnter, tcell.KeyTab:
			ui.app.SetFocus(episodesPage.episodeList)
		}
	})

	episodesPage.episodeList = tview.NewList().
		SetHighlightFullLine(true).
		SetSecondaryTextColor(tcell.ColorGray)
	episodesPage.episodeList.SetBorder(true).SetTitle(" Episodes ")

	episodesPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(episodesPage.episodeList, 0, 1, true).
		AddItem(episodesPage.filterField, 1, 0, false)

	episodesPage.applyFilter("")

	return &episodesPage
}

func (e *EpisodesPage) applyFilter(query string) {
	e.shown = e.ui.catalog.Filter(query)
	e.render()
}

func (e *EpisodesPage) render() {
	selected := e.episodeList.GetCurrentItem()
	e.episodeList.Clear()
	for _, episode := range e.shown {
		id := episode.ID
		secondary := fmt.Sprintf("    %s  %s", episode.Date, episode.Duration)
		e.episodeList.AddItem(formatEpisodeEntry(episode, id == e.currentID), secondary, 0, func() {
			e.ui.PlayEpisode(id, false)
			e.ui.ShowPage(PagePlayer)
		})
	}
	if selected < e.episodeList.GetItemCount() {
		e.episodeList.SetCurrentItem(selected)
	}
}

// SetCurrent marks the loaded episode.
func (e *EpisodesPage) SetCurrent(id string) {
	e.currentID = id
	e.render()
}

// FocusFilter moves the focus into the filter input.
func (e *EpisodesPage) FocusFilter() {
	e.ui.app.SetFocus(e.filterField)
}
