// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"strings"

	"github.com/rivo/tview"
)

type HelpWidget struct {
	Root *tview.Flex

	helpBook                *tview.Flex
	leftColumn, rightColumn *tview.TextView

	// visible reflects whether the modal is shown
	visible bool

	// external references
	ui *Ui
}

func (ui *Ui) createHelpWidget() (m *HelpWidget) {
	m = &HelpWidget{
		ui: ui,
	}

	// two help columns side by side
	m.leftColumn = tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true)
	m.rightColumn = tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true)
	m.helpBook = tview.NewFlex().
		SetDirection(tview.FlexColumn)

	m.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.helpBook, 0, 1, false)

	m.Root.Box.SetBorder(true).SetTitle(" Help (ESC to close) ")

	return
}

func helpText(context string) (left, right string) {
	left = "[::b]Playback[::-]\n" + tview.Escape(strings.TrimSpace(helpPlayback))

	switch context {
	case PagePlayer:
		right = "[::b]Player[::-]\n" + tview.Escape(strings.TrimSpace(helpPagePlayer))

	case PageEpisodes:
		right = "[::b]Episodes[::-]\n" + tview.Escape(strings.TrimSpace(helpPageEpisodes))
	}
	return
}

func (h *HelpWidget) RenderHelp(context string) {
	leftText, rightText := helpText(context)
	h.leftColumn.SetText(leftText)
	h.rightColumn.SetText(rightText)

	h.helpBook.Clear()
	if rightText != "" {
		h.helpBook.AddItem(h.leftColumn, 38, 0, false).
			AddItem(h.rightColumn, 0, 1, true) // gets focus for scrolling
	} else {
		h.helpBook.AddItem(h.leftColumn, 0, 1, false)
	}
}
