// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/rivo/tview"
)

type AboutPage struct {
	Root *tview.Flex

	seriesText *tview.TextView
}

func (ui *Ui) createAboutPage() *AboutPage {
	aboutPage := AboutPage{}

	aboutPage.seriesText = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true).
		SetText(formatSeries(ui.catalog.Series))
	aboutPage.seriesText.SetBorder(true).SetTitle(" About ")

	aboutPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(aboutPage.seriesText, 0, 1, true)

	return &aboutPage
}
