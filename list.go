// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spezifisch/stpod/podcast"
)

// renderCatalogTable is the --list output.
func renderCatalogTable(catalog *podcast.Catalog) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(catalog.Series.Title)

	tw.AppendHeader(table.Row{"#", "Title", "Date", "Duration", "Chapters"})
	for _, episode := range catalog.Episodes {
		tw.AppendRow(table.Row{
			strconv.Itoa(episode.Number),
			episode.Title,
			episode.Date,
			episode.Duration,
			strconv.Itoa(len(episode.Chapters)),
		})
	}
	tw.AppendFooter(table.Row{"", strconv.Itoa(len(catalog.Episodes)) + " episodes", "", "", ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
