// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
)

func makeModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func formatPlayerStatus(st player.State) string {
	position := int64(st.Position)
	if position < 0 {
		position = 0
	}

	duration := int64(st.Duration)
	if duration < 0 {
		duration = 0
	}

	positionMin, positionSec := secondsToMinAndSec(position)
	durationMin, durationSec := secondsToMinAndSec(duration)

	volume := fmt.Sprintf("%d%%", volumePercent(st.Volume))
	if st.Muted {
		volume = "mute"
	}

	return fmt.Sprintf("[%s][::b][%02d:%02d/%02d:%02d]", volume, positionMin, positionSec, durationMin, durationSec)
}

func formatEpisodeForStatusBar(episode podcast.Episode) (text string) {
	if episode.Title != "" {
		text += "[::-] [white]" + tview.Escape(episode.Title)
	}
	if episode.Number > 0 {
		text += fmt.Sprintf(" [gray]#%d", episode.Number)
	}
	return
}

func formatStartStopStatus(st player.State, episode podcast.Episode) string {
	switch {
	case episode.ID == "":
		return "[red::b]Stopped[::-]"
	case st.IsPlaying:
		return "[green::b]Playing[::-]" + formatEpisodeForStatusBar(episode)
	default:
		return "[yellow::b]Paused[::-]" + formatEpisodeForStatusBar(episode)
	}
}

// formatControls renders the controls bar: transport, time, volume, rate
// and the current chapter.
func formatControls(st player.State, chapters []podcast.Chapter, chapter int) string {
	var b strings.Builder

	if st.IsPlaying {
		b.WriteString("[::b]❚❚ pause[::-]")
	} else {
		b.WriteString("[::b]▶ play[::-]")
	}
	b.WriteString("  [gray]«5[-]  ")
	fmt.Fprintf(&b, "%s / %s", player.FormatTime(st.Position), player.FormatTime(st.Duration))
	b.WriteString("  [gray]5»[-]  ")

	if st.Muted {
		b.WriteString("[red]muted[-]")
	} else {
		fmt.Fprintf(&b, "vol %d%%", volumePercent(st.Volume))
	}
	fmt.Fprintf(&b, "  %gx", st.Rate)

	if st.Duration > 0 && chapter >= 0 && chapter < len(chapters) {
		b.WriteString("  [yellow]" + tview.Escape(chapters[chapter].Title) + "[-]")
	}
	return b.String()
}

func formatEpisodeDetails(episode podcast.Episode, series podcast.Series) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n", tview.Escape(episode.Title))
	fmt.Fprintf(&b, "[gray]%s · episode %d", tview.Escape(series.Title), episode.Number)
	if episode.Date != "" {
		b.WriteString(" · " + tview.Escape(episode.Date))
	}
	if episode.Duration != "" {
		b.WriteString(" · " + tview.Escape(episode.Duration))
	}
	b.WriteString("[-]\n\n")
	b.WriteString(tview.Escape(episode.Description))
	return b.String()
}

func formatChapterEntry(chapter podcast.Chapter, current bool) string {
	marker := "  "
	if current {
		marker = "[green]▶[-] "
	}
	return fmt.Sprintf("%s[gray]%s[-] %s", marker, player.FormatTime(chapter.Start), tview.Escape(chapter.Title))
}

func formatEpisodeEntry(episode podcast.Episode, current bool) string {
	marker := "  "
	if current {
		marker = "[green]▶[-] "
	}
	return fmt.Sprintf("%s[gray]#%d[-] %s", marker, episode.Number, tview.Escape(episode.Title))
}

func formatSeries(series podcast.Series) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n", tview.Escape(series.Title))
	if series.Author != "" {
		fmt.Fprintf(&b, "[gray]by[-] %s\n", tview.Escape(series.Author))
	}
	if len(series.Categories) > 0 {
		fmt.Fprintf(&b, "[gray]categories:[-] %s\n", tview.Escape(strings.Join(series.Categories, ", ")))
	}
	fmt.Fprintf(&b, "[gray]episodes:[-] %d\n\n", series.TotalEpisodes)
	b.WriteString(tview.Escape(series.Description))
	return b.String()
}
