// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
)

type trackCell int

const (
	cellEmpty trackCell = iota
	cellBuffered
	cellPlayed
	cellMarker
	cellHover
)

// trackCells lays out one row of the seek track. Later layers win: hover
// over markers over played over buffered.
func trackCells(width int, st player.State, chapters []podcast.Chapter) []trackCell {
	if width <= 0 {
		return nil
	}
	cells := make([]trackCell, width)

	played := cellsFor(st.Progress(), width)
	buffered := cellsFor(st.BufferedPercent/100, width)
	for i := range cells {
		switch {
		case i < played:
			cells[i] = cellPlayed
		case i < buffered:
			cells[i] = cellBuffered
		}
	}

	for _, m := range player.ChapterMarkers(chapters, st.Duration) {
		// the first chapter usually starts at 0 and would only hide the playhead
		if m == 0 {
			continue
		}
		cells[columnFor(m, width)] = cellMarker
	}

	if st.Hover != nil {
		cells[min(st.Hover.X, width-1)] = cellHover
	}
	return cells
}

func cellsFor(fraction float64, width int) int {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return width
	}
	return int(math.Round(fraction * float64(width)))
}

func columnFor(fraction float64, width int) int {
	return min(int(fraction*float64(width)), width-1)
}

// hoverLabel is the tooltip text for a hover preview.
func hoverLabel(hover *player.HoverPreview, chapters []podcast.Chapter) string {
	label := player.FormatTime(hover.Time)
	if hover.Chapter >= 0 && hover.Chapter < len(chapters) {
		label += " " + chapters[hover.Chapter].Title
	}
	return label
}

// labelStart places a label of length n centered on column x inside width.
func labelStart(x, n, width int) int {
	start := x - n/2
	if start+n > width {
		start = width - n
	}
	return max(start, 0)
}

// SeekBar draws the playback track on its first row and the hover
// preview on the second.
type SeekBar struct {
	*tview.Box

	state    player.State
	chapters []podcast.Chapter

	playedStyle   tcell.Style
	bufferedStyle tcell.Style
	emptyStyle    tcell.Style
	markerStyle   tcell.Style
	hoverStyle    tcell.Style
}

func NewSeekBar() *SeekBar {
	return &SeekBar{
		Box: tview.NewBox(),

		playedStyle:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
		bufferedStyle: tcell.StyleDefault.Foreground(tcell.ColorSilver),
		emptyStyle:    tcell.StyleDefault.Foreground(tcell.ColorGray),
		markerStyle:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		hoverStyle:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	}
}

func (s *SeekBar) SetState(st player.State, chapters []podcast.Chapter) {
	s.state = st
	s.chapters = chapters
}

// Track returns the screen area the pointer maps onto.
func (s *SeekBar) Track() player.Rect {
	x, _, width, _ := s.GetInnerRect()
	return player.Rect{Left: x, Width: width}
}

// OnTrack reports whether the screen position is on the track row.
func (s *SeekBar) OnTrack(x, y int) bool {
	bx, by, width, height := s.GetInnerRect()
	return height > 0 && y == by && x >= bx && x < bx+width
}

func (s *SeekBar) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)
	x, y, width, height := s.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	for i, cell := range trackCells(width, s.state, s.chapters) {
		r, style := '─', s.emptyStyle
		switch cell {
		case cellBuffered:
			r, style = '━', s.bufferedStyle
		case cellPlayed:
			r, style = '━', s.playedStyle
		case cellMarker:
			r, style = '┃', s.markerStyle
		case cellHover:
			r, style = '●', s.hoverStyle
		}
		screen.SetContent(x+i, y, r, nil, style)
	}

	if s.state.Hover == nil || height < 2 {
		return
	}
	label := hoverLabel(s.state.Hover, s.chapters)
	start := labelStart(min(s.state.Hover.X, width-1), tview.TaggedStringWidth(label), width)
	tview.Print(screen, tview.Escape(label), x+start, y+1, width-start, tview.AlignLeft, tcell.ColorWhite)
}
