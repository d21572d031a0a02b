package main

import (
	"testing"

	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
	"github.com/stretchr/testify/assert"
)

func TestTrackCellsProgressAndBuffer(t *testing.T) {
	st := player.State{Position: 25, Duration: 100, BufferedPercent: 50}
	cells := trackCells(10, st, nil)

	want := []trackCell{
		cellPlayed, cellPlayed, cellPlayed,
		cellBuffered, cellBuffered,
		cellEmpty, cellEmpty, cellEmpty, cellEmpty, cellEmpty,
	}
	assert.Equal(t, want, cells)
}

func TestTrackCellsUnknownDuration(t *testing.T) {
	cells := trackCells(4, player.State{Position: 30}, []podcast.Chapter{{Title: "b", Start: 10}})
	assert.Equal(t, []trackCell{cellEmpty, cellEmpty, cellEmpty, cellEmpty}, cells)
	assert.Nil(t, trackCells(0, player.State{}, nil))
}

func TestTrackCellsMarkersAndHover(t *testing.T) {
	chapters := []podcast.Chapter{{Title: "a", Start: 0}, {Title: "b", Start: 50}, {Title: "c", Start: 100}}
	st := player.State{Position: 100, Duration: 100}

	cells := trackCells(10, st, chapters)
	assert.Equal(t, cellPlayed, cells[0], "a marker at 0 is not drawn")
	assert.Equal(t, cellMarker, cells[5])
	assert.Equal(t, cellMarker, cells[9], "a marker at the end stays inside the track")

	st.Hover = &player.HoverPreview{Time: 100, X: 10, Chapter: 2}
	cells = trackCells(10, st, chapters)
	assert.Equal(t, cellHover, cells[9])
}

func TestHoverLabel(t *testing.T) {
	chapters := []podcast.Chapter{{Title: "Intro", Start: 0}, {Title: "Main", Start: 64}}

	assert.Equal(t, "1:10 Main", hoverLabel(&player.HoverPreview{Time: 70, Chapter: 1}, chapters))
	assert.Equal(t, "0:05", hoverLabel(&player.HoverPreview{Time: 5, Chapter: -1}, chapters))
	assert.Equal(t, "0:05", hoverLabel(&player.HoverPreview{Time: 5, Chapter: 3}, chapters))
}

func TestLabelStart(t *testing.T) {
	assert.Equal(t, 0, labelStart(1, 6, 40))
	assert.Equal(t, 17, labelStart(20, 6, 40))
	assert.Equal(t, 34, labelStart(39, 6, 40))
	assert.Equal(t, 0, labelStart(3, 50, 40))
}
