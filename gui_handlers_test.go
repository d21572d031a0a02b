package main

import (
	"testing"

	"github.com/spezifisch/stpod/podcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigationUi(t *testing.T) *Ui {
	t.Helper()
	ui := &Ui{
		catalog: &podcast.Catalog{Episodes: []podcast.Episode{
			{ID: "ep-1"}, {ID: "ep-2"}, {ID: "ep-3"},
		}},
	}
	ui.initEventLoops()
	ui.setCurrentEpisode(ui.catalog.Episodes[1])
	return ui
}

func TestEpisodeNavigationDoesNotAutoplay(t *testing.T) {
	ui := newNavigationUi(t)

	ui.NextEpisode()
	ui.PreviousEpisode()

	require.Len(t, ui.eventLoop.switchEpisode, 2)
	next := <-ui.eventLoop.switchEpisode
	prev := <-ui.eventLoop.switchEpisode
	assert.Equal(t, episodeRequest{id: "ep-3", play: false}, next)
	assert.Equal(t, episodeRequest{id: "ep-1", play: false}, prev)
}
