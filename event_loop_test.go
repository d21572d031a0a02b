package main

import (
	"testing"

	"github.com/spezifisch/stpod/player"
	"github.com/stretchr/testify/assert"
)

func newTestEventLoop() *eventLoop {
	ui := &Ui{}
	ui.initEventLoops()
	return ui.eventLoop
}

func TestPushStateKeepsLatest(t *testing.T) {
	el := newTestEventLoop()

	el.pushState(player.State{Position: 1})
	el.pushState(player.State{Position: 2})
	el.pushState(player.State{Position: 3})

	assert.Equal(t, 3.0, (<-el.states).Position)
	select {
	case st := <-el.states:
		t.Errorf("stale state left behind: %+v", st)
	default:
	}
}

func TestPushControlsVisibleKeepsLatest(t *testing.T) {
	el := newTestEventLoop()

	el.pushControlsVisible(false)
	el.pushControlsVisible(true)
	assert.True(t, <-el.controlsVisible)
}

func TestEpisodeEndWatcher(t *testing.T) {
	el := newTestEventLoop()
	w := episodeEndWatcher{ended: el.ended}

	w.OnPositionUpdate(3)
	w.OnEnded()
	// a second end while the first is pending must not block
	w.OnEnded()

	assert.Len(t, el.ended, 1)
}

func TestDurationLearned(t *testing.T) {
	assert.True(t, durationLearned(0, 120))
	assert.True(t, durationLearned(120, 300), "next episode")
	assert.False(t, durationLearned(120, 120))
	assert.False(t, durationLearned(120, 0), "reset by a load")
}
