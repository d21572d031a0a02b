package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPlayerCommand(t *testing.T) {
	tests := []struct {
		event *tcell.EventKey
		want  command
	}{
		{runeKey(' '), cmdTogglePlay},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), cmdSkipForward},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), cmdSkipBackward},
		{runeKey('m'), cmdToggleMute},
		{runeKey('M'), cmdToggleMute},
		{runeKey('-'), cmdVolumeDown},
		{runeKey('='), cmdVolumeUp},
		{runeKey('+'), cmdVolumeUp},
		{runeKey('s'), cmdCycleRate},
		{runeKey('n'), cmdNextEpisode},
		{runeKey('p'), cmdPreviousEpisode},
		{runeKey('x'), cmdNone},
		{runeKey('1'), cmdNone},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), cmdNone},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), cmdNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, playerCommand(tt.event), "key %s", tt.event.Name())
	}
}

func TestNavigationCommand(t *testing.T) {
	assert.Equal(t, cmdPagePlayer, navigationCommand(runeKey('1')))
	assert.Equal(t, cmdPageEpisodes, navigationCommand(runeKey('2')))
	assert.Equal(t, cmdPageAbout, navigationCommand(runeKey('3')))
	assert.Equal(t, cmdPageLog, navigationCommand(runeKey('4')))
	assert.Equal(t, cmdFilter, navigationCommand(runeKey('/')))
	assert.Equal(t, cmdHelp, navigationCommand(runeKey('?')))
	assert.Equal(t, cmdQuit, navigationCommand(runeKey('Q')))
	assert.Equal(t, cmdNone, navigationCommand(runeKey('q')))
	assert.Equal(t, cmdNone, navigationCommand(runeKey(' ')))
	assert.Equal(t, cmdNone, navigationCommand(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestKeyBindingsOrder(t *testing.T) {
	var k keyBindings
	var calls []string

	releaseOuter := k.Bind(func(event *tcell.EventKey) *tcell.EventKey {
		calls = append(calls, "outer")
		return event
	})
	releaseInner := k.Bind(func(event *tcell.EventKey) *tcell.EventKey {
		calls = append(calls, "inner")
		if event.Rune() == ' ' {
			return nil
		}
		return event
	})

	// consumed by the newest binding
	assert.Nil(t, k.Handle(runeKey(' ')))
	assert.Equal(t, []string{"inner"}, calls)

	calls = nil
	ev := runeKey('z')
	assert.Same(t, ev, k.Handle(ev))
	assert.Equal(t, []string{"inner", "outer"}, calls)

	releaseInner()
	releaseInner()
	assert.Equal(t, 1, k.Len())

	calls = nil
	assert.NotNil(t, k.Handle(runeKey(' ')))
	assert.Equal(t, []string{"outer"}, calls)

	releaseOuter()
	assert.Equal(t, 0, k.Len())
	ev = runeKey(' ')
	assert.Same(t, ev, k.Handle(ev))
}
