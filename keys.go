// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

type command int

const (
	cmdNone command = iota
	cmdTogglePlay
	cmdSkipForward
	cmdSkipBackward
	cmdToggleMute
	cmdVolumeDown
	cmdVolumeUp
	cmdCycleRate
	cmdNextEpisode
	cmdPreviousEpisode
	cmdFilter
	cmdHelp
	cmdQuit
	cmdPagePlayer
	cmdPageEpisodes
	cmdPageAbout
	cmdPageLog
)

// playerCommand maps the playback keys that work on every page.
func playerCommand(event *tcell.EventKey) command {
	switch event.Key() {
	case tcell.KeyRight:
		return cmdSkipForward
	case tcell.KeyLeft:
		return cmdSkipBackward
	case tcell.KeyRune:
	default:
		return cmdNone
	}

	switch event.Rune() {
	case ' ':
		return cmdTogglePlay
	case 'm', 'M':
		return cmdToggleMute
	case '-':
		return cmdVolumeDown
	case '+', '=':
		return cmdVolumeUp
	case 's':
		return cmdCycleRate
	case 'n':
		return cmdNextEpisode
	case 'p':
		return cmdPreviousEpisode
	}
	return cmdNone
}

// navigationCommand maps page switching and application keys.
func navigationCommand(event *tcell.EventKey) command {
	if event.Key() != tcell.KeyRune {
		return cmdNone
	}

	switch event.Rune() {
	case '1':
		return cmdPagePlayer
	case '2':
		return cmdPageEpisodes
	case '3':
		return cmdPageAbout
	case '4':
		return cmdPageLog
	case '/':
		return cmdFilter
	case '?':
		return cmdHelp
	case 'Q':
		return cmdQuit
	}
	return cmdNone
}

// keyBindings is a stack of input handlers. The most recently bound handler
// sees an event first; a non-nil event it returns is offered to the next.
type keyBindings struct {
	mu       sync.Mutex
	handlers []*keyHandler
}

type keyHandler struct {
	handle func(event *tcell.EventKey) *tcell.EventKey
}

// Bind registers handle until the returned release function is called.
// Release is safe to call more than once.
func (k *keyBindings) Bind(handle func(event *tcell.EventKey) *tcell.EventKey) (release func()) {
	h := &keyHandler{handle: handle}

	k.mu.Lock()
	k.handlers = append(k.handlers, h)
	k.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			defer k.mu.Unlock()
			for i, other := range k.handlers {
				if other == h {
					k.handlers = append(k.handlers[:i], k.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Handle is usable as a tview input capture function.
func (k *keyBindings) Handle(event *tcell.EventKey) *tcell.EventKey {
	k.mu.Lock()
	handlers := make([]*keyHandler, len(k.handlers))
	copy(handlers, k.handlers)
	k.mu.Unlock()

	for i := len(handlers) - 1; i >= 0 && event != nil; i-- {
		event = handlers[i].handle(event)
	}
	return event
}

func (k *keyBindings) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.handlers)
}
