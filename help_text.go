// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

const helpPlayback = `
SPACE play/pause
←/→   seek -5/+5 seconds
m/M   mute/unmute
-/=   volume down/volume up
s     cycle playback speed
n/p   next/previous episode
1-4   switch page
?     this help
Q     quit
`

const helpPagePlayer = `
mouse over the track previews
  time and chapter
click on the track to seek
ENTER on a chapter seeks to it
ENTER on up next plays it
ESC   switch chapters/up next
`

const helpPageEpisodes = `
ENTER play episode
/     filter episodes
ESC   clear filter
`
