package main

import (
	"fmt"
	"sync"
)

type nopLogger struct{}

func (nopLogger) Print(string)                  {}
func (nopLogger) Printf(string, ...interface{}) {}
func (nopLogger) PrintError(string, error)      {}

type recordingLogger struct {
	mu    sync.Mutex
	items []string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{}
}

func (l *recordingLogger) Print(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, s)
}

func (l *recordingLogger) Printf(s string, as ...interface{}) {
	l.Print(fmt.Sprintf(s, as...))
}

func (l *recordingLogger) PrintError(source string, err error) {
	l.Print(fmt.Sprintf("Error(%s) -> %s", source, err))
}

func (l *recordingLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.items...)
}

const testCatalog = `
[series]
id = "test-show"
title = "Test Show"
author = "Jane Host"
description = "A show for tests."
categories = ["Technology"]

[[episodes]]
id = "ep-1"
title = "Pilot"
number = 1
duration = "12:00"
date = "2024-01-01"
description = "The first one."
audio_url = "https://cdn.example.com/ep1.mp3"

  [[episodes.chapters]]
  title = "Intro"
  time = "0:00"

  [[episodes.chapters]]
  title = "Main"
  time = "1:04"

[[episodes]]
id = "ep-2"
title = "Follow-up"
number = 2
duration = "30:00"
date = "2024-01-08"
description = "The second one."
audio_url = "https://cdn.example.com/ep2.mp3"
`
