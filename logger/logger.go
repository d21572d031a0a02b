// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

var _ LoggerInterface = (*Logger)(nil)

// Logger feeds the log page through Prints and, if a sink is attached,
// mirrors every line to it as structured records. The terminal belongs to
// the UI, so nothing is written to stderr.
type Logger struct {
	Prints chan string

	sink zerolog.Logger
}

func Init() *Logger {
	return &Logger{
		Prints: make(chan string, 100),
		sink:   zerolog.Nop(),
	}
}

// SetSink mirrors log lines to w from now on. Lines below level are only
// shown on the log page.
func (l *Logger) SetSink(w io.Writer, level zerolog.Level) {
	l.sink = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func (l *Logger) Print(s string) {
	l.sink.Info().Msg(s)
	l.push(s)
}

func (l *Logger) Printf(s string, as ...interface{}) {
	l.Print(fmt.Sprintf(s, as...))
}

func (l *Logger) PrintError(source string, err error) {
	l.sink.Error().Str("source", source).Err(err).Send()
	l.push(fmt.Sprintf("Error(%s) -> %s", source, err))
}

// push drops the line when nobody drains the page, e.g. in --list mode.
func (l *Logger) push(s string) {
	if l.Prints == nil {
		return
	}
	select {
	case l.Prints <- s:
	default:
	}
}
