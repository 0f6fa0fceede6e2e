// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging constructs the zerolog.Logger every runner in this
// repository uses to report gate decisions and run summaries.
// Verdicts themselves always live in the typed report objects; the
// log stream is diagnostic only (spec.md §7 tier-3: auditing must
// remain possible from the emitted records alone).
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger at the given level ("debug", "info", "warn",
// "error"; unknown values fall back to "info") writing to w. When w is
// an *os.File attached to a terminal, output is rendered with
// zerolog's human-readable console writer; otherwise it's compact
// JSON, suitable for capture by a job runner.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
