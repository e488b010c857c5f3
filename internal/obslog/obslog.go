// Package obslog provides the structured logging this core's synthesis
// arena uses to trace constraint and namespace events, built on
// zerolog — the logging library named in the teacher's go.mod.
package obslog

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var base = zerolog.New(io.Discard).With().Timestamp().Logger()

var nextSession int64

// Enable switches the package logger to write human-readable output to
// stderr. Tests and library consumers that don't call Enable get a
// silent (io.Discard) logger at zero cost.
func Enable() {
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// SessionLogger returns a sub-logger tagged with a fresh, process-unique
// synthesis-session ID, for one System's lifetime.
func SessionLogger() zerolog.Logger {
	id := atomic.AddInt64(&nextSession, 1)
	return base.With().Int64("session", id).Logger()
}
