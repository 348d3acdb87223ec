// Released under an MIT license. See LICENSE.

// Package trace provides an opt-in diagnostic log for job-control events.
// The log is written to a file, never to the terminal, so it cannot disturb
// the shell's own output protocol. When disabled every logger is a no-op.
package trace

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

//nolint:gochecknoglobals
var root = zerolog.Nop()

// Init configures tracing. An empty level or the level "disabled" leaves
// tracing off. An unparseable level defaults to info.
func Init(level, path string) error {
	if level == "" || level == "disabled" || path == "" {
		root = zerolog.Nop()

		return nil
	}

	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}

	root = zerolog.New(f).With().Timestamp().Logger().Level(l)

	return nil
}

// InitWriter is Init with a caller-supplied destination.
func InitWriter(level string, w io.Writer) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}

	root = zerolog.New(w).With().Timestamp().Logger().Level(l)
}

// Logger returns a logger tagged with the given component name.
func Logger(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}
