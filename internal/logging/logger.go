// Package logging builds the zerolog loggers used across the app and carries
// them through contexts.
//
// The TUI owns the terminal while it runs, so the interactive command logs to
// a file (or nowhere) while plain CLI subcommands log to stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey int

const loggerKey contextKey = iota

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Nop discards everything.
var Nop = zerolog.Nop()

// New creates a timestamped logger writing JSON lines to w at the given level.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return Nop, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if w == nil {
		w = io.Discard
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// NewConsole creates a human-readable logger on stderr.
func NewConsole(level string) (zerolog.Logger, error) {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	return New(level, writer)
}

// OpenFile creates a logger appending to path. An empty path yields a logger
// that discards output. The returned closer is never nil.
func OpenFile(level, path string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		logger, err := New(level, io.Discard)
		return logger, nopCloser{}, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Nop, nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(level, file)
	if err != nil {
		_ = file.Close()
		return Nop, nopCloser{}, err
	}
	return logger, file, nil
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, &logger)
}

// FromContext extracts the logger from context, or returns Nop.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return &Nop
}
