// Package logging provides the leveled diagnostic logger used by jsonscalar.
//
// Diagnostics always go to stderr so they never mix with report output.
package logging

import (
	"io"
	"log/slog"
)

// Level is the minimum severity a Logger emits.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// DefaultLevel keeps the tool quiet unless something goes wrong.
const DefaultLevel = LevelWarn

// Logger wraps a slog.Logger with the level it was built with.
type Logger struct {
	*slog.Logger
	level Level
}

type options struct {
	level Level
	json  bool
}

// Option configures a Logger.
type Option func(*options)

// WithLevel sets the minimum level.
func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithDebug lowers the level to Debug when enabled is true.
func WithDebug(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.level = LevelDebug
		}
	}
}

// WithJSON switches the handler to JSON lines.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// New creates a Logger writing to w.
func New(w io.Writer, opts ...Option) *Logger {
	o := options{level: DefaultLevel}
	for _, opt := range opts {
		opt(&o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}
	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{Logger: slog.New(h), level: o.level}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, WithLevel(LevelError+1))
}

// Level returns the minimum level of the logger.
func (l *Logger) Level() Level {
	return l.level
}
