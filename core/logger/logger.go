// Package logger provides slog constructors and attribute helpers shared
// across the service. The helpers use the empty Attr pattern for nil safety,
// so call sites can write log.Error("msg", logger.Error(err)) without nil
// checks.
package logger

import (
	"log/slog"
	"os"
)

type options struct {
	level   slog.Level
	json    bool
	appName string
}

// Option configures the logger constructor.
type Option func(*options)

// WithDevelopment configures human-readable text output at debug level,
// tagged with the application name.
func WithDevelopment(appName string) Option {
	return func(o *options) {
		o.level = slog.LevelDebug
		o.json = false
		o.appName = appName
	}
}

// WithProduction configures JSON output at info level, tagged with the
// application name.
func WithProduction(appName string) Option {
	return func(o *options) {
		o.level = slog.LevelInfo
		o.json = true
		o.appName = appName
	}
}

// WithLevel overrides the log level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// New creates a slog.Logger writing to stdout.
func New(opts ...Option) *slog.Logger {
	o := options{level: slog.LevelInfo, json: true}
	for _, opt := range opts {
		opt(&o)
	}

	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: o.level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: o.level})
	}

	log := slog.New(handler)
	if o.appName != "" {
		log = log.With("app", o.appName)
	}
	return log
}
