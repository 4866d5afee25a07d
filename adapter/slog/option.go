package slog

import (
	"fmt"
	"log/slog"
	"slices"
)

// Option configures the slog handler creation.
type Option func(*options) error

// options holds configuration for the slog handler.
type options struct {
	level       slog.Leveler
	format      string
	withCaller  bool
	replaceAttr func([]string, slog.Attr) slog.Attr
}

// ValidFormats is the list of supported output formats.
var ValidFormats = []string{"json", "text"}

// WithLevel sets the minimum log level. Pass a *slog.LevelVar to change it at runtime.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) error {
		if level == nil {
			return fmt.Errorf("WithLevel: level cannot be nil")
		}
		o.level = level
		return nil
	}
}

// WithFormat sets the output format ("json" or "text").
func WithFormat(format string) Option {
	return func(o *options) error {
		if !slices.Contains(ValidFormats, format) {
			return fmt.Errorf("WithFormat: invalid format %q, expected one of %v", format, ValidFormats)
		}
		o.format = format
		return nil
	}
}

// WithCaller adds the source location of the log call to each record.
func WithCaller(enabled bool) Option {
	return func(o *options) error {
		o.withCaller = enabled
		return nil
	}
}

// WithReplaceAttr sets a custom attribute transformation function.
func WithReplaceAttr(fn func([]string, slog.Attr) slog.Attr) Option {
	return func(o *options) error {
		o.replaceAttr = fn
		return nil
	}
}
