package logrus

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Option configures the logrus hook and logger creation.
type Option func(*options) error

// options holds configuration for the logrus hook.
type options struct {
	level      logrus.Level
	format     string // "json" or "text"
	formatter  logrus.Formatter
	withCaller bool
}

// ValidFormats is the list of supported output formats.
var ValidFormats = []string{"json", "text"}

// timestampFormat is the layout used by the built-in formatters.
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// WithLevel sets the minimum log level.
func WithLevel(level logrus.Level) Option {
	return func(o *options) error {
		if level > logrus.TraceLevel {
			return fmt.Errorf("WithLevel: invalid level %d", level)
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

// WithFormatter sets a custom formatter. It takes precedence over WithFormat.
func WithFormatter(f logrus.Formatter) Option {
	return func(o *options) error {
		if f == nil {
			return fmt.Errorf("WithFormatter: formatter cannot be nil")
		}
		o.formatter = f
		return nil
	}
}

// WithCaller enables logrus caller reporting on loggers created by New.
func WithCaller(enabled bool) Option {
	return func(o *options) error {
		o.withCaller = enabled
		return nil
	}
}

func (o *options) buildFormatter() logrus.Formatter {
	if o.formatter != nil {
		return o.formatter
	}
	if o.format == "json" {
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	}
}
