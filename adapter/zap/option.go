package zap

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option configures the zap core creation.
type Option func(*options) error

// options holds configuration for the zap core.
type options struct {
	level      zap.AtomicLevel
	format     string // "json" or "console"
	encoder    *zapcore.EncoderConfig
	withCaller bool
	withTrace  bool
	callerSkip int
}

// ValidFormats is the list of supported output formats.
var ValidFormats = []string{"json", "console"}

// WithLevel sets the minimum log level.
func WithLevel(level zapcore.Level) Option {
	return func(o *options) error {
		if level < zapcore.DebugLevel || level > zapcore.FatalLevel {
			return fmt.Errorf("WithLevel: invalid level %d", level)
		}
		o.level = zap.NewAtomicLevelAt(level)
		return nil
	}
}

// WithAtomicLevel shares a level that can be changed at runtime.
func WithAtomicLevel(level zap.AtomicLevel) Option {
	return func(o *options) error {
		o.level = level
		return nil
	}
}

// WithFormat sets the output format ("json" or "console").
func WithFormat(format string) Option {
	return func(o *options) error {
		if !slices.Contains(ValidFormats, format) {
			return fmt.Errorf("WithFormat: invalid format %q, expected one of %v", format, ValidFormats)
		}
		o.format = format
		return nil
	}
}

// WithEncoderConfig replaces the production encoder configuration.
func WithEncoderConfig(cfg zapcore.EncoderConfig) Option {
	return func(o *options) error {
		o.encoder = &cfg
		return nil
	}
}

// WithCaller enables source injection. Optional skip adds frames to skip.
func WithCaller(enabled bool, skip ...int) Option {
	return func(o *options) error {
		o.withCaller = enabled
		o.callerSkip = 0
		if enabled && len(skip) > 0 && skip[0] > 0 {
			o.callerSkip = skip[0]
		}
		return nil
	}
}

// WithTrace enables stack traces for ERROR and above.
func WithTrace(enabled bool) Option {
	return func(o *options) error {
		o.withTrace = enabled
		return nil
	}
}
