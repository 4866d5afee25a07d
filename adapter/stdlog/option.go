package stdlog

import "fmt"

// Option configures the logger creation.
type Option func(*options) error

// options holds configuration for the logger.
type options struct {
	level      Level
	separator  string
	flags      int
	withCaller bool
	withTrace  bool
	callerSkip int
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(o *options) error {
		if err := validateLevel(level); err != nil {
			return fmt.Errorf("WithLevel: %w", err)
		}
		o.level = level
		return nil
	}
}

// WithSeparator sets the separator for group key prefixes.
func WithSeparator(separator string) Option {
	return func(o *options) error {
		o.separator = separator
		return nil
	}
}

// WithFlags sets the standard log flags, such as log.LstdFlags|log.LUTC.
func WithFlags(flags int) Option {
	return func(o *options) error {
		o.flags = flags
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
