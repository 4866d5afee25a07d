package log15

import (
	"fmt"
	"slices"

	"github.com/inconshreveable/log15/v3"
)

// Option configures the log15 handler creation.
type Option func(*options) error

// options holds configuration for the log15 handler.
type options struct {
	level  log15.Lvl
	format string
}

// ValidFormats is the list of supported output formats.
var ValidFormats = []string{"json", "terminal", "logfmt"}

// WithLevel sets the minimum log level.
func WithLevel(level log15.Lvl) Option {
	return func(o *options) error {
		if level < log15.LvlCrit || level > log15.LvlDebug {
			return fmt.Errorf("WithLevel: invalid level %d", level)
		}
		o.level = level
		return nil
	}
}

// WithFormat sets the output format ("json", "terminal" or "logfmt").
// The default format is "logfmt".
func WithFormat(format string) Option {
	return func(o *options) error {
		if !slices.Contains(ValidFormats, format) {
			return fmt.Errorf("WithFormat: invalid format %q, expected one of %v", format, ValidFormats)
		}
		o.format = format
		return nil
	}
}

// stringToFormat returns a log15.Format based on the given format string.
func stringToFormat(format string) log15.Format {
	switch format {
	case "json":
		return log15.JsonFormat()
	case "terminal":
		return log15.TerminalFormat()
	default:
		return log15.LogfmtFormat()
	}
}
