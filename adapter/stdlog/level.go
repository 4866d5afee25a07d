package stdlog

import (
	"fmt"
	"strings"
)

// Level represents log severity levels.
type Level int32

// Log levels are ordered from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns a human-readable representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("UNKNOWN (%d)", l)
	}
}

// ParseLevel converts a string to a Level.
// It is case-insensitive. If the string is not a valid level,
// it returns LevelInfo and an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

// validateLevel returns an error if the given log level is out of range.
func validateLevel(l Level) error {
	if l < LevelDebug || l > LevelError {
		return fmt.Errorf("invalid log level %d, must be between %d and %d", l, LevelDebug, LevelError)
	}
	return nil
}
