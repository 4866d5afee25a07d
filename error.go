package dailylog

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrRotationFailed = errors.New("failed to open log file for rotation")
	ErrIO             = errors.New("log file i/o failed")
	ErrWriterClosed   = errors.New("writer is closed")
)

// configError returns an error with ErrInvalidConfig.
func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// rotationError returns an error with ErrRotationFailed.
func rotationError(err error) error {
	return fmt.Errorf("%w: %w", ErrRotationFailed, err)
}

// ioError returns an error with ErrIO.
func ioError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}
