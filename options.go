package dailylog

import (
	"errors"
	"os"
	"strings"
	"time"
)

const (
	// DefaultFileMode is the permission used for newly created log files.
	DefaultFileMode os.FileMode = 0o644

	// DefaultBufferSize is the buffer capacity used by WithBuffering.
	DefaultBufferSize = 8 * 1024

	dirMode os.FileMode = 0o755
)

// Observer receives notifications about writer activity.
// Methods must be fast and must not call back into the Writer.
type Observer interface {
	// ObserveWrite is called after a record of n bytes was appended.
	ObserveWrite(n int)

	// ObserveRotation is called after a new file was opened for date.
	// Calls are serialized. When concurrent writes rotate at nearly the same
	// time, a rotation already replaced by a reported later one is skipped.
	ObserveRotation(path string, date Date)

	// ObserveError is called for every failure, returned or reported.
	ObserveError(err error)
}

// config is the immutable configuration of a Writer.
type config struct {
	directory  string
	prefix     string // includes the discriminant
	suffix     string
	location   *time.Location
	dates      DateProvider
	bufferSize int
	fileMode   os.FileMode
	symlink    string
	monotonic  bool
	errHandler func(error)
	observer   Observer
	onRotate   func(path string, date Date)
	open       openFunc
}

// Option configures a Writer.
type Option func(*config) error

// WithDateProvider sets the source of the current date used by Write.
// The default reads the wall clock in the configured location.
func WithDateProvider(p DateProvider) Option {
	return func(c *config) error {
		if p == nil {
			return errors.New("date provider cannot be nil")
		}
		c.dates = p
		return nil
	}
}

// WithLocation sets the time zone in which record timestamps are turned into dates.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *config) error {
		if loc == nil {
			return errors.New("location cannot be nil")
		}
		c.location = loc
		return nil
	}
}

// WithSuffix sets the file extension, without the leading dot. The default is "log".
func WithSuffix(suffix string) Option {
	return func(c *config) error {
		c.suffix = strings.TrimPrefix(suffix, ".")
		return nil
	}
}

// WithDiscriminant adds a string to the file name, as in <prefix>_<discriminant>_r<date>.log.
func WithDiscriminant(d string) Option {
	return func(c *config) error {
		if d != "" {
			c.prefix += "_" + d
		}
		return nil
	}
}

// WithBufferSize buffers writes in memory with the given capacity.
// Zero disables buffering, which is the default: every record reaches the
// file as soon as Write returns. Buffered records reach the file on Flush,
// on rotation, on Shutdown, or when the buffer fills up.
func WithBufferSize(n int) Option {
	return func(c *config) error {
		c.bufferSize = n
		return nil
	}
}

// WithBuffering enables or disables write buffering with DefaultBufferSize.
func WithBuffering(enabled bool) Option {
	if enabled {
		return WithBufferSize(DefaultBufferSize)
	}
	return WithBufferSize(0)
}

// WithFileMode sets the permission bits of newly created log files.
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) error {
		c.fileMode = mode
		return nil
	}
}

// WithSymlink keeps a symbolic link at path pointing to the current log file.
// Failures to update the link are reported, never returned.
func WithSymlink(path string) Option {
	return func(c *config) error {
		c.symlink = path
		return nil
	}
}

// WithMonotonicDates stops the writer from rotating backward: a record dated
// before the open file's date is appended to the open file.
func WithMonotonicDates() Option {
	return func(c *config) error {
		c.monotonic = true
		return nil
	}
}

// WithErrorHandler sets a handler for non-fatal internal errors, such as a
// failure to close the previous day's file. The handler is called
// asynchronously and must not write to the same Writer.
// If nil, internal problems are printed to os.Stderr.
func WithErrorHandler(h func(error)) Option {
	return func(c *config) error {
		c.errHandler = h
		return nil
	}
}

// WithObserver registers an Observer, such as a metrics collector.
func WithObserver(o Observer) Option {
	return func(c *config) error {
		c.observer = o
		return nil
	}
}

// WithOnRotate registers a callback invoked after each new file is opened.
// It runs on the writing goroutine, outside the writer's lock, and must not
// write to the same Writer. Calls follow the same ordering as
// Observer.ObserveRotation.
func WithOnRotate(fn func(path string, date Date)) Option {
	return func(c *config) error {
		c.onRotate = fn
		return nil
	}
}

// newConfig applies opts and validates the result. The directory is created
// if it does not exist. No log file is opened.
func newConfig(directory, prefix string, opts ...Option) (*config, error) {
	c := &config{
		directory: directory,
		prefix:    prefix,
		suffix:    DefaultSuffix,
		location:  time.Local,
		fileMode:  DefaultFileMode,
		open:      osOpen,
	}

	if directory == "" {
		return nil, configError("directory cannot be empty")
	}
	if prefix == "" {
		return nil, configError("prefix cannot be empty")
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, configError("failed to apply option: %v", err)
		}
	}

	if strings.ContainsAny(c.prefix, `/\`) {
		return nil, configError("prefix %q must not contain path separators", c.prefix)
	}
	if c.suffix == "" {
		return nil, configError("suffix cannot be empty")
	}
	if strings.ContainsAny(c.suffix, `/\`) {
		return nil, configError("suffix %q must not contain path separators", c.suffix)
	}
	if c.bufferSize < 0 {
		return nil, configError("buffer size must be non-negative")
	}
	if c.fileMode&^os.ModePerm != 0 {
		return nil, configError("file mode %o must only contain permission bits", c.fileMode)
	}
	if c.dates == nil {
		c.dates = SystemDate{Location: c.location}
	}

	if err := os.MkdirAll(c.directory, dirMode); err != nil {
		return nil, configError("failed to create directory: %v", err)
	}
	info, err := os.Stat(c.directory)
	if err != nil {
		return nil, configError("failed to get directory info: %v", err)
	}
	if !info.IsDir() {
		return nil, configError("%s is not a directory", c.directory)
	}

	return c, nil
}

// path returns the log file path for date.
func (c *config) path(date Date) string {
	return buildPath(c.directory, c.prefix, c.suffix, date)
}
