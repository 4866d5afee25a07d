// Package zerolog connects github.com/rs/zerolog to a dailylog.Sink.
//
// zerolog keeps the event time inside the encoded payload only, so records
// are filed under the date reported by the sink's DateProvider when they
// are written.
package zerolog

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/balinomad/go-dailylog"
)

// ValidFormats is the list of supported output formats.
var ValidFormats = []string{"json", "console"}

// Option configures the zerolog logger creation.
type Option func(*options) error

// options holds configuration for the zerolog logger.
type options struct {
	level      zerolog.Level
	format     string
	withCaller bool
	noTime     bool
}

// WithLevel sets the minimum log level.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) error {
		if level < zerolog.TraceLevel || level > zerolog.Disabled {
			return fmt.Errorf("WithLevel: invalid level %d", level)
		}
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

// WithCaller adds the file and line of the log call to each event.
func WithCaller(enabled bool) Option {
	return func(o *options) error {
		o.withCaller = enabled
		return nil
	}
}

// WithoutTimestamp stops the logger from adding a time field to events.
func WithoutTimestamp() Option {
	return func(o *options) error {
		o.noTime = true
		return nil
	}
}

// Writer is a zerolog.LevelWriter that hands each event to a dailylog.Sink.
type Writer struct {
	sink dailylog.Sink
}

// Ensure Writer implements zerolog.LevelWriter.
var _ zerolog.LevelWriter = (*Writer)(nil)

// NewWriter returns a Writer over sink.
func NewWriter(sink dailylog.Sink) *Writer {
	return &Writer{sink: sink}
}

// Write implements io.Writer. The record is passed to the sink with a zero
// timestamp, so it is filed under the date reported by the sink's
// DateProvider rather than the event's own time.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.sink.WriteRecord(p, time.Time{}); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteLevel implements zerolog.LevelWriter. Events at fatal and panic
// level are flushed before returning.
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	n, err := w.Write(p)
	if err != nil {
		return n, err
	}
	if level == zerolog.FatalLevel || level == zerolog.PanicLevel {
		return n, w.sink.Flush()
	}
	return n, nil
}

// Flush flushes the sink.
func (w *Writer) Flush() error {
	return w.sink.Flush()
}

// consoleWriter formats events with zerolog.ConsoleWriter and keeps the
// fatal and panic flush of Writer.WriteLevel.
type consoleWriter struct {
	console zerolog.ConsoleWriter
	w       *Writer
}

func newConsoleWriter(w *Writer) *consoleWriter {
	return &consoleWriter{console: zerolog.ConsoleWriter{Out: w, NoColor: true}, w: w}
}

// Write implements io.Writer.
func (c *consoleWriter) Write(p []byte) (int, error) {
	return c.console.Write(p)
}

// WriteLevel implements zerolog.LevelWriter.
func (c *consoleWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	n, err := c.console.Write(p)
	if err != nil {
		return n, err
	}
	if level == zerolog.FatalLevel || level == zerolog.PanicLevel {
		return n, c.w.Flush()
	}
	return n, nil
}

// New creates a zerolog.Logger writing to sink.
func New(sink dailylog.Sink, opts ...Option) (zerolog.Logger, error) {
	if sink == nil {
		return zerolog.Nop(), fmt.Errorf("sink cannot be nil")
	}

	o := &options{level: zerolog.InfoLevel, format: "json"}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to apply option: %w", err)
		}
	}

	w := NewWriter(sink)
	var lw zerolog.LevelWriter = w
	if o.format == "console" {
		lw = newConsoleWriter(w)
	}

	ctx := zerolog.New(lw).Level(o.level).With()
	if !o.noTime {
		ctx = ctx.Timestamp()
	}
	if o.withCaller {
		ctx = ctx.Caller()
	}

	return ctx.Logger(), nil
}
