// Package logrus connects github.com/sirupsen/logrus to a dailylog.Sink.
//
// Entries are delivered by a hook, which formats them itself and files them
// under the date of the entry's own timestamp.
package logrus

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/balinomad/go-dailylog"
)

// Hook is a logrus.Hook writing formatted entries to a dailylog.Sink.
type Hook struct {
	sink      dailylog.Sink
	formatter logrus.Formatter
	levels    []logrus.Level
}

// Ensure Hook implements logrus.Hook.
var _ logrus.Hook = (*Hook)(nil)

// NewHook creates a hook for an existing logger. Entries below the level
// set with WithLevel are ignored by the hook.
func NewHook(sink dailylog.Sink, opts ...Option) (*Hook, error) {
	o, err := newOptions(sink, opts...)
	if err != nil {
		return nil, err
	}
	return newHook(sink, o), nil
}

// New creates a logrus.Logger whose only output is sink.
func New(sink dailylog.Sink, opts ...Option) (*logrus.Logger, error) {
	o, err := newOptions(sink, opts...)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(discardFormatter{})
	logger.SetLevel(o.level)
	logger.SetReportCaller(o.withCaller)
	logger.AddHook(newHook(sink, o))

	return logger, nil
}

func newOptions(sink dailylog.Sink, opts ...Option) (*options, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	o := &options{level: logrus.InfoLevel, format: "text"}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return o, nil
}

func newHook(sink dailylog.Sink, o *options) *Hook {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= o.level {
			levels = append(levels, l)
		}
	}

	return &Hook{sink: sink, formatter: o.buildFormatter(), levels: levels}
}

// Levels returns the levels the hook fires for.
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire formats the entry and writes it with the entry's time.
func (h *Hook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}
	if err := h.sink.WriteRecord(b, entry.Time); err != nil {
		return err
	}

	// logrus exits or panics right after the hooks for these levels.
	if entry.Level <= logrus.FatalLevel {
		return h.sink.Flush()
	}
	return nil
}

// discardFormatter keeps logrus from formatting entries twice when the hook
// is the only output.
type discardFormatter struct{}

func (discardFormatter) Format(*logrus.Entry) ([]byte, error) {
	return nil, nil
}
