// Package multi provides a dailylog.Sink that duplicates every record to
// several sinks, such as a daily file and the console.
package multi

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/balinomad/go-dailylog"
)

// MultiSink is a dailylog.Sink that duplicates its records to all the
// underlying sinks. It is safe for concurrent use.
type MultiSink struct {
	sinks []dailylog.Sink
	mu    sync.RWMutex
}

// Ensure MultiSink implements dailylog.Sink.
var _ dailylog.Sink = (*MultiSink)(nil)

// New creates a MultiSink writing to sinks.
func New(sinks ...dailylog.Sink) *MultiSink {
	s := make([]dailylog.Sink, len(sinks))
	copy(s, sinks)
	return &MultiSink{sinks: s}
}

// WriteRecord writes the record to every sink, even if some of them fail.
// All errors encountered are combined and returned.
func (m *MultiSink) WriteRecord(p []byte, ts time.Time) error {
	return m.each(func(s dailylog.Sink) error { return s.WriteRecord(p, ts) })
}

// Flush flushes every sink.
func (m *MultiSink) Flush() error {
	return m.each(dailylog.Sink.Flush)
}

// Shutdown shuts every sink down.
func (m *MultiSink) Shutdown() error {
	return m.each(dailylog.Sink.Shutdown)
}

// AddSinks adds one or more sinks.
func (m *MultiSink) AddSinks(sinks ...dailylog.Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, sinks...)
}

func (m *MultiSink) each(fn func(dailylog.Sink) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	for _, s := range m.sinks {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// syncer is implemented by *os.File.
type syncer interface {
	Sync() error
}

// WriterSink adapts an io.Writer, such as os.Stderr, to a dailylog.Sink.
// Timestamps are ignored. Shutdown stops further writes but does not close w.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

// Ensure WriterSink implements dailylog.Sink.
var _ dailylog.Sink = (*WriterSink)(nil)

// NewWriterSink returns a Sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteRecord writes p to the underlying writer.
func (s *WriterSink) WriteRecord(p []byte, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return dailylog.ErrWriterClosed
	}
	n, err := s.w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// Flush syncs the underlying writer if it supports it. Sync errors of
// terminals and pipes, which cannot be synced, are not reported.
func (s *WriterSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return dailylog.ErrWriterClosed
	}
	if sy, ok := s.w.(syncer); ok {
		_ = sy.Sync()
	}
	return nil
}

// Shutdown makes later writes fail with dailylog.ErrWriterClosed.
func (s *WriterSink) Shutdown() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
