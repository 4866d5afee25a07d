// Package sinktest provides helpers for testing code that writes to a
// dailylog.Sink, and a compliance suite for Sink implementations.
package sinktest

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/balinomad/go-dailylog"
)

// Record is one call to WriteRecord as seen by a Recorder.
type Record struct {
	Data []byte
	Time time.Time
}

// Recorder is an in-memory Sink that keeps every record it receives.
type Recorder struct {
	mu       sync.Mutex
	records  []Record
	flushes  int
	closed   bool
	writeErr error
}

// Ensure Recorder implements dailylog.Sink.
var _ dailylog.Sink = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// WriteRecord stores a copy of p with ts.
func (r *Recorder) WriteRecord(p []byte, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return dailylog.ErrWriterClosed
	}
	if r.writeErr != nil {
		return r.writeErr
	}

	r.records = append(r.records, Record{Data: append([]byte(nil), p...), Time: ts})
	return nil
}

// Flush counts the call.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return dailylog.ErrWriterClosed
	}
	r.flushes++
	return nil
}

// Shutdown makes later writes fail with dailylog.ErrWriterClosed.
func (r *Recorder) Shutdown() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// SetWriteErr makes WriteRecord fail with err until it is reset with nil.
func (r *Recorder) SetWriteErr(err error) {
	r.mu.Lock()
	r.writeErr = err
	r.mu.Unlock()
}

// Records returns the records received so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.records...)
}

// Lines returns the data of each record with one trailing newline removed.
func (r *Recorder) Lines() []string {
	records := r.Records()
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = strings.TrimSuffix(string(rec.Data), "\n")
	}
	return lines
}

// Flushes returns the number of successful Flush calls.
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushes
}

// ComplianceChecker verifies parts of the Sink contract one at a time.
// Most users should use ComplianceTest directly.
type ComplianceChecker interface {
	// CheckWrite verifies that a record is accepted.
	CheckWrite(s dailylog.Sink) error

	// CheckFlush verifies that Flush succeeds on a live sink.
	CheckFlush(s dailylog.Sink) error

	// CheckShutdown verifies that Shutdown is idempotent and that writes
	// fail afterwards with dailylog.ErrWriterClosed.
	CheckShutdown(s dailylog.Sink) error
}

// NewComplianceChecker returns a new compliance checker instance.
func NewComplianceChecker() ComplianceChecker {
	return &checker{}
}

type checker struct{}

// Ensure checker implements ComplianceChecker
var _ ComplianceChecker = (*checker)(nil)

var complianceTime = time.Date(2021, time.March, 28, 12, 0, 0, 0, time.UTC)

func (c *checker) CheckWrite(s dailylog.Sink) error {
	if err := s.WriteRecord([]byte("compliance\n"), complianceTime); err != nil {
		return fmt.Errorf("WriteRecord() failed: %w", err)
	}
	return nil
}

func (c *checker) CheckFlush(s dailylog.Sink) error {
	if err := s.Flush(); err != nil {
		return fmt.Errorf("Flush() failed: %w", err)
	}
	return nil
}

func (c *checker) CheckShutdown(s dailylog.Sink) error {
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("first Shutdown() failed: %w", err)
	}
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("second Shutdown() failed: %w", err)
	}
	if err := s.WriteRecord([]byte("late\n"), complianceTime); !errors.Is(err, dailylog.ErrWriterClosed) {
		return fmt.Errorf("WriteRecord() after Shutdown returned %v, want ErrWriterClosed", err)
	}
	return nil
}

// ComplianceTest runs the Sink contract checks against fresh sinks built by newSink.
//
//	func TestMySinkCompliance(t *testing.T) {
//	    sinktest.ComplianceTest(t, func() (dailylog.Sink, error) {
//	        return NewMySink(...)
//	    })
//	}
func ComplianceTest(t *testing.T, newSink func() (dailylog.Sink, error)) {
	t.Helper()
	checker := NewComplianceChecker()

	run := func(name string, check func(dailylog.Sink) error) {
		t.Run(name, func(t *testing.T) {
			s, err := newSink()
			if err != nil {
				t.Fatalf("newSink() failed: %v", err)
			}
			defer s.Shutdown()

			if err := check(s); err != nil {
				t.Error(err)
			}
		})
	}

	run("write", checker.CheckWrite)
	run("flush", func(s dailylog.Sink) error {
		if err := checker.CheckWrite(s); err != nil {
			return err
		}
		return checker.CheckFlush(s)
	})
	run("shutdown", checker.CheckShutdown)
}
