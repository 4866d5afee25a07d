// Package log15 connects github.com/inconshreveable/log15/v3 to a dailylog.Sink.
//
// Records are filed under the date of their own timestamp.
package log15

import (
	"fmt"
	"sync"
	"time"

	"github.com/inconshreveable/log15/v3"

	"github.com/balinomad/go-dailylog"
)

// sinkHandler formats records with a log15 stream handler and passes the
// result to the sink together with the record's time.
type sinkHandler struct {
	mu     sync.Mutex
	ts     time.Time // time of the record being written, guarded by mu
	sink   dailylog.Sink
	stream log15.Handler
}

// NewHandler creates a log15.Handler writing to sink.
func NewHandler(sink dailylog.Sink, opts ...Option) (log15.Handler, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	o := &options{level: log15.LvlInfo, format: "logfmt"}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	h := &sinkHandler{sink: sink}
	h.stream = log15.StreamHandler(recordWriter{h}, stringToFormat(o.format))

	return log15.LvlFilterHandler(o.level, h), nil
}

// New creates a log15.Logger writing to sink.
func New(sink dailylog.Sink, opts ...Option) (log15.Logger, error) {
	h, err := NewHandler(sink, opts...)
	if err != nil {
		return nil, err
	}

	l := log15.New()
	l.SetHandler(h)

	return l, nil
}

// Log implements log15.Handler.
func (h *sinkHandler) Log(r log15.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ts = r.Time
	if err := h.stream.Log(r); err != nil {
		return err
	}

	if r.Lvl == log15.LvlCrit {
		return h.sink.Flush()
	}
	return nil
}

// recordWriter is the io.Writer seen by the stream handler. It is only
// called from sinkHandler.Log, with the lock held.
type recordWriter struct {
	h *sinkHandler
}

func (w recordWriter) Write(p []byte) (int, error) {
	if err := w.h.sink.WriteRecord(p, w.h.ts); err != nil {
		return 0, err
	}
	return len(p), nil
}
