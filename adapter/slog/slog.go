// Package slog connects log/slog to a dailylog.Sink.
//
// Records are formatted by the standard text or JSON handler and filed
// under the date of their own timestamp.
package slog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/balinomad/go-dailylog"
)

// output is shared by a handler and all handlers derived from it.
// The inner slog handler writes each record with a single Write call,
// made while mu is held by Handle.
type output struct {
	mu   sync.Mutex
	ts   time.Time
	sink dailylog.Sink
}

func (o *output) Write(p []byte) (int, error) {
	if err := o.sink.WriteRecord(p, o.ts); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Handler is a slog.Handler writing to a dailylog.Sink.
type Handler struct {
	out   *output
	inner slog.Handler
}

// Ensure Handler implements slog.Handler.
var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a Handler writing to sink.
func NewHandler(sink dailylog.Sink, opts ...Option) (*Handler, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	o := &options{level: slog.LevelInfo, format: "json"}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	out := &output{sink: sink}
	hOpts := &slog.HandlerOptions{
		AddSource:   o.withCaller,
		Level:       o.level,
		ReplaceAttr: o.replaceAttr,
	}

	var inner slog.Handler
	if o.format == "text" {
		inner = slog.NewTextHandler(out, hOpts)
	} else {
		inner = slog.NewJSONHandler(out, hOpts)
	}

	return &Handler{out: out, inner: inner}, nil
}

// New creates a slog.Logger writing to sink.
func New(sink dailylog.Sink, opts ...Option) (*slog.Logger, error) {
	h, err := NewHandler(sink, opts...)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

// Enabled reports whether the handler handles records at level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle formats r and writes it with r.Time. A record without a time is
// filed under the sink's current date.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()

	h.out.ts = r.Time
	return h.inner.Handle(ctx, r)
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return &Handler{out: h.out, inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a handler that nests later attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{out: h.out, inner: h.inner.WithGroup(name)}
}

// Flush flushes the sink.
func (h *Handler) Flush() error {
	return h.out.sink.Flush()
}
