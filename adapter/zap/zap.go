// Package zap connects go.uber.org/zap to a dailylog.Sink.
//
// Entries are filed under the date of their own timestamp, so an entry
// logged just before midnight lands in that day's file even if it is
// written after the day has changed.
package zap

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/balinomad/go-dailylog"
)

// sinkCore is a zapcore.Core that writes encoded entries to a dailylog.Sink.
type sinkCore struct {
	zapcore.LevelEnabler
	enc  zapcore.Encoder
	sink dailylog.Sink
}

// Ensure sinkCore implements zapcore.Core.
var _ zapcore.Core = (*sinkCore)(nil)

// NewCore creates a zapcore.Core writing to sink. Options that only affect
// the zap.Logger, such as WithCaller, are ignored.
func NewCore(sink dailylog.Sink, opts ...Option) (zapcore.Core, error) {
	o, err := newOptions(sink, opts...)
	if err != nil {
		return nil, err
	}
	return newCore(sink, o), nil
}

// New creates a zap.Logger writing to sink.
func New(sink dailylog.Sink, opts ...Option) (*zap.Logger, error) {
	o, err := newOptions(sink, opts...)
	if err != nil {
		return nil, err
	}

	zapOpts := make([]zap.Option, 0, 2)
	if o.withCaller {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(o.callerSkip))
	}
	if o.withTrace {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return zap.New(newCore(sink, o), zapOpts...), nil
}

func newOptions(sink dailylog.Sink, opts ...Option) (*options, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	o := &options{
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
		format: "json",
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return o, nil
}

func newCore(sink dailylog.Sink, o *options) *sinkCore {
	var encoderConfig zapcore.EncoderConfig
	if o.encoder != nil {
		encoderConfig = *o.encoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	if o.format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	return &sinkCore{LevelEnabler: o.level, enc: encoder, sink: sink}
}

// With returns a core that adds fields to every entry.
func (c *sinkCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &sinkCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		sink:         c.sink,
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

// Check adds the core to ce if the entry's level is enabled.
func (c *sinkCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write encodes the entry and hands it to the sink with the entry's time.
func (c *sinkCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	err = c.sink.WriteRecord(buf.Bytes(), ent.Time)
	buf.Free()
	if err != nil {
		return err
	}

	// Entries above error level may end the process, push them out now.
	if ent.Level > zapcore.ErrorLevel {
		return c.Sync()
	}
	return nil
}

// Sync flushes the sink.
func (c *sinkCore) Sync() error {
	return c.sink.Flush()
}
