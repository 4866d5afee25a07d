// Package stdlog provides a small leveled logger built on the standard log
// package, for programs that want key/value lines in daily files without a
// third-party front-end.
//
// Lines go through the io.Writer of a dailylog.Writer, so they are filed
// under the date reported by the writer's DateProvider.
package stdlog

import (
	"fmt"
	"io"
	"log"
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/balinomad/go-atomicwriter"
	"github.com/balinomad/go-caller"
	"github.com/balinomad/go-ctxmap"
)

// DefaultKeySeparator is the default separator for group key prefixes.
const DefaultKeySeparator = "_"

// fieldStringer returns a string representation of a key-value pair.
var fieldStringer = func(k string, v any) string { return k + "=" + fmt.Sprint(v) }

// Logger writes leveled key/value lines. Loggers derived with With and
// WithGroup share the level and the output of their parent.
type Logger struct {
	l          *log.Logger
	out        *atomicwriter.AtomicWriter
	lvl        *atomic.Int32
	fields     *ctxmap.CtxMap
	withCaller bool
	withTrace  bool
	callerSkip int
}

// New creates a Logger writing to w, usually a *dailylog.Writer.
func New(w io.Writer, opts ...Option) (*Logger, error) {
	o := &options{
		level:     LevelInfo,
		separator: DefaultKeySeparator,
		flags:     log.LstdFlags,
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	aw, err := atomicwriter.NewAtomicWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create atomic writer: %w", err)
	}

	l := &Logger{
		l:          log.New(aw, "", o.flags),
		out:        aw,
		lvl:        new(atomic.Int32),
		fields:     ctxmap.NewCtxMap(o.separator, " ", fieldStringer),
		withCaller: o.withCaller,
		withTrace:  o.withTrace,
		callerSkip: o.callerSkip,
	}
	l.lvl.Store(int32(o.level))

	return l, nil
}

// log formats one line and writes it. It adds caller and stack trace
// information when enabled.
func (l *Logger) log(level Level, msg string, keyValues ...any) {
	if !l.Enabled(level) {
		return
	}

	fields := l.fields.WithPairs(keyValues...)

	if l.withCaller {
		// Skip this function and the exported method that called it
		fields.Set("source", caller.New(l.callerSkip+2).Location())
	}

	if l.withTrace && level >= LevelError {
		fields.Set("stack", string(debug.Stack()))
	}

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	sb.WriteString(msg)
	if fields.Len() > 0 {
		sb.WriteString(" ")
		sb.WriteString(fields.String())
	}

	l.l.Println(sb.String())
}

// Log writes msg at level.
func (l *Logger) Log(level Level, msg string, keyValues ...any) {
	l.log(level, msg, keyValues...)
}

// Debug logs a message at the debug level.
func (l *Logger) Debug(msg string, keyValues ...any) {
	l.log(LevelDebug, msg, keyValues...)
}

// Info logs a message at the info level.
func (l *Logger) Info(msg string, keyValues ...any) {
	l.log(LevelInfo, msg, keyValues...)
}

// Warn logs a message at the warn level.
func (l *Logger) Warn(msg string, keyValues ...any) {
	l.log(LevelWarn, msg, keyValues...)
}

// Error logs a message at the error level.
func (l *Logger) Error(msg string, keyValues ...any) {
	l.log(LevelError, msg, keyValues...)
}

// Enabled checks if the given log level is enabled.
func (l *Logger) Enabled(level Level) bool {
	return level >= Level(l.lvl.Load())
}

// With returns a new logger with the provided keyValues added to every line.
func (l *Logger) With(keyValues ...any) *Logger {
	if len(keyValues) < 2 {
		return l
	}

	clone := l.clone()
	clone.fields = l.fields.WithPairs(keyValues...)

	return clone
}

// WithGroup returns a logger that prefixes later keys with name.
func (l *Logger) WithGroup(name string) *Logger {
	if name == "" {
		return l
	}

	clone := l.clone()
	clone.fields = l.fields.WithPrefix(name)

	return clone
}

// SetLevel changes the minimum level of this logger and all loggers
// derived from the same root.
func (l *Logger) SetLevel(level Level) error {
	if err := validateLevel(level); err != nil {
		return err
	}

	l.lvl.Store(int32(level))

	return nil
}

// SetOutput replaces the log destination, for example when a new
// dailylog.Writer is configured at runtime. Concurrent lines go to either
// the old or the new output.
func (l *Logger) SetOutput(w io.Writer) error {
	return l.out.Swap(w)
}

// StdLogger returns a *log.Logger sharing this logger's output. Lines
// written through it carry no level.
func (l *Logger) StdLogger() *log.Logger {
	return l.l
}

// clone returns a copy of the logger sharing its output and level.
func (l *Logger) clone() *Logger {
	return &Logger{
		l:          l.l,
		out:        l.out,
		lvl:        l.lvl,
		fields:     l.fields,
		withCaller: l.withCaller,
		withTrace:  l.withTrace,
		callerSkip: l.callerSkip,
	}
}
