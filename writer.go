// Package dailylog provides a log file writer that starts a new file every
// calendar day.
//
// Files are named <prefix>_r<YYYY>-<MM>-<DD>.log inside the configured
// directory and hold the raw concatenation of the records written for that
// day. Old files are never removed.
//
// The date a record belongs to comes from its own timestamp when written
// through WriteRecord, and from the configured DateProvider when written
// through Write. Rotation compares dates only: a record dated earlier than
// the open file makes the writer go back to the earlier day's file, unless
// WithMonotonicDates is used.
//
// A Writer is safe for concurrent use. Records are never interleaved, but
// records from different goroutines are not ordered by timestamp.
package dailylog

import (
	"io"
	"sync"
	"time"
)

// Writer appends log records to the file of the record's date.
type Writer struct {
	cfg *config
	r   *rotator

	notifyMu sync.Mutex
	notified uint64 // seq of the last delivered rotation
}

// Ensure Writer implements the following interfaces.
var (
	_ Sink           = (*Writer)(nil)
	_ io.WriteCloser = (*Writer)(nil)
)

// New creates a Writer for files named <prefix>_r<date>.log in directory.
// The directory is created if it does not exist. No file is opened until
// the first record is written.
func New(directory, prefix string, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(directory, prefix, opts...)
	if err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, r: newRotator(cfg)}, nil
}

// Write appends p to the file of the current date, as reported by the
// DateProvider. It implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.write(p, w.cfg.dates.Today())
}

// WriteRecord appends p to the file of the date of ts in the configured
// location. A zero ts is treated like Write.
func (w *Writer) WriteRecord(p []byte, ts time.Time) error {
	date := w.cfg.dates.Today()
	if !ts.IsZero() {
		date = DateOf(ts, w.cfg.location)
	}

	_, err := w.write(p, date)
	return err
}

// Flush pushes buffered records to the file and syncs it to the device.
func (w *Writer) Flush() error {
	err := w.r.flush()
	w.observeError(err)
	return err
}

// Sync is an alias of Flush for front-ends that expect it.
func (w *Writer) Sync() error {
	return w.Flush()
}

// Shutdown flushes and closes the open file. Later calls to Write,
// WriteRecord and Flush return ErrWriterClosed. Shutdown is idempotent.
func (w *Writer) Shutdown() error {
	err := w.r.shutdown()
	w.observeError(err)
	return err
}

// Close is an alias of Shutdown. It implements io.Closer.
func (w *Writer) Close() error {
	return w.Shutdown()
}

// Path returns the path of the open file, or "" if none is open.
func (w *Writer) Path() string {
	p, _ := w.r.current()
	return p
}

// CurrentDate returns the date of the open file, or the zero Date if none is open.
func (w *Writer) CurrentDate() Date {
	_, d := w.r.current()
	return d
}

func (w *Writer) write(p []byte, date Date) (int, error) {
	n, rot, err := w.r.write(p, date)

	if rot != nil {
		w.notifyRotation(rot)
	}

	if err != nil {
		w.observeError(err)
		return n, err
	}

	if w.cfg.observer != nil {
		w.cfg.observer.ObserveWrite(n)
	}

	return n, nil
}

// notifyRotation delivers rot to the observer and the OnRotate callback.
// Deliveries are serialized, and a rotation already superseded by a
// delivered later one is skipped, so the last notification always names
// the open file.
func (w *Writer) notifyRotation(rot *rotation) {
	if w.cfg.observer == nil && w.cfg.onRotate == nil {
		return
	}

	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	if rot.seq <= w.notified {
		return
	}
	w.notified = rot.seq

	if w.cfg.observer != nil {
		w.cfg.observer.ObserveRotation(rot.path, rot.date)
	}
	if w.cfg.onRotate != nil {
		w.cfg.onRotate(rot.path, rot.date)
	}
}

func (w *Writer) observeError(err error) {
	if err != nil && w.cfg.observer != nil {
		w.cfg.observer.ObserveError(err)
	}
}
