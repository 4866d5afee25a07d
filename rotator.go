package dailylog

import (
	"fmt"
	"sync"
)

// rotation describes a file opened by a write. seq increases with every
// successful rotation of the same rotator.
type rotation struct {
	seq  uint64
	path string
	date Date
}

// rotator holds the single open log file and swaps it when the date of an
// incoming record differs from the date the file was opened for.
//
// States:
//   - uninitialized: cur == nil, closed == false (before the first write, or
//     after a failed rotation or a broken handle)
//   - open: cur != nil
//   - closed: closed == true, terminal
//
// Every method takes mu for its whole duration, so a record is appended
// either entirely before or entirely after a rotation.
type rotator struct {
	mu        sync.Mutex
	cfg       *config
	cur       *fileHandle
	closed    bool
	rotations uint64
}

func newRotator(cfg *config) *rotator {
	return &rotator{cfg: cfg}
}

// write appends p to the file for date, rotating first if needed.
// The returned rotation is non-nil when this call opened a new file.
func (r *rotator) write(p []byte, date Date) (int, *rotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, nil, ErrWriterClosed
	}

	var rot *rotation
	if r.needsRotation(date) {
		if err := r.rotate(date); err != nil {
			return 0, nil, err
		}
		r.rotations++
		rot = &rotation{seq: r.rotations, path: r.cur.path, date: r.cur.date}
	}

	n, err := r.cur.append(p)
	if err != nil {
		if r.cur.unusable(err) {
			r.discard()
		}
		return n, rot, ioError(err)
	}

	return n, rot, nil
}

// needsRotation reports whether a record for date cannot go to the open file.
// Caller must hold the lock.
func (r *rotator) needsRotation(date Date) bool {
	if r.cur == nil {
		return true
	}
	if r.cur.date == date {
		return false
	}
	if r.cfg.monotonic && date.Before(r.cur.date) {
		return false
	}
	return true
}

// rotate closes the open file, if any, and opens the file for date.
// On failure the rotator is left without a file, so the next write retries.
// Caller must hold the lock.
func (r *rotator) rotate(date Date) error {
	r.discard()

	h, err := openHandle(r.cfg, r.cfg.path(date), date)
	if err != nil {
		return rotationError(err)
	}
	r.cur = h

	if r.cfg.symlink != "" {
		if err := updateSymlink(r.cfg.symlink, h.path); err != nil {
			r.cfg.report(err)
		}
	}

	return nil
}

// discard closes the open file and forgets it. Close failures are reported,
// not returned: the unflushed tail of the old file may be lost.
// Caller must hold the lock.
func (r *rotator) discard() {
	if r.cur == nil {
		return
	}

	if err := r.cur.close(); err != nil {
		r.cfg.report(fmt.Errorf("closing previous log file: %w", err))
	}
	r.cur = nil
}

// flush forces buffered bytes of the open file to the device.
// It is a no-op before the first write.
func (r *rotator) flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrWriterClosed
	}
	if r.cur == nil {
		return nil
	}

	if err := r.cur.flush(); err != nil {
		if r.cur.unusable(err) {
			r.discard()
		}
		return ioError(err)
	}

	return nil
}

// shutdown flushes and closes the open file. Later writes and flushes fail
// with ErrWriterClosed. Calling shutdown again returns nil.
func (r *rotator) shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.cur == nil {
		return nil
	}

	err := r.cur.close()
	r.cur = nil
	if err != nil {
		return ioError(err)
	}

	return nil
}

// current returns the path and date of the open file.
// Both are zero when no file is open.
func (r *rotator) current() (string, Date) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cur == nil {
		return "", Date{}
	}
	return r.cur.path, r.cur.date
}
