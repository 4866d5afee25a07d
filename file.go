package dailylog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// file is the part of *os.File used by a fileHandle.
type file interface {
	io.Writer
	Sync() error
	Close() error
}

// openFunc opens a file the way os.OpenFile does.
type openFunc func(name string, flag int, perm os.FileMode) (file, error)

func osOpen(name string, flag int, perm os.FileMode) (file, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// fileHandle is one open log file and the date it was opened for.
// It is not safe for concurrent use; the rotator serializes access.
type fileHandle struct {
	path   string
	date   Date
	f      file
	buf    *bufio.Writer // nil when unbuffered
	closed bool
}

// openHandle opens path for appending, creating it if needed.
// Missing parent directories are not created.
func openHandle(c *config, path string, date Date) (*fileHandle, error) {
	f, err := c.open(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, c.fileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	h := &fileHandle{path: path, date: date, f: f}
	if c.bufferSize > 0 {
		h.buf = bufio.NewWriterSize(f, c.bufferSize)
	}

	return h, nil
}

// append writes p at the end of the file.
func (h *fileHandle) append(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}
	if h.buf != nil {
		return h.buf.Write(p)
	}
	return h.f.Write(p)
}

// flush pushes buffered bytes to the file and syncs it to the device.
func (h *fileHandle) flush() error {
	if h.closed {
		return os.ErrClosed
	}
	if h.buf != nil {
		if err := h.buf.Flush(); err != nil {
			return err
		}
	}
	return h.f.Sync()
}

// close flushes and closes the file. The file is closed even if the flush
// fails; both errors are returned. Calling close again is a no-op.
func (h *fileHandle) close() error {
	if h.closed {
		return nil
	}

	var errs []error
	if err := h.flush(); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush %s: %w", h.path, err))
	}

	h.closed = true
	if err := h.f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close %s: %w", h.path, err))
	}

	return errors.Join(errs...)
}

// unusable reports whether a failed append or flush left the handle unable
// to take further writes. A bufio.Writer keeps returning its first error,
// so any failure of a buffered handle counts.
func (h *fileHandle) unusable(err error) bool {
	if h.buf != nil {
		return true
	}
	return errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EBADF)
}
