package dailylog

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"
	"time"
)

// day is the date most tests start from.
var day = NewDate(2021, time.March, 28)

// noon returns midday of d in UTC.
func noon(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// newTestWriter creates a Writer in a fresh temporary directory, using UTC
// and a ManualDate set to day.
func newTestWriter(t *testing.T, opts ...Option) (*Writer, *ManualDate, string) {
	t.Helper()
	dir := t.TempDir()
	dates := NewManualDate(day)
	opts = append([]Option{WithLocation(time.UTC), WithDateProvider(dates)}, opts...)
	w, err := New(dir, "app", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Shutdown() })
	return w, dates, dir
}

// assertFileContent is a test helper to check if a file's content matches the expected string.
func assertFileContent(t *testing.T, filename, expected string) {
	t.Helper()
	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", filename, err)
	}
	if expected != string(content) {
		t.Errorf("file content mismatch for %s:\ngot:  %q\nwant: %q", filename, string(content), expected)
	}
}

// assertFileNotExists is a test helper to check that a file does not exist.
func assertFileNotExists(t *testing.T, filename string) {
	t.Helper()
	_, err := os.Stat(filename)
	if !os.IsNotExist(err) {
		if err == nil {
			t.Errorf("file should not exist but it does: %s", filename)
		} else {
			t.Errorf("expected a file-not-exist error for %s, but got: %v", filename, err)
		}
	}
}

// fakeFile is an in-memory file with injectable failures.
type fakeFile struct {
	mu       sync.Mutex
	data     bytes.Buffer
	writeErr error
	syncErr  error
	closeErr error
	syncs    int
	closes   int
}

func (f *fakeFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.data.Write(p)
}

func (f *fakeFile) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncs++
	return f.syncErr
}

func (f *fakeFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return f.closeErr
}

func (f *fakeFile) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.String()
}

// fakeFS hands out fakeFiles by name and can fail opens.
type fakeFS struct {
	mu      sync.Mutex
	files   map[string]*fakeFile
	opens   []string
	openErr error
	// prepare, if set, configures each new file before it is returned.
	prepare func(name string, f *fakeFile)
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string]*fakeFile{}}
}

func (fs *fakeFS) open(name string, _ int, _ os.FileMode) (file, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.openErr != nil {
		return nil, fs.openErr
	}
	fs.opens = append(fs.opens, name)
	f, ok := fs.files[name]
	if !ok {
		f = &fakeFile{}
		fs.files[name] = f
	}
	if fs.prepare != nil {
		fs.prepare(name, f)
	}
	return f, nil
}

func (fs *fakeFS) file(name string) *fakeFile {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.files[name]
}

func (fs *fakeFS) setOpenErr(err error) {
	fs.mu.Lock()
	fs.openErr = err
	fs.mu.Unlock()
}

// newFakeRotator returns a rotator over a fakeFS rooted in a temporary directory.
func newFakeRotator(t *testing.T, opts ...Option) (*rotator, *fakeFS) {
	t.Helper()
	cfg, err := newConfig(t.TempDir(), "app", opts...)
	if err != nil {
		t.Fatalf("newConfig() failed: %v", err)
	}
	fs := newFakeFS()
	cfg.open = fs.open
	return newRotator(cfg), fs
}

// errCollector gathers errors passed to an error handler.
type errCollector struct {
	ch chan error
}

func newErrCollector() *errCollector {
	return &errCollector{ch: make(chan error, 16)}
}

func (c *errCollector) handle(err error) { c.ch <- err }

func (c *errCollector) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-c.ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a reported error")
		return nil
	}
}

var errDiskFull = errors.New("no space left on device")
