package dailylog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular")
	if err := os.WriteFile(regular, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	testCases := []struct {
		name      string
		directory string
		prefix    string
		opts      []Option
	}{
		{name: "empty_directory", directory: "", prefix: "app"},
		{name: "empty_prefix", directory: dir, prefix: ""},
		{name: "prefix_with_slash", directory: dir, prefix: "a/b"},
		{name: "prefix_with_backslash", directory: dir, prefix: `a\b`},
		{name: "discriminant_with_slash", directory: dir, prefix: "app", opts: []Option{WithDiscriminant("x/y")}},
		{name: "empty_suffix", directory: dir, prefix: "app", opts: []Option{WithSuffix("")}},
		{name: "suffix_with_slash", directory: dir, prefix: "app", opts: []Option{WithSuffix("log/../../escaped")}},
		{name: "suffix_with_backslash", directory: dir, prefix: "app", opts: []Option{WithSuffix(`log\x`)}},
		{name: "dot_suffix", directory: dir, prefix: "app", opts: []Option{WithSuffix(".")}},
		{name: "negative_buffer", directory: dir, prefix: "app", opts: []Option{WithBufferSize(-1)}},
		{name: "non_permission_mode", directory: dir, prefix: "app", opts: []Option{WithFileMode(os.ModeDir | 0o644)}},
		{name: "nil_location", directory: dir, prefix: "app", opts: []Option{WithLocation(nil)}},
		{name: "nil_date_provider", directory: dir, prefix: "app", opts: []Option{WithDateProvider(nil)}},
		{name: "directory_is_a_file", directory: regular, prefix: "app"},
		{name: "directory_under_a_file", directory: filepath.Join(regular, "sub"), prefix: "app"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w, err := New(tc.directory, tc.prefix, tc.opts...)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if w != nil {
				t.Error("expected a nil Writer on error")
			}
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "a", "b")

	c, err := newConfig(dir, "app")
	if err != nil {
		t.Fatalf("newConfig() failed: %v", err)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}
	if c.suffix != DefaultSuffix {
		t.Errorf("suffix = %q, want %q", c.suffix, DefaultSuffix)
	}
	if c.location != time.Local {
		t.Errorf("location = %v, want Local", c.location)
	}
	if c.fileMode != DefaultFileMode {
		t.Errorf("file mode = %o, want %o", c.fileMode, DefaultFileMode)
	}
	if c.bufferSize != 0 {
		t.Errorf("buffer size = %d, want 0", c.bufferSize)
	}
	if _, ok := c.dates.(SystemDate); !ok {
		t.Errorf("date provider = %T, want SystemDate", c.dates)
	}
	if c.monotonic {
		t.Error("monotonic dates should be off by default")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("construction created %d files, want none", len(entries))
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dates := NewManualDate(day)
	loc := time.FixedZone("test", 3600)

	c, err := newConfig(dir, "app",
		WithDateProvider(dates),
		WithLocation(loc),
		WithSuffix(".txt"),
		WithDiscriminant("node7"),
		WithBuffering(true),
		WithFileMode(0o600),
		WithSymlink("current"),
		WithMonotonicDates(),
	)
	if err != nil {
		t.Fatalf("newConfig() failed: %v", err)
	}

	if c.dates != dates {
		t.Error("date provider not applied")
	}
	if c.location != loc {
		t.Error("location not applied")
	}
	if c.bufferSize != DefaultBufferSize {
		t.Errorf("buffer size = %d, want %d", c.bufferSize, DefaultBufferSize)
	}
	if c.fileMode != 0o600 || c.symlink != "current" || !c.monotonic {
		t.Errorf("unexpected config: mode=%o symlink=%q monotonic=%v", c.fileMode, c.symlink, c.monotonic)
	}
	if got, want := c.path(day), filepath.Join(dir, "app_node7_r2021-03-28.txt"); got != want {
		t.Errorf("path() = %q, want %q", got, want)
	}

	c, err = newConfig(dir, "app", WithBuffering(true), WithBuffering(false))
	if err != nil {
		t.Fatalf("newConfig() failed: %v", err)
	}
	if c.bufferSize != 0 {
		t.Errorf("later option should win, buffer size = %d", c.bufferSize)
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	t.Run("calls_handler", func(t *testing.T) {
		t.Parallel()
		errs := newErrCollector()
		obs := &recordingObserver{}
		c := &config{errHandler: errs.handle, observer: obs}

		c.report(errDiskFull)
		if got := errs.wait(t); got != errDiskFull {
			t.Errorf("handler got %v, want %v", got, errDiskFull)
		}
		if len(obs.errs) != 1 {
			t.Errorf("observer saw %d errors, want 1", len(obs.errs))
		}
	})

	t.Run("survives_panicking_handler", func(t *testing.T) {
		t.Parallel()
		done := make(chan struct{})
		c := &config{errHandler: func(error) {
			defer close(done)
			panic("boom")
		}}

		c.report(errDiskFull)
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("handler was not called")
		}
	})

	t.Run("ignores_nil", func(t *testing.T) {
		t.Parallel()
		c := &config{errHandler: func(error) { t.Error("handler called for nil error") }}
		c.report(nil)
	})
}
