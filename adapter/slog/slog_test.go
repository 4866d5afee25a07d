package slog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/slogtest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balinomad/go-dailylog"
	slogadapter "github.com/balinomad/go-dailylog/adapter/slog"
	"github.com/balinomad/go-dailylog/sinktest"
)

func TestNew_Options(t *testing.T) {
	t.Parallel()

	_, err := slogadapter.New(nil)
	assert.Error(t, err)

	_, err = slogadapter.New(sinktest.NewRecorder(), slogadapter.WithFormat("xml"))
	assert.Error(t, err)

	_, err = slogadapter.New(sinktest.NewRecorder(), slogadapter.WithLevel(nil))
	assert.Error(t, err)
}

func TestHandler_Slogtest(t *testing.T) {
	t.Parallel()
	sink := sinktest.NewRecorder()
	h, err := slogadapter.NewHandler(sink)
	require.NoError(t, err)

	results := func() []map[string]any {
		var ms []map[string]any
		for _, rec := range sink.Records() {
			var m map[string]any
			require.NoError(t, json.Unmarshal(rec.Data, &m))
			ms = append(ms, m)
		}
		return ms
	}

	require.NoError(t, slogtest.TestHandler(h, results))
}

func TestHandler_UsesRecordTime(t *testing.T) {
	t.Parallel()
	sink := sinktest.NewRecorder()
	h, err := slogadapter.NewHandler(sink, slogadapter.WithFormat("text"))
	require.NoError(t, err)

	ts := time.Date(2021, time.March, 28, 23, 59, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelWarn, "late", 0)
	r.AddAttrs(slog.String("k", "v"))
	require.NoError(t, h.WithGroup("g").Handle(context.Background(), r))

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, ts, records[0].Time)
	assert.Contains(t, string(records[0].Data), "msg=late")
	assert.Contains(t, string(records[0].Data), "g.k=v")
}

func TestLogger_Caller(t *testing.T) {
	t.Parallel()
	sink := sinktest.NewRecorder()
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	l, err := slogadapter.New(sink, slogadapter.WithCaller(true), slogadapter.WithLevel(level))
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	level.Set(slog.LevelDebug)
	l.Debug("kept too")

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "slog_test.go")
}

func TestHandler_ConcurrentDerivedHandlers(t *testing.T) {
	t.Parallel()
	sink := sinktest.NewRecorder()
	l, err := slogadapter.New(sink)
	require.NoError(t, err)

	const goroutines = 8
	const perGoroutine = 100
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := l.With("worker", i)
			for range perGoroutine {
				child.Info("tick")
			}
		}()
	}
	wg.Wait()

	records := sink.Records()
	require.Len(t, records, goroutines*perGoroutine)
	for _, rec := range records {
		assert.Equal(t, 1, strings.Count(string(rec.Data), "\n"))
		assert.False(t, rec.Time.IsZero())
	}
}

func TestHandler_Flush(t *testing.T) {
	t.Parallel()
	sink := sinktest.NewRecorder()
	h, err := slogadapter.NewHandler(sink)
	require.NoError(t, err)

	require.NoError(t, h.Flush())
	assert.Equal(t, 1, sink.Flushes())
}

func TestLogger_DailyFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := dailylog.New(dir, "slog", dailylog.WithLocation(time.UTC))
	require.NoError(t, err)

	h, err := slogadapter.NewHandler(w, slogadapter.WithFormat("text"))
	require.NoError(t, err)
	for _, day := range []int{28, 29} {
		ts := time.Date(2021, time.March, day, 12, 0, 0, 0, time.UTC)
		require.NoError(t, h.Handle(context.Background(), slog.NewRecord(ts, slog.LevelInfo, "noon", 0)))
	}
	require.NoError(t, w.Shutdown())

	for _, name := range []string{"slog_r2021-03-28.log", "slog_r2021-03-29.log"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(content), "msg=noon")
	}
}
