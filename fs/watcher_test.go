package fs_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/s4ng4/winelist/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Watch(t *testing.T) {
	t.Parallel()

	t.Run("reports a burst of writes once", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "wines.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"wines": []}`), 0644))

		var calls atomic.Int32
		changed := make(chan struct{}, 10)
		w := fs.NewWatcher(path, slog.New(slog.DiscardHandler), fs.WithSettleDelay(100*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- w.Watch(ctx, func(context.Context) {
				calls.Add(1)
				changed <- struct{}{}
			})
		}()

		// Give the watcher time to register before writing.
		time.Sleep(100 * time.Millisecond)
		for i := 0; i < 3; i++ {
			require.NoError(t, os.WriteFile(path, []byte(`{"wines": [{}]}`), 0644))
		}

		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatal("no change reported")
		}
		time.Sleep(300 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("ignores other files in the directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "wines.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"wines": []}`), 0644))

		var calls atomic.Int32
		w := fs.NewWatcher(path, slog.New(slog.DiscardHandler), fs.WithSettleDelay(50*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- w.Watch(ctx, func(context.Context) { calls.Add(1) })
		}()

		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
		time.Sleep(300 * time.Millisecond)

		cancel()
		require.NoError(t, <-done)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("returns error for a missing directory", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWatcher(filepath.Join(t.TempDir(), "missing", "wines.json"), slog.New(slog.DiscardHandler))
		err := w.Watch(context.Background(), func(context.Context) {})
		require.Error(t, err)
	})
}
