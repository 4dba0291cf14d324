package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a catalog file must stay unchanged before
// a change is reported.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher reports changes to a single catalog file. It watches the file's
// directory so that editors which replace the file by rename are seen too.
type Watcher struct {
	path        string
	settleDelay time.Duration
	logger      *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithSettleDelay sets how long the file must stay quiet before a change is
// reported. Bursts of writes inside the delay are reported once.
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.settleDelay = d
	}
}

// NewWatcher creates a Watcher for the file at path.
func NewWatcher(path string, logger *slog.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:        path,
		settleDelay: DefaultSettleDelay,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks until ctx is canceled, calling onChange each time the file
// is written or replaced and has then settled.
func (w *Watcher) Watch(ctx context.Context, onChange func(context.Context)) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	w.logger.Debug("watching catalog", "path", target)

	timer := time.NewTimer(w.settleDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.settleDelay)
		case <-timer.C:
			w.logger.Info("catalog changed", "path", target)
			onChange(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", target, "error", err)
		}
	}
}
