package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for a snapshot file to stop
// changing before loading it.
const defaultDebounce = 500 * time.Millisecond

// Watcher loads snapshot files dropped into the data directory while the
// process is running. Loading goes through Store.LoadFile, so the store's
// single-writer contract applies: the watcher is the one background writer
// and must not run concurrently with an import job unless the caller
// serializes them.
type Watcher struct {
	store    *Store
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher over the data directory.
func NewWatcher(store *Store, dir string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		store:    store,
		dir:      dir,
		debounce: defaultDebounce,
		watcher:  fw,
		logger:   logger,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run processes file events until the context is cancelled. Watcher errors
// are logged and never fatal.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if !matchesSnapshot(name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("snapshot watcher error", slog.String("error", err.Error()))
		}
	}
}

// schedule (re)arms the debounce timer for a changed snapshot file.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if err := w.store.LoadFile(path); err != nil {
			w.logger.Error("failed to load watched snapshot",
				slog.String("file", filepath.Base(path)),
				slog.String("error", err.Error()))
			snapshotLoads.WithLabelValues("error").Inc()
			return
		}
		w.logger.Info("loaded watched snapshot",
			slog.String("file", filepath.Base(path)),
			slog.Int("statements", w.store.Len()))
		snapshotLoads.WithLabelValues("ok").Inc()
	})
}
