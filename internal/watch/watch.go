// Package watch re-runs a handler whenever a single file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor emits on save.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the watched path after it settles.
type Handler func(path string) error

// Watcher monitors one file through its parent directory, so a file replaced
// by rename is seen as well as one written in place.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	log      *slog.Logger
	watcher  *fsnotify.Watcher
}

// New creates a watcher for path. It does not start watching until Run.
func New(path string, handler Handler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		handler:  handler,
		log:      slog.Default(),
		watcher:  fsWatcher,
	}, nil
}

// WithDebounce sets the quiet period before the handler runs.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithLogger sets this watcher's logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	w.log = logger
	return w
}

// Run blocks until ctx is cancelled, calling the handler after each settled
// change. Handler calls never overlap. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}
	w.log.Info("watching file", "path", w.path)

	var (
		mu    sync.Mutex
		timer *time.Timer
		wg    sync.WaitGroup

		// A change during a running handler schedules another run; it
		// waits for the first to finish.
		handling sync.Mutex
	)
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("file event", "path", event.Name, "op", event.Op.String())

			mu.Lock()
			if timer != nil && timer.Stop() {
				wg.Done()
			}
			wg.Add(1)
			timer = time.AfterFunc(w.debounce, func() {
				defer wg.Done()
				handling.Lock()
				defer handling.Unlock()
				if ctx.Err() != nil {
					return
				}
				if err := w.handler(w.path); err != nil {
					w.log.Error("handling change", "path", w.path, "error", err)
				}
			})
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}
