package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce is how long the file must stay quiet before a reload.
const DefaultReloadDebounce = 150 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func(*UserConfig, error)

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches the directory holding path; editors often replace the
// file instead of writing it in place. onReload runs on the watcher's
// goroutine with the new config or the load error.
func NewWatcher(path string, debounce time.Duration, onReload func(*UserConfig, error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	return &Watcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		debounce: debounce,
		onReload: onReload,
	}, nil
}

// Start processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			logger.Debug("fsnotify event", "file", event.Name, "op", event.Op)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("Watcher error", "err", err)
		case <-ctx.Done():
			w.Close()
			return
		}
	}
}

// schedule restarts the quiet-period timer so a burst of writes reloads once.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		logger.Warn("Config reload failed", "path", w.path, "err", err)
	} else {
		logger.Info("Config reloaded", "path", w.path)
	}
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}

// Close stops the watcher and any pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
