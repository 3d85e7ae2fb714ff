package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"propbrush/internal/engine"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher reports directories whose contents changed. Events from the
// OS are queued by fsnotify and only dispatched from Poll, so listeners run
// on the caller's thread.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	watched map[string]bool
	changed engine.EventWithArg[string]
	log     *slog.Logger
}

func NewDirWatcher(logger *slog.Logger) (*DirWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &DirWatcher{
		watcher: fw,
		watched: make(map[string]bool),
		log:     logger,
	}, nil
}

// Watch starts watching dir. Watching an already watched dir is a no-op.
func (w *DirWatcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	if w.watched[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watched[dir] = true
	w.log.Debug("watching directory", "dir", dir)
	return nil
}

// Unwatch stops watching dir.
func (w *DirWatcher) Unwatch(dir string) {
	dir = filepath.Clean(dir)
	if !w.watched[dir] {
		return
	}
	delete(w.watched, dir)
	if err := w.watcher.Remove(dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
		w.log.Warn("unwatch failed", "dir", dir, "err", err)
	}
}

func (w *DirWatcher) Subscribe(fn func(dir string)) engine.Subscription {
	return w.changed.AddListener(fn)
}

func (w *DirWatcher) Unsubscribe(id engine.Subscription) {
	w.changed.RemoveListener(id)
}

// Notify dispatches a change for dir immediately.
func (w *DirWatcher) Notify(dir string) {
	w.changed.Invoke(filepath.Clean(dir))
}

// Poll dispatches every queued file event without blocking and returns the
// number of directories notified. Each changed file notifies its parent
// directory once per Poll.
func (w *DirWatcher) Poll() int {
	dirs := make(map[string]bool)
	var order []string
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return w.dispatch(order)
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Write) {
				continue
			}
			dir := filepath.Dir(ev.Name)
			if !dirs[dir] {
				dirs[dir] = true
				order = append(order, dir)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return w.dispatch(order)
			}
			w.log.Warn("watcher error", "err", err)
		default:
			return w.dispatch(order)
		}
	}
}

func (w *DirWatcher) dispatch(dirs []string) int {
	for _, dir := range dirs {
		w.changed.Invoke(dir)
	}
	return len(dirs)
}

func (w *DirWatcher) Close() error {
	w.changed.RemoveAllListeners()
	return w.watcher.Close()
}
