// Package watcher keeps the indexes in step with the file system. It wraps
// fsnotify with recursive directory registration, exclusion filtering and
// debouncing, and hands consumers coalesced batches of per-file changes.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultQuietInterval is how long the event stream must stay silent before
// a batch is emitted.
const defaultQuietInterval = 100 * time.Millisecond

// PathFilter decides which paths the watcher should not report on.
type PathFilter interface {
	ShouldIgnoreDir(absolutePath string) bool
	ShouldIgnore(absolutePath string) bool
}

// Watcher watches a workspace tree recursively and emits debounced batches
// of file events.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	filter    PathFilter
	rootDir   string
	logger    *slog.Logger
}

// New builds a watcher over rootDir, registering every directory that the
// filter does not exclude.
func New(rootDir string, filter PathFilter, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(defaultQuietInterval),
		filter:    filter,
		rootDir:   rootDir,
		logger:    logger,
	}

	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
		}
		if !d.IsDir() {
			return nil
		}
		if path != rootDir && filter.ShouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Events returns the channel debounced batches arrive on.
func (w *Watcher) Events() <-chan []FileEvent {
	return w.debouncer.Output()
}

// Run pumps raw fsnotify events into the debouncer until the watcher is
// closed. Call it in a goroutine.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// Newly created directories must themselves be watched; fsnotify
	// registration is not recursive.
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if !w.filter.ShouldIgnoreDir(path) {
				if err := w.fsWatcher.Add(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if w.filter.ShouldIgnore(path) {
		return
	}

	// A rename notification refers to the old path, which no longer
	// exists, so it is reported as a removal.
	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = OpRemove
	default:
		return
	}

	w.debouncer.Record(path, op)
}

// Close stops watching and releases the underlying resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
