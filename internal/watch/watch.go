// Package watch implements the hot-rebuild loop: an fsnotify watch on the
// pool directory that debounces bursts of filesystem events into a single
// rebuild, then atomically swaps the Selector's Catalog reference. Queries
// already in flight against the previous Catalog are unaffected.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/diag"
)

// RebuildFunc scans the pool and builds a fresh Catalog. It is supplied
// by the caller (the atomupdctl watch command) so this package has no
// direct dependency on the Scanner.
type RebuildFunc func() (*catalog.Catalog, diag.Log, error)

// Watcher holds the current Catalog behind an atomic pointer and keeps it
// current as the pool directory changes.
type Watcher struct {
	poolDir  string
	debounce time.Duration
	rebuild  RebuildFunc
	log      *logrus.Logger

	fsWatcher *fsnotify.Watcher
	current   atomic.Pointer[catalog.Catalog]
}

// New builds a Watcher and performs the first scan synchronously, so
// Current never returns nil once New succeeds.
func New(poolDir string, debounce time.Duration, rebuild RebuildFunc, log *logrus.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := addRecursive(fsWatcher, poolDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", poolDir, err)
	}

	w := &Watcher{poolDir: poolDir, debounce: debounce, rebuild: rebuild, log: log, fsWatcher: fsWatcher}

	cat, diagnostics, err := rebuild()
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("initial scan of %s: %w", poolDir, err)
	}
	w.logDiagnostics(diagnostics)
	w.current.Store(cat)

	return w, nil
}

// Current returns the most recently built Catalog. Safe for concurrent
// use by arbitrarily many Selector callers.
func (w *Watcher) Current() *catalog.Catalog {
	return w.current.Load()
}

// Run watches for filesystem events until ctx is cancelled, debouncing
// bursts into single rebuilds. Rebuilds are serialized: Run never starts
// a new rebuild while a previous one (including the one in New) is still
// being swapped in.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addRecursive(w.fsWatcher, event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			if w.log != nil {
				w.log.WithError(err).Warn("fsnotify error")
			}

		case <-timerC:
			timerC = nil
			w.rebuildOnce()
		}
	}
}

func (w *Watcher) rebuildOnce() {
	cat, diagnostics, err := w.rebuild()
	if err != nil {
		if w.log != nil {
			w.log.WithError(err).Warn("rebuild failed, keeping previous catalog")
		}
		return
	}
	w.logDiagnostics(diagnostics)
	w.current.Store(cat)
}

func (w *Watcher) logDiagnostics(diagnostics diag.Log) {
	if w.log == nil {
		return
	}
	for _, record := range diagnostics.Records() {
		w.log.WithField("path", record.Path).WithField("rule", record.Rule).Debug(record.Message)
	}
}

// addRecursive registers a watch on root and every subdirectory beneath
// it; fsnotify watches are not recursive on any platform.
func addRecursive(fsWatcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsWatcher.Add(path)
		}
		return nil
	})
}
