// # internal/watcher/watcher.go
package watcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"strata/internal/util"
)

// Watcher recursively watches scan roots and delivers debounced batches of
// changed paths on Changes. Exclude globs match path basenames, mirroring the
// scan-time excludes.
type Watcher struct {
	fsw          *fsnotify.Watcher
	debounce     time.Duration
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
	changes      chan []string

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	closed  bool
}

func New(debounce time.Duration, excludeDirs, excludeFiles []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirGlobs, err := util.CompileGlobs(excludeDirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := util.CompileGlobs(excludeFiles)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:          fsw,
		debounce:     debounce,
		excludeDirs:  dirGlobs,
		excludeFiles: fileGlobs,
		changes:      make(chan []string, 1),
		pending:      make(map[string]struct{}),
	}, nil
}

// Changes delivers debounced change batches. The channel closes when the
// watcher is closed.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Watch registers every directory under the given roots and starts the event
// loop.
func (w *Watcher) Watch(roots []string) error {
	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if util.MatchAny(w.excludeDirs, filepath.Base(path)) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// A new directory needs a watch of its own.
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if !util.MatchAny(w.excludeDirs, filepath.Base(event.Name)) {
				if err := w.addRecursive(event.Name); err != nil {
					slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			return
		}
	}

	if util.MatchAny(w.excludeFiles, filepath.Base(event.Name)) {
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		w.schedule(event.Name)
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || len(w.pending) == 0 {
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}

	select {
	case w.changes <- paths:
		w.pending = make(map[string]struct{})
	default:
		// Consumer still busy with the previous batch; keep the paths
		// pending and try again after another debounce interval.
		w.timer = time.AfterFunc(w.debounce, w.flush)
	}
}

// Close stops the event loop and closes the Changes channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	close(w.changes)
	return err
}
