package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// DefaultDebounceInterval is the quiet period before a batch of filesystem
// events is delivered. Editors often write a file several times per save;
// debouncing collapses those into one re-extraction.
const DefaultDebounceInterval = 100 * time.Millisecond

// Watcher turns raw filesystem notifications into a stream of debounced
// FileEvent batches for the indexer's incremental update path.
type Watcher struct {
	source    *Source
	fsWatcher *fsnotify.Watcher
	debouncer *debouncer
	done      chan struct{}
}

// Watch starts recursive watching of the source's root. All non-ignored
// subdirectories are registered up front; directories created later are
// registered as their create events arrive.
func (s *Source) Watch() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		source:    s,
		fsWatcher: fsWatcher,
		debouncer: newDebouncer(DefaultDebounceInterval),
		done:      make(chan struct{}),
	}

	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root && s.matcher.ShouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if addErr := fsWatcher.Add(path); addErr != nil {
			s.logger.Warn("failed to watch directory", "path", path, "error", addErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Events returns the channel of debounced event batches.
func (w *Watcher) Events() <-chan []types.FileEvent {
	return w.debouncer.Output()
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.source.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.source.matcher.ShouldIgnoreDir(path) {
				if err := w.fsWatcher.Add(path); err != nil {
					w.source.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if !w.source.eligible(path) {
		return
	}

	var op types.FileEventOp
	switch {
	case event.Has(fsnotify.Create):
		op = types.FileCreated
	case event.Has(fsnotify.Write):
		op = types.FileChanged
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = types.FileDeleted
	default:
		return
	}

	w.debouncer.Add(types.FileEvent{Op: op, Path: path})
}
