package watcher

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a fixed set of rule files in the project root.
// Unlike a full project watcher it registers only the root directory itself;
// the files it cares about (.gitignore, .uploadignore) live there.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	watched   map[string]bool // basenames to report
	logger    *slog.Logger
}

// New creates a watcher on rootDir that reports events only for the given
// root-level file names.
func New(rootDir string, fileNames []string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(rootDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	watched := make(map[string]bool, len(fileNames))
	for _, name := range fileNames {
		watched[name] = true
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(200 * time.Millisecond),
		watched:   watched,
		logger:    logger,
	}, nil
}

// Events returns the channel that receives debounced batches of changed
// rule-file paths.
func (w *Watcher) Events() <-chan []string {
	return w.debouncer.Output()
}

// Start begins listening for file system events. Call this in a goroutine.
// It runs until the watcher is closed.
func (w *Watcher) Start() {
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

// handleEvent forwards an event to the debouncer when it concerns a watched
// rule file. Removal and rename count too: a deleted .gitignore changes the
// effective rules just as much as an edited one.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.watched[filepath.Base(event.Name)] {
		return
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.debouncer.Add(event.Name)
	}
}

// Close stops the watcher, releases resources, and closes the Events
// channel so consumers ranging over it terminate.
func (w *Watcher) Close() error {
	err := w.fsWatcher.Close()
	w.debouncer.Close()
	return err
}
