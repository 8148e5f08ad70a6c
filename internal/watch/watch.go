// Package watch re-runs an Updater against a live document whenever the
// defaults file on disk changes: a wholesale file-write/create triggered
// reload, not a streaming or incremental update — the migration core itself
// stays synchronous and one-shot.
package watch

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/oriys/boostyaml/internal/update"
	"github.com/oriys/boostyaml/internal/yamldoc"
)

// Watcher watches a defaults YAML file and re-applies updater to store's
// live document whenever the file is written or recreated.
type Watcher struct {
	path    string
	store   *update.Store
	updater *update.Updater
}

// New returns a Watcher for the defaults file at path.
func New(path string, store *update.Store, updater *update.Updater) *Watcher {
	return &Watcher{path: path, store: store, updater: updater}
}

// Run blocks watching the defaults file for changes until done is closed,
// applying updater against the Store on every write/create event. Errors
// reloading or re-decoding the defaults file are logged and skipped,
// leaving the Store's current document untouched.
func (w *Watcher) Run(done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("watch: watch defaults file: %w", err)
	}

	slog.Info("watching defaults file for changes", slog.String("path", w.path))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", slog.String("error", err.Error()))
		case <-done:
			return nil
		}
	}
}

func (w *Watcher) reload() {
	slog.Info("defaults file changed, reapplying update", slog.String("path", w.path))
	data, err := os.ReadFile(w.path)
	if err != nil {
		slog.Error("watch: failed to read defaults file, keeping current", slog.String("error", err.Error()))
		return
	}
	defaults, err := yamldoc.Decode(data)
	if err != nil {
		slog.Error("watch: failed to decode defaults file, keeping current", slog.String("error", err.Error()))
		return
	}
	applied, err := w.store.Apply(w.updater, defaults)
	if err != nil {
		slog.Error("watch: update failed, keeping current document", slog.String("error", err.Error()))
		return
	}
	slog.Info("watch: update reapplied", slog.Bool("applied", applied))
}
