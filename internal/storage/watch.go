package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"breakreminder/internal/core/model"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watch reloads the settings whenever the file is changed on disk and passes
// them to onChange. Reloads matching the last saved or loaded settings are
// skipped. It blocks until ctx is done.
func (store *Store) Watch(ctx context.Context, onChange func(model.Settings)) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// The directory is watched because Save replaces the file by rename.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(store.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("settings watcher: %v", err)
		case <-pending:
			pending = nil
			settings, err := store.load()
			if err != nil {
				log.Printf("reload settings: %v", err)
				continue
			}
			// Our own Save renames the file too; only report real changes.
			if !store.remember(settings) {
				continue
			}
			onChange(settings)
		}
	}
}
