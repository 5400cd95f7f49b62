package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/logger"
)

// Watch reloads the catalog whenever the file changes and reports each
// outcome on the returned channel. The directory is watched rather than the
// file so that editors which replace the file on save are still seen.
// The channel is closed when ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan driven.CatalogChange, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}

	changes := make(chan driven.CatalogChange)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.handleEvent(event) {
					continue
				}
				catalog, err := s.Load(ctx)
				select {
				case changes <- driven.CatalogChange{Catalog: catalog, Err: err}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleEvent reports whether event should trigger a reload.
func (s *Source) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.path {
		return false
	}
	logger.Debug("catalog event: %s", event)
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
