package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/pilly/internal/logger"
)

// Watch reloads the store whenever another process rewrites or removes the
// credentials file, calling onChange after each reload. It blocks until ctx
// is done. Reload and watcher errors are logged and the watch goes on.
// The parent directory is watched because editors and Save-style
// writers replace the file rather than write in place.
func (s *FileStore) Watch(ctx context.Context, log *logger.Logger, onChange func()) error {
	if log == nil {
		log = logger.Nop()
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Load(); err != nil {
				log.WarnWithFields("failed to reload credentials", []logger.Field{logger.Path(s.path), logger.Error(err)})
				continue
			}
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("credential watcher error: %v", err)
		}
	}
}
