package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collects bursts of writes from editors into one render
const watchDebounce = 100 * time.Millisecond

// watchFile calls onChange after path is written or replaced, until ctx is
// done. The parent directory is watched so editors that save by renaming
// are still seen.
func watchFile(ctx context.Context, path string, logger *log.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("file changed", "path", path, "op", event.Op.String())
				pending = true
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)

		case <-ticker.C:
			if pending {
				pending = false
				onChange()
			}
		}
	}
}
