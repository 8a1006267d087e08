package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mantonx/filmadmin/internal/logger"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 250 * time.Millisecond

// Watch reloads the configuration whenever the loaded file changes, until
// ctx is cancelled. It watches the parent directory so that atomic
// rename-on-save still triggers a reload.
func (cm *ConfigManager) Watch(ctx context.Context) error {
	path := cm.Path()
	if path == "" {
		return fmt.Errorf("no config path set")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	go cm.watchLoop(ctx, watcher, filepath.Clean(path))
	return nil
}

func (cm *ConfigManager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string) {
	defer watcher.Close()

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := cm.Reload(); err != nil {
				logger.Warn("config reload failed, keeping previous configuration", "path", path, "error", err)
				continue
			}
			logger.Info("configuration reloaded", "path", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("config watcher error", "error", err)
		}
	}
}
