package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/KromDaniel/regexamples/internal/config"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits after the last change before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the configuration at path whenever it changes and passes it to
// run. It blocks until ctx is cancelled. Invalid configurations and run failures
// are logged and watching continues.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *zap.Logger, run func(context.Context, *config.Config) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file rather than write it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching config", zap.String("path", abs))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config changed", zap.Stringer("op", event.Op))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			cfg, err := config.Load(abs)
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				continue
			}
			if err := run(ctx, cfg); err != nil {
				logger.Error("run failed", zap.Error(err))
			}
		}
	}
}
