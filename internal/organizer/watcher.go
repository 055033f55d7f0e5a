package organizer

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"recshard/internal/logging"
)

const wakeOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Chmod

// watchSource signals on the returned channel whenever the staging directory
// changes. Signals coalesce; the loop still lists the directory itself.
func watchSource(ctx context.Context, dir string, logger *slog.Logger) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	wake := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&wakeOps == 0 {
					continue
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("source watcher error", logging.Error(err))
			}
		}
	}()

	stop := func() {
		_ = watcher.Close()
		<-done
	}
	return wake, stop, nil
}
