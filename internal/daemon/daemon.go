package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"recshard/internal/config"
	"recshard/internal/logging"
	"recshard/internal/services"
)

// Runner is the long-running loop the daemon guards.
type Runner interface {
	Run(ctx context.Context) error
}

// Daemon coordinates the organizer loop and enforces single-instance execution.
type Daemon struct {
	logger *slog.Logger
	runner Runner

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a daemon guarding runner with the lock file from cfg.
func New(cfg *config.Config, logger *slog.Logger, runner Runner) (*Daemon, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("daemon requires config and runner")
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		logger:   logging.NewComponentLogger(logger, "daemon"),
		runner:   runner,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the single-instance lock file path.
func (d *Daemon) LockPath() string { return d.lockPath }

// Running reports whether Run is currently executing.
func (d *Daemon) Running() bool { return d.running.Load() }

// Run acquires the lock and runs the loop until ctx is cancelled or the loop
// fails. The lock is released before returning.
func (d *Daemon) Run(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "daemon", "ensure lock dir", "Failed to create lock directory", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "daemon", "acquire lock", d.lockPath, err)
	}
	if !ok {
		return services.Wrap(services.ErrConfiguration, "daemon", "acquire lock",
			fmt.Sprintf("another recshard instance is already running (lock %s)", d.lockPath), nil)
	}
	d.running.Store(true)
	defer func() {
		d.running.Store(false)
		if err := d.lock.Unlock(); err != nil {
			logging.WarnWithContext(d.logger, "failed to release daemon lock", "lock_release_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the lock file if no recshard process is running"),
				logging.String(logging.FieldImpact, "lock file remains on disk"),
			)
		}
	}()

	logging.WithContext(ctx, d.logger).Info("recshard daemon started", logging.String("lock", d.lockPath))
	err = d.runner.Run(ctx)
	logging.WithContext(ctx, d.logger).Info("recshard daemon stopped")
	return err
}

// InstanceRunning reports whether another process holds the lock at lockPath.
func InstanceRunning(lockPath string) (bool, error) {
	if _, err := os.Stat(lockPath); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	probe := flock.New(lockPath)
	ok, err := probe.TryLock()
	if err != nil {
		return false, err
	}
	if ok {
		_ = probe.Unlock()
		return false, nil
	}
	return true, nil
}
