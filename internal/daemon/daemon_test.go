package daemon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/flock"

	"recshard/internal/daemon"
	"recshard/internal/logging"
	"recshard/internal/services"
	"recshard/internal/testsupport"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestNewRequiresDependencies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := daemon.New(nil, logging.NewNop(), runnerFunc(func(context.Context) error { return nil })); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := daemon.New(cfg, logging.NewNop(), nil); err == nil {
		t.Fatal("expected error for nil runner")
	}
}

func TestRunHoldsLockWhileRunning(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	var d *daemon.Daemon
	var sawRunning, sawLocked bool
	runner := runnerFunc(func(ctx context.Context) error {
		sawRunning = d.Running()
		locked, err := daemon.InstanceRunning(cfg.LockPath())
		if err != nil {
			return err
		}
		sawLocked = locked
		return nil
	})
	var err error
	d, err = daemon.New(cfg, logging.NewNop(), runner)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sawRunning || !sawLocked {
		t.Fatalf("expected running=%v locked=%v to both be true", sawRunning, sawLocked)
	}
	if d.Running() {
		t.Fatal("daemon should report stopped after Run returns")
	}
	if locked, err := daemon.InstanceRunning(cfg.LockPath()); err != nil || locked {
		t.Fatalf("lock should be released: locked=%v err=%v", locked, err)
	}
}

func TestRunRefusesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	holder := flock.New(cfg.LockPath())
	if err := holder.Lock(); err != nil {
		t.Fatalf("hold lock: %v", err)
	}
	defer holder.Unlock()

	called := false
	d, err := daemon.New(cfg, logging.NewNop(), runnerFunc(func(context.Context) error {
		called = true
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	err = d.Run(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if called {
		t.Fatal("runner must not start without the lock")
	}
}

func TestRunPropagatesRunnerError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	boom := errors.New("boom")
	d, err := daemon.New(cfg, logging.NewNop(), runnerFunc(func(context.Context) error { return boom }))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestInstanceRunningWithoutLockFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	running, err := daemon.InstanceRunning(cfg.LockPath())
	if err != nil || running {
		t.Fatalf("expected not running, got running=%v err=%v", running, err)
	}
}
