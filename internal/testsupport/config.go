package testsupport

import (
	"path/filepath"
	"testing"

	"recshard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose log directory lives in a per-test temp dir.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPollInterval sets the organizer poll interval in milliseconds.
func WithPollInterval(ms int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workflow.PollIntervalMS = ms
	}
}
