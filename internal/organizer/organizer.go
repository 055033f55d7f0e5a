package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"recshard/internal/config"
	"recshard/internal/fileutil"
	"recshard/internal/logging"
	"recshard/internal/records"
	"recshard/internal/services"
)

const stageName = "organizer"

// MoveFunc relocates a single file. It is swapped in tests.
type MoveFunc func(src, dst string) error

// PassResult summarizes a single pass over the staging directory.
type PassResult struct {
	Listed       int
	AlreadyMoved int
	Ignored      int
	Moved        int
	Skipped      int
}

// Organizer moves eligible files from the staging directory into shard
// directories. It is not safe for concurrent use.
type Organizer struct {
	source       string
	destination  string
	pollInterval time.Duration
	watch        bool
	move         MoveFunc
	logger       *slog.Logger

	moved map[string]struct{}
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithPollInterval sets the pause between passes. Zero or negative polls continuously.
func WithPollInterval(d time.Duration) Option {
	return func(o *Organizer) {
		if d < 0 {
			d = 0
		}
		o.pollInterval = d
	}
}

// WithWatcher enables waking early on staging directory events.
func WithWatcher(enabled bool) Option {
	return func(o *Organizer) { o.watch = enabled }
}

// WithMoveFunc replaces the move primitive.
func WithMoveFunc(fn MoveFunc) Option {
	return func(o *Organizer) {
		if fn != nil {
			o.move = fn
		}
	}
}

// New constructs an organizer for the given staging directory and destination root.
func New(source, destination string, logger *slog.Logger, opts ...Option) *Organizer {
	o := &Organizer{
		source:      source,
		destination: destination,
		move:        fileutil.MoveFile,
		logger:      logging.NewComponentLogger(logger, stageName),
		moved:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewFromConfig constructs the organizer for the fixed staging and destination
// directories using the timing knobs from cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Organizer {
	var opts []Option
	if cfg != nil {
		opts = append(opts, WithPollInterval(cfg.PollInterval()), WithWatcher(cfg.Workflow.WatchSource))
	}
	return New(records.SourceDir, records.DestinationRoot, logger, opts...)
}

// Source returns the staging directory.
func (o *Organizer) Source() string { return o.source }

// Destination returns the destination root.
func (o *Organizer) Destination() string { return o.destination }

// HasMoved reports whether name was relocated during this run.
func (o *Organizer) HasMoved(name string) bool {
	_, ok := o.moved[name]
	return ok
}

// MovedCount returns the number of files relocated during this run.
func (o *Organizer) MovedCount() int { return len(o.moved) }

// Prepare creates the destination root.
func (o *Organizer) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(o.destination, 0o755); err != nil {
		return services.Wrap(services.ErrFilesystem, stageName, "ensure destination root",
			fmt.Sprintf("Failed to create destination root %q", o.destination), err)
	}
	logging.WithContext(ctx, o.logger).Info("organizer prepared",
		logging.String("source", o.source),
		logging.String("destination", o.destination),
		logging.Duration("poll_interval", o.pollInterval),
	)
	return nil
}

// Pass runs a single listing pass. Transient move failures are logged and
// skipped; any other failure is returned.
func (o *Organizer) Pass(ctx context.Context) (PassResult, error) {
	logger := logging.WithContext(ctx, o.logger)
	var result PassResult

	entries, err := os.ReadDir(o.source)
	if err != nil {
		return result, services.Wrap(services.ErrFilesystem, stageName, "list source",
			fmt.Sprintf("Failed to read staging directory %q", o.source), err)
	}
	result.Listed = len(entries)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		name := entry.Name()
		if o.HasMoved(name) {
			result.AlreadyMoved++
			continue
		}
		rec, ok := records.Parse(name)
		if !ok {
			result.Ignored++
			continue
		}

		err := o.relocate(rec)
		switch {
		case err == nil:
			o.moved[name] = struct{}{}
			result.Moved++
			logger.Info("file moved",
				logging.String("file", name),
				logging.String("shard", rec.Shard),
				logging.String(logging.FieldEventType, "file_moved"),
			)
		case services.IsTransient(err):
			result.Skipped++
			logger.Info("skipping file",
				logging.String("file", name),
				logging.String("reason", "in use or not ready"),
				logging.Error(err),
				logging.String(logging.FieldEventType, "file_skipped"),
			)
		default:
			return result, err
		}
	}

	if result.Moved > 0 || result.Skipped > 0 {
		logger.Debug("pass complete",
			logging.Int("listed", result.Listed),
			logging.Int("moved", result.Moved),
			logging.Int("skipped", result.Skipped),
			logging.Int("ignored", result.Ignored),
			logging.Int("already_moved", result.AlreadyMoved),
		)
	}
	return result, nil
}

func (o *Organizer) relocate(rec records.Record) error {
	shardDir := filepath.Join(o.destination, rec.Shard)
	if err := os.MkdirAll(shardDir, 0o755); err != nil {
		return services.Wrap(services.ErrFilesystem, stageName, "ensure shard",
			fmt.Sprintf("Failed to create shard directory %q", shardDir), err)
	}
	src := filepath.Join(o.source, rec.Name)
	dst := filepath.Join(shardDir, rec.Name)
	if err := o.move(src, dst); err != nil {
		if fileutil.IsBusy(err) {
			return fmt.Errorf("%w: %w", services.ErrTransient, err)
		}
		return services.Wrap(services.ErrFilesystem, stageName, "move file",
			fmt.Sprintf("Failed to move %q to shard %s", rec.Name, rec.Shard), err)
	}
	return nil
}
