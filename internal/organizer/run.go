package organizer

import (
	"context"
	"errors"
	"time"

	"recshard/internal/logging"
	"recshard/internal/services"
)

// Run prepares the destination root and then runs passes until ctx is
// cancelled or a pass fails with a non-transient error. Cancellation returns
// nil; the loop has no other way to finish.
func (o *Organizer) Run(ctx context.Context) error {
	ctx = services.WithStage(ctx, stageName)
	logger := logging.WithContext(ctx, o.logger)

	if err := o.Prepare(ctx); err != nil {
		return err
	}

	var wake <-chan struct{}
	if o.watch && o.pollInterval > 0 {
		ch, stop, err := watchSource(ctx, o.source, logger)
		if err != nil {
			logging.WarnWithContext(logger, "source watcher unavailable; falling back to polling", "watcher_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check inotify limits and staging directory permissions"),
				logging.String(logging.FieldImpact, "new files are picked up on the next poll interval"),
			)
		} else {
			defer stop()
			wake = ch
		}
	}

	var timer *time.Timer
	if o.pollInterval > 0 {
		timer = time.NewTimer(o.pollInterval)
		defer timer.Stop()
	}

	for {
		if _, err := o.Pass(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				break
			}
			logging.ErrorWithContext(logger, "organizer pass failed", "pass_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check staging and destination directory access"),
			)
			return err
		}
		if !o.wait(ctx, timer, wake) {
			break
		}
	}

	logger.Info("organizer stopped", logging.Int("moved_files", o.MovedCount()))
	return nil
}

// wait pauses between passes. It returns false when ctx is done.
func (o *Organizer) wait(ctx context.Context, timer *time.Timer, wake <-chan struct{}) bool {
	if timer == nil {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}
	timer.Reset(o.pollInterval)
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	case <-wake:
	}
	return true
}
