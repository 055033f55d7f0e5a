package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RetentionTarget selects run logs to prune in one directory.
type RetentionTarget struct {
	Dir     string
	Pattern string
	// Exclude lists paths that are never pruned, typically the current run log.
	Exclude []string
	// KeepNewest always keeps this many of the most recent matches,
	// whatever their age.
	KeepNewest int
}

type runLog struct {
	path    string
	modTime time.Time
}

// CleanupOldLogs prunes run logs older than retentionDays and returns the
// removed paths. retentionDays <= 0 disables pruning.
func CleanupOldLogs(logger *slog.Logger, retentionDays int, targets ...RetentionTarget) []string {
	if retentionDays <= 0 {
		return nil
	}
	if logger == nil {
		logger = NewNop()
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	var removed []string
	for _, target := range targets {
		logs := target.candidates()
		if target.KeepNewest > 0 {
			if target.KeepNewest >= len(logs) {
				continue
			}
			logs = logs[target.KeepNewest:]
		}
		for _, old := range logs {
			if !old.modTime.Before(cutoff) {
				continue
			}
			if err := os.Remove(old.path); err != nil {
				WarnWithContext(logger, "run log not pruned", "log_retention_failed",
					String("path", old.path),
					Error(err),
					String(FieldErrorHint, "check permissions on log_dir"),
					String(FieldImpact, "old run log stays on disk"),
				)
				continue
			}
			removed = append(removed, old.path)
		}
	}
	if len(removed) > 0 {
		logger.Debug("run logs pruned",
			Int("count", len(removed)),
			Int("retention_days", retentionDays),
			String(FieldEventType, "log_pruned"),
		)
	}
	return removed
}

// candidates lists regular files matching the target pattern, newest first,
// without excluded paths.
func (t RetentionTarget) candidates() []runLog {
	dir := strings.TrimSpace(t.Dir)
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	excluded := make(map[string]bool, len(t.Exclude))
	for _, path := range t.Exclude {
		excluded[absPath(path)] = true
	}
	pattern := strings.TrimSpace(t.Pattern)

	var logs []runLog
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if pattern != "" {
			if ok, err := filepath.Match(pattern, entry.Name()); err != nil || !ok {
				continue
			}
		}
		path := absPath(filepath.Join(dir, entry.Name()))
		if excluded[path] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, runLog{path: path, modTime: info.ModTime()})
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].modTime.After(logs[j].modTime) })
	return logs
}

func absPath(path string) string {
	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
