// Package shards inspects the destination tree and the staging directory for
// the status command. It never moves or deletes anything.
package shards

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"recshard/internal/records"
)

// ShardInfo contains metadata about one shard directory.
type ShardInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Files   int       `json:"files"`
	Size    int64     `json:"size_bytes"`
	ModTime time.Time `json:"modified"`
}

// Pending describes what is waiting in the staging directory.
type Pending struct {
	Matching int   `json:"matching"`
	Ignored  int   `json:"ignored"`
	Bytes    int64 `json:"matching_bytes"`
}

// List returns all shard directories under root with their file counts. A
// missing root yields an empty result.
func List(root string) ([]ShardInfo, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var shards []ShardInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(root, entry.Name())
		files, size := dirContents(path)
		shards = append(shards, ShardInfo{
			Name:    entry.Name(),
			Path:    path,
			Files:   files,
			Size:    size,
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(shards, func(i, j int) bool {
		if len(shards[i].Name) != len(shards[j].Name) {
			return len(shards[i].Name) < len(shards[j].Name)
		}
		return shards[i].Name < shards[j].Name
	})
	return shards, nil
}

// Scan counts eligible and ignored entries in the staging directory.
func Scan(source string) (Pending, error) {
	var pending Pending
	entries, err := os.ReadDir(source)
	if err != nil {
		return pending, err
	}
	for _, entry := range entries {
		if !records.Matches(entry.Name()) {
			pending.Ignored++
			continue
		}
		pending.Matching++
		if info, err := entry.Info(); err == nil && !info.IsDir() {
			pending.Bytes += info.Size()
		}
	}
	return pending, nil
}

// dirContents counts regular files directly inside path and their total size.
func dirContents(path string) (int, int64) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, 0
	}
	var files int
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files++
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
	}
	return files, size
}
