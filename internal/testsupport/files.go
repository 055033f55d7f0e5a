package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree is a staging directory plus a destination root inside a temp dir.
type Tree struct {
	Source      string
	Destination string
}

// NewTree creates an empty staging directory. The destination root is left
// absent so callers can check it gets created on demand.
func NewTree(t testing.TB) Tree {
	t.Helper()

	base := t.TempDir()
	tree := Tree{
		Source:      filepath.Join(base, "dat", "clean"),
		Destination: filepath.Join(base, "dat", "data"),
	}
	if err := os.MkdirAll(tree.Source, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", tree.Source, err)
	}
	return tree
}

// Stage writes small files with the given names into the staging directory.
func (tr Tree) Stage(t testing.TB, names ...string) {
	t.Helper()
	for _, name := range names {
		WriteFile(t, filepath.Join(tr.Source, name), int64(len(name)))
	}
}

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// AssertExists fails the test if path does not exist.
func AssertExists(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

// AssertMissing fails the test if path exists.
func AssertMissing(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err=%v", path, err)
	}
}
