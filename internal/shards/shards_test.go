package shards_test

import (
	"os"
	"path/filepath"
	"testing"

	"recshard/internal/shards"
	"recshard/internal/testsupport"
)

func TestListMissingRoot(t *testing.T) {
	for _, root := range []string{"", "   ", filepath.Join(t.TempDir(), "absent")} {
		got, err := shards.List(root)
		if err != nil || len(got) != 0 {
			t.Errorf("List(%q) = %v, %v", root, got, err)
		}
	}
}

func TestListCountsFilesPerShard(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "00000", "1_lr.hea"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "00000", "1_lr.dat"), 20)
	testsupport.WriteFile(t, filepath.Join(root, "100000", "100001_lr.png"), 5)
	testsupport.WriteFile(t, filepath.Join(root, "07000", "7342_lr.hea"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "stray.txt"), 1)

	got, err := shards.List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 shards, got %d", len(got))
	}
	wantOrder := []string{"00000", "07000", "100000"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Fatalf("shard %d = %q, want %q", i, got[i].Name, name)
		}
	}
	if got[0].Files != 2 || got[0].Size != 30 {
		t.Fatalf("unexpected 00000 summary: %+v", got[0])
	}
}

func TestScanCountsPending(t *testing.T) {
	tree := testsupport.NewTree(t)
	tree.Stage(t, "1_lr.hea", "2_lr.dat", "notes.txt")
	if err := os.Mkdir(filepath.Join(tree.Source, "tmp"), 0o755); err != nil {
		t.Fatal(err)
	}

	pending, err := shards.Scan(tree.Source)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if pending.Matching != 2 || pending.Ignored != 2 {
		t.Fatalf("unexpected pending summary %+v", pending)
	}
	if pending.Bytes != int64(len("1_lr.hea")+len("2_lr.dat")) {
		t.Fatalf("unexpected pending bytes %d", pending.Bytes)
	}
}

func TestScanMissingSource(t *testing.T) {
	if _, err := shards.Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing staging directory")
	}
}
