package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "expense-tracker-transactions"); ok || err != nil {
		t.Fatalf("expected missing, ok=%v err=%v", ok, err)
	}
	if err := s.Put(ctx, "expense-tracker-transactions", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "expense-tracker-transactions", []byte("[1]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := s.Get(ctx, "expense-tracker-transactions")
	if err != nil || !ok || string(v) != "[1]" {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "data"))
	if len(entries) != 1 {
		t.Fatalf("expected only the value file, found %d entries", len(entries))
	}
}

func TestStore_PathSanitizesKey(t *testing.T) {
	s := &Store{dir: "/data"}
	if got := s.Path("../etc/passwd"); got != filepath.Join("/data", ".._etc_passwd.json") {
		t.Fatalf("got %s", got)
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expense-tracker-2025-03-09.json")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := WriteAtomic(path, []byte("[]\n"), 0644); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "[]\n" {
		t.Fatalf("got %q err=%v", b, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected no temp files left, found %d entries", len(entries))
	}

	if err := WriteAtomic(filepath.Join(dir, "missing", "x.json"), nil, 0644); err == nil {
		t.Error("expected error for a missing directory")
	}
}
