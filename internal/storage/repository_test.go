package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "tracker.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	v, ok, err := s.Get(context.Background(), "nope")
	if err != nil || ok || v != nil {
		t.Fatalf("expected absent key, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte(`[1]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("put again: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(v) != `[1,2]` {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	// Migrations must be a no-op on an up-to-date schema.
	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}
}
