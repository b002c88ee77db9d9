package cache

import (
	"testing"
	"time"
)

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok { // a is now most recent
		t.Fatal("a missing")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a = %v, %v", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUCache_TTL(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	c.Set("k2", "v2")
	if _, ok := c.Get("k"); !ok {
		t.Fatal("fresh entry missing")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}
	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("cleaned %d, want 1", n)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUCache_DeleteAndOverwrite(t *testing.T) {
	c := NewLRUCache[int](0, 0) // size clamps to 1
	c.Set("a", 1)
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("a = %d", v)
	}
	c.Delete("a")
	if c.Size() != 0 {
		t.Fatal("delete did not remove entry")
	}
}

func TestManager_CleanNow(t *testing.T) {
	c := NewLRUCache[int](4, time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("a", 1)
	now = now.Add(time.Hour)

	m := NewManager(nil)
	m.Register(c)
	if n := m.CleanNow(); n != 1 {
		t.Fatalf("cleaned %d", n)
	}

	m.StartCleanup(time.Millisecond)
	m.Stop()
	m.Stop() // second stop is a no-op
}
