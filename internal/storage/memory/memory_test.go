package memory

import (
	"context"
	"errors"
	"testing"
)

func TestStore_PutGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	buf := []byte("abc")
	if err := s.Put(ctx, "k", buf); err != nil {
		t.Fatalf("put: %v", err)
	}
	buf[0] = 'x' // caller's buffer must not alias the stored value

	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(v) != "abc" {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestStore_InjectedErrors(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	s.PutErr = boom
	if err := s.Put(context.Background(), "k", nil); !errors.Is(err, boom) {
		t.Fatalf("expected injected put error, got %v", err)
	}
	s.GetErr = boom
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("expected injected get error, got %v", err)
	}
}
