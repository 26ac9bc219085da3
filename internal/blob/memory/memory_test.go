package memory

import (
	"context"
	"errors"
	"testing"
)

func TestGetAbsentKey(t *testing.T) {
	s := New()
	value, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for absent key, got %q", value)
	}
}

func TestPutGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("expected v1, got %q (err=%v)", got, err)
	}

	// Mutating the returned slice must not affect the stored value.
	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	if string(again) != "v1" {
		t.Fatalf("stored value was mutated: %q", again)
	}
}

func TestMutate(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.Mutate(ctx, "k", func(current []byte) ([]byte, error) {
		if current != nil {
			t.Fatalf("expected nil current for absent key, got %q", current)
		}
		return []byte("a"), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	err = s.Mutate(ctx, "k", func(current []byte) ([]byte, error) {
		return append(current, 'b'), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	got, _ := s.Get(ctx, "k")
	if string(got) != "ab" {
		t.Fatalf("expected ab, got %q", got)
	}
}

func TestMutateError(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.Put(ctx, "k", []byte("keep")); err != nil {
		t.Fatalf("put: %v", err)
	}

	boom := errors.New("boom")
	err := s.Mutate(ctx, "k", func([]byte) ([]byte, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := s.Get(ctx, "k")
	if string(got) != "keep" {
		t.Fatalf("failed mutate must not change the value, got %q", got)
	}
}
