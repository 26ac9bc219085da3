package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "blobs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetAbsentKey(t *testing.T) {
	s := openTestStore(t)
	value, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for absent key, got %q", value)
	}
}

func TestPutGetOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v2" {
		t.Fatalf("expected v2, got %q (err=%v)", got, err)
	}
}

func TestMutateReadModifyWrite(t *testing.T) {
	s := openTestStore(t)
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

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blobs.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Get(ctx, "k")
	if err != nil || string(got) != "persisted" {
		t.Fatalf("expected persisted value, got %q (err=%v)", got, err)
	}
}
