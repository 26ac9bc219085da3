package auth

import (
	"context"
	"testing"

	"tally/internal/blob/memory"
)

func TestSessionDefaultsToSignedOut(t *testing.T) {
	s := NewStore(memory.New())
	session := s.Session(context.Background())
	if session.IsAuthenticated || session.User != nil {
		t.Fatalf("expected zero-value session, got %+v", session)
	}
}

func TestSessionCorruptedBlob(t *testing.T) {
	blobs := memory.New()
	ctx := context.Background()
	if err := blobs.Put(ctx, "auth", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := blobs.Put(ctx, "users", []byte("[broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewStore(blobs)
	session := s.Session(ctx)
	if session.IsAuthenticated || session.User != nil {
		t.Fatalf("corrupted session blob must degrade to signed out, got %+v", session)
	}
	if users := s.Users(ctx); len(users) != 0 {
		t.Fatalf("corrupted registry blob must degrade to empty, got %+v", users)
	}
}

func TestRegisterSignsIn(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	user, err := s.Register(ctx, "Ann", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}

	session := s.Session(ctx)
	if !session.IsAuthenticated || session.User == nil {
		t.Fatalf("expected authenticated session, got %+v", session)
	}
	if session.User.ID != user.ID {
		t.Fatalf("session user mismatch: %s != %s", session.User.ID, user.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	if _, err := s.Register(ctx, "", "a@x.com", "pw"); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := s.Register(ctx, "Ann", "", "pw"); err == nil {
		t.Fatalf("expected error for empty email")
	}
	if users := s.Users(ctx); len(users) != 0 {
		t.Fatalf("failed registration must not touch the registry, got %+v", users)
	}
}

func TestRegisterAllowsDuplicateEmails(t *testing.T) {
	// Duplicate registrations produce two distinct users with the same
	// email; login then resolves to the first one.
	s := NewStore(memory.New())
	ctx := context.Background()

	first, err := s.Register(ctx, "Ann", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	second, err := s.Register(ctx, "Another Ann", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids for duplicate registrations")
	}

	got, err := s.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("login must return the first match, got %s", got.ID)
	}
}

func TestLoginRepeatableAndCaseSensitive(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	registered, err := s.Register(ctx, "Ann", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := s.Login(ctx, "a@x.com", "whatever")
		if err != nil {
			t.Fatalf("login %d: %v", i, err)
		}
		if got.ID != registered.ID || got.Name != "Ann" || got.Email != "a@x.com" {
			t.Fatalf("login %d returned wrong user: %+v", i, got)
		}
	}

	if _, err := s.Login(ctx, "A@X.COM", "pw"); err != ErrNotFound {
		t.Fatalf("email matching is case-sensitive, got %v", err)
	}
}

func TestLoginNotFoundLeavesSession(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	user, err := s.Register(ctx, "Ann", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := s.Login(ctx, "nobody@x.com", "pw"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	session := s.Session(ctx)
	if !session.IsAuthenticated || session.User == nil || session.User.ID != user.ID {
		t.Fatalf("failed login must leave the session unchanged, got %+v", session)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	if _, err := s.Register(ctx, "Ann", "a@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Logout(ctx); err != nil {
			t.Fatalf("logout %d: %v", i, err)
		}
		session := s.Session(ctx)
		if session.IsAuthenticated || session.User != nil {
			t.Fatalf("expected signed-out session, got %+v", session)
		}
	}
}
