// Package auth owns the authenticated-user session and the user registry.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tally/internal/blob"
	"tally/internal/core"
)

// Blob keys owned by this store.
const (
	keyAuth  = "auth"
	keyUsers = "users"
)

// ErrNotFound is returned by Login when no registered user has the given
// email. The session is left unchanged.
var ErrNotFound = errors.New("no account with that email")

// Store reads and writes the session and registry blobs. It keeps no state
// between calls: every operation re-reads from the medium.
type Store struct {
	blobs blob.Store
}

func NewStore(blobs blob.Store) *Store {
	return &Store{blobs: blobs}
}

// Session returns the persisted session. An absent or unparseable blob
// degrades to the zero-value session; this method never fails.
func (s *Store) Session(ctx context.Context) core.Session {
	data, err := s.blobs.Get(ctx, keyAuth)
	if err != nil {
		slog.WarnContext(ctx, "Session read failed, treating as signed out", "error", err)
		return core.Session{}
	}
	if data == nil {
		return core.Session{}
	}
	var session core.Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.WarnContext(ctx, "Session blob corrupted, treating as signed out", "error", err)
		return core.Session{}
	}
	return session
}

// Register creates a user, appends it to the registry and signs it in.
// The password is accepted but neither stored nor verified; credential
// handling is out of scope. Duplicate emails are allowed: registering
// twice with the same email yields two distinct users.
func (s *Store) Register(ctx context.Context, name, email, password string) (core.User, error) {
	_ = password

	user := core.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
	if err := user.Validate(); err != nil {
		return core.User{}, err
	}

	err := s.blobs.Mutate(ctx, keyUsers, func(current []byte) ([]byte, error) {
		users := decodeUsers(ctx, current)
		users = append(users, user)
		return json.Marshal(users)
	})
	if err != nil {
		return core.User{}, fmt.Errorf("append user: %w", err)
	}

	if err := s.putSession(ctx, core.NewSession(user)); err != nil {
		return core.User{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login signs in the first registered user whose email matches exactly.
// The password is ignored.
func (s *Store) Login(ctx context.Context, email, password string) (core.User, error) {
	_ = password

	for _, user := range s.Users(ctx) {
		if user.Email == email {
			if err := s.putSession(ctx, core.NewSession(user)); err != nil {
				return core.User{}, err
			}
			slog.InfoContext(ctx, "User logged in", "user_id", user.ID)
			return user, nil
		}
	}
	return core.User{}, ErrNotFound
}

// Logout clears the session unconditionally. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	return s.putSession(ctx, core.Session{})
}

// Users returns the registry. An absent or unparseable blob degrades to an
// empty registry.
func (s *Store) Users(ctx context.Context) []core.User {
	data, err := s.blobs.Get(ctx, keyUsers)
	if err != nil {
		slog.WarnContext(ctx, "Registry read failed, treating as empty", "error", err)
		return nil
	}
	return decodeUsers(ctx, data)
}

func (s *Store) putSession(ctx context.Context, session core.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.blobs.Put(ctx, keyAuth, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func decodeUsers(ctx context.Context, data []byte) []core.User {
	if data == nil {
		return nil
	}
	var users []core.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.WarnContext(ctx, "Registry blob corrupted, treating as empty", "error", err)
		return nil
	}
	return users
}
