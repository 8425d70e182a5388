// Package session persists the signed-in user's session record: an opaque
// bearer token and the user profile, stored under two fixed keys.
//
// The two halves are always written and removed together. Backends provide
// the atomicity; Store adds serialization and the read-side policy that
// malformed or half-present data is reported as absent rather than raised.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/equitydash/equitydash/internal/models"
)

const (
	// TokenKey holds the opaque session token
	TokenKey = "auth_token"
	// UserKey holds the JSON-serialized user profile
	UserKey = "user_data"
)

var ErrEmptyToken = errors.New("session token is empty")

// Backend is a small key-value medium for the session record
type Backend interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	// SetAll writes every entry or none of them
	SetAll(ctx context.Context, entries map[string]string) error
	// Delete removes keys; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Store reads and writes the session record through a Backend
type Store struct {
	backend Backend
	logger  zerolog.Logger
}

// NewStore creates a session store on top of backend
func NewStore(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  log,
	}
}

// Save persists token and user together
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	entries := map[string]string{
		TokenKey: token,
		UserKey:  string(data),
	}
	if err := s.backend.SetAll(ctx, entries); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear removes both halves of the session record. Safe to call repeatedly.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the stored session token
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok := s.read(ctx, TokenKey)
	if !ok {
		return "", false
	}
	// a token without its user is an orphan from a foreign writer
	if _, ok := s.read(ctx, UserKey); !ok {
		s.logger.Warn().Msg("Session token present without user data, ignoring")
		return "", false
	}
	return token, true
}

// User returns the stored user profile. Malformed data is reported as absent.
func (s *Store) User(ctx context.Context) (models.User, bool) {
	raw, ok := s.read(ctx, UserKey)
	if !ok {
		return models.User{}, false
	}
	if _, ok := s.read(ctx, TokenKey); !ok {
		s.logger.Warn().Msg("User data present without session token, ignoring")
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn().Err(err).Msg("Stored user data is malformed, treating as absent")
		return models.User{}, false
	}

	return user, true
}

// HasToken reports whether a session token is present
func (s *Store) HasToken(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Close releases the underlying backend
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read session entry")
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
