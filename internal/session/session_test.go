package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/equitydash/equitydash/internal/models"
)

var testUser = models.User{
	ID:    "u-1",
	Name:  "Jane Doe",
	Email: "jane@example.com",
	Role:  "employee",
}

// backendFactories returns one constructor per backend so every contract
// test runs against all of them.
func backendFactories(t *testing.T) map[string]func(t *testing.T) Backend {
	return map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend {
			return NewMemoryBackend()
		},
		"file": func(t *testing.T) Backend {
			return NewFileBackend(filepath.Join(t.TempDir(), "session.json"))
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := OpenSQLiteBackend(filepath.Join(t.TempDir(), "session.db"))
			require.NoError(t, err)
			t.Cleanup(func() { b.Close() })
			return b
		},
		"keyring": func(t *testing.T) Backend {
			keyring.MockInit()
			return NewKeyringBackend("equitydash-test")
		},
	}
}

func TestStore_SaveRoundTrip(t *testing.T) {
	for name, newBackend := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(newBackend(t), zerolog.Nop())

			require.NoError(t, store.Save(ctx, "token-abc", testUser))

			token, ok := store.Token(ctx)
			require.True(t, ok)
			assert.Equal(t, "token-abc", token)

			user, ok := store.User(ctx)
			require.True(t, ok)
			assert.Equal(t, testUser, user)

			assert.True(t, store.HasToken(ctx))
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	for name, newBackend := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(newBackend(t), zerolog.Nop())

			require.NoError(t, store.Save(ctx, "first", testUser))

			second := testUser
			second.Name = "Renamed"
			require.NoError(t, store.Save(ctx, "second", second))

			token, _ := store.Token(ctx)
			user, _ := store.User(ctx)
			assert.Equal(t, "second", token)
			assert.Equal(t, "Renamed", user.Name)
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	for name, newBackend := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(newBackend(t), zerolog.Nop())

			// clearing an empty store is fine
			require.NoError(t, store.Clear(ctx))

			require.NoError(t, store.Save(ctx, "token-abc", testUser))
			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))

			_, ok := store.Token(ctx)
			assert.False(t, ok)
			_, ok = store.User(ctx)
			assert.False(t, ok)
			assert.False(t, store.HasToken(ctx))
		})
	}
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	store := NewStore(NewMemoryBackend(), zerolog.Nop())

	err := store.Save(context.Background(), "", testUser)
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.False(t, store.HasToken(context.Background()))
}

func TestStore_MalformedUserIsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetAll(ctx, map[string]string{
		TokenKey: "token-abc",
		UserKey:  "{not json",
	}))
	store := NewStore(backend, zerolog.Nop())

	_, ok := store.User(ctx)
	assert.False(t, ok)
	assert.True(t, store.HasToken(ctx))
}

func TestStore_HalfRecordIsAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("token without user", func(t *testing.T) {
		backend := NewMemoryBackend()
		require.NoError(t, backend.SetAll(ctx, map[string]string{TokenKey: "orphan"}))
		store := NewStore(backend, zerolog.Nop())

		assert.False(t, store.HasToken(ctx))
	})

	t.Run("user without token", func(t *testing.T) {
		backend := NewMemoryBackend()
		require.NoError(t, backend.SetAll(ctx, map[string]string{UserKey: `{"id":"u-1"}`}))
		store := NewStore(backend, zerolog.Nop())

		_, ok := store.User(ctx)
		assert.False(t, ok)
	})
}

// failingBackend fails every operation
type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingBackend) SetAll(context.Context, map[string]string) error    { return f.err }
func (f failingBackend) Delete(context.Context, ...string) error           { return f.err }
func (f failingBackend) Close() error                                      { return nil }

func TestStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	store := NewStore(failingBackend{err: boom}, zerolog.Nop())

	require.ErrorIs(t, store.Save(ctx, "token", testUser), boom)
	require.ErrorIs(t, store.Clear(ctx), boom)

	// reads never raise
	_, ok := store.Token(ctx)
	assert.False(t, ok)
	_, ok = store.User(ctx)
	assert.False(t, ok)
}
