package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the credential manager service name
const DefaultKeyringService = "equitydash"

// keyringStore is the subset of the credential manager the backend uses
type keyringStore interface {
	Get(service, user string) (string, error)
	Set(service, user, password string) error
	Delete(service, user string) error
}

// systemKeyring forwards to the OS credential manager through go-keyring
type systemKeyring struct{}

func (systemKeyring) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

func (systemKeyring) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

func (systemKeyring) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

// KeyringBackend stores each session entry in the OS keychain/credential manager
type KeyringBackend struct {
	service string
	store   keyringStore
}

// NewKeyringBackend creates a keyring backend under service
func NewKeyringBackend(service string) *KeyringBackend {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringBackend{service: service, store: systemKeyring{}}
}

func (b *KeyringBackend) Get(_ context.Context, key string) (string, bool, error) {
	value, err := b.store.Get(b.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load %s from keyring: %w", key, err)
	}
	return value, true, nil
}

// SetAll writes entries one by one. The keyring has no transactions, so on a
// failed write every key already written is restored to its previous state.
func (b *KeyringBackend) SetAll(ctx context.Context, entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	type previous struct {
		value   string
		present bool
	}
	snapshot := make(map[string]previous, len(keys))
	for _, k := range keys {
		value, ok, err := b.Get(ctx, k)
		if err != nil {
			return err
		}
		snapshot[k] = previous{value: value, present: ok}
	}

	for i, k := range keys {
		if err := b.store.Set(b.service, k, entries[k]); err != nil {
			for _, done := range keys[:i] {
				prev := snapshot[done]
				if prev.present {
					_ = b.store.Set(b.service, done, prev.value)
				} else {
					_ = b.store.Delete(b.service, done)
				}
			}
			return fmt.Errorf("failed to save %s to keyring: %w", k, err)
		}
	}

	return nil
}

func (b *KeyringBackend) Delete(_ context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := b.store.Delete(b.service, k); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			errs = append(errs, fmt.Errorf("failed to delete %s from keyring: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func (b *KeyringBackend) Close() error {
	return nil
}
