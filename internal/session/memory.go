package session

import (
	"context"
	"sync"
)

// MemoryBackend keeps the session in process memory only
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]string),
	}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.entries[key]
	return value, ok, nil
}

func (b *MemoryBackend) SetAll(_ context.Context, entries map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, v := range entries {
		b.entries[k] = v
	}
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, k := range keys {
		delete(b.entries, k)
	}
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
