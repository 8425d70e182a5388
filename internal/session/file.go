package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores all session entries in a single JSON document.
// Writes go to a temp file that is renamed over the original, so readers
// see either the old or the new record, never a mix.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend creates a backend persisting to path
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.load()
	if err != nil {
		return "", false, err
	}

	value, ok := entries[key]
	return value, ok, nil
}

func (b *FileBackend) SetAll(_ context.Context, entries map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, err := b.load()
	if err != nil {
		// unreadable document is replaced wholesale
		current = make(map[string]string)
	}

	for k, v := range entries {
		current[k] = v
	}

	return b.write(current)
}

func (b *FileBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, err := b.load()
	if err != nil {
		return b.remove()
	}

	for _, k := range keys {
		delete(current, k)
	}

	if len(current) == 0 {
		return b.remove()
	}
	return b.write(current)
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) load() (map[string]string, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return entries, nil
}

func (b *FileBackend) write(entries map[string]string) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

func (b *FileBackend) remove() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
