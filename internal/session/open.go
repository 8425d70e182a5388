package session

import (
	"fmt"

	"github.com/equitydash/equitydash/internal/config"
)

// Open creates the backend selected by cfg.Session.Backend
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Session.Backend {
	case "memory":
		return NewMemoryBackend(), nil
	case "keyring":
		return NewKeyringBackend(DefaultKeyringService), nil
	case "sqlite":
		path, err := cfg.SessionPath()
		if err != nil {
			return nil, err
		}
		return OpenSQLiteBackend(path)
	case "file", "":
		path, err := cfg.SessionPath()
		if err != nil {
			return nil, err
		}
		return NewFileBackend(path), nil
	default:
		return nil, fmt.Errorf("unknown session backend '%s'", cfg.Session.Backend)
	}
}
