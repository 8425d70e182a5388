package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/equitydash/equitydash/internal/cli/userconfig"
)

// DefaultAPIURL is used when no API base URL is configured
const DefaultAPIURL = "https://api.example.com"

// Config holds all configuration for the application
type Config struct {
	// Remote API configuration
	API APIConfig

	// Session persistence configuration
	Session SessionConfig

	// Authentication policy
	Auth AuthConfig

	// Logging Configuration
	Logging LoggingConfig

	// Development API stub
	DevAPI DevAPIConfig
}

// APIConfig holds the remote API configuration
type APIConfig struct {
	URL     string
	Timeout time.Duration // zero disables the client timeout
}

// SessionConfig selects where the session record is persisted
type SessionConfig struct {
	Backend string // file, keyring, sqlite, memory
	Path    string // file or sqlite location; derived from the config dir when empty
}

// AuthConfig holds authentication policy
type AuthConfig struct {
	Fallback string // always, unreachable, off
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// DevAPIConfig holds configuration for the fixture API server
type DevAPIConfig struct {
	Port      string
	JWTSecret string
	Database  string // sqlite path, ":memory:" by default
}

// Load loads configuration from .env files, the user config file and
// environment variables, in increasing order of precedence. Non-empty
// overrides, keyed by environment variable name, win over all of them.
func Load(overrides map[string]string) (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	user, err := userconfig.Load()
	if err != nil {
		return nil, err
	}

	return FromSources(user, func(key string) string {
		if v := overrides[key]; v != "" {
			return v
		}
		return os.Getenv(key)
	})
}

// FromSources builds a Config from a user config file and an env lookup
func FromSources(user *userconfig.UserConfig, getenv func(string) string) (*Config, error) {
	if user == nil {
		user = &userconfig.UserConfig{}
	}

	pick := func(envKey, fileValue, fallback string) string {
		if v := getenv(envKey); v != "" {
			return v
		}
		if fileValue != "" {
			return fileValue
		}
		return fallback
	}

	timeout := 30 * time.Second
	if raw := getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: must not be negative", raw)
		}
		timeout = d
	}

	backend := pick("SESSION_BACKEND", user.SessionBackend, "file")
	switch backend {
	case "file", "keyring", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q: must be one of file, keyring, sqlite, memory", backend)
	}

	fallback := pick("AUTH_FALLBACK", user.AuthFallback, "always")
	switch fallback {
	case "always", "unreachable", "off":
	default:
		return nil, fmt.Errorf("invalid AUTH_FALLBACK %q: must be one of always, unreachable, off", fallback)
	}

	return &Config{
		API: APIConfig{
			URL:     pick("EQUITYDASH_API_URL", user.APIURL, DefaultAPIURL),
			Timeout: timeout,
		},
		Session: SessionConfig{
			Backend: backend,
			Path:    pick("SESSION_PATH", user.SessionPath, ""),
		},
		Auth: AuthConfig{
			Fallback: fallback,
		},
		Logging: LoggingConfig{
			Level:  pick("LOG_LEVEL", user.LogLevel, "warn"),
			Format: pick("LOG_FORMAT", user.LogFormat, "console"),
		},
		DevAPI: DevAPIConfig{
			Port:      pick("DEVAPI_PORT", "", "8080"),
			JWTSecret: getenv("DEVAPI_JWT_SECRET"),
			Database:  pick("DEVAPI_DATABASE", "", ":memory:"),
		},
	}, nil
}

// SessionPath returns the configured session location, or the default one
// for the selected backend inside the user config directory.
func (c *Config) SessionPath() (string, error) {
	if c.Session.Path != "" {
		return c.Session.Path, nil
	}

	dir, err := userconfig.ConfigDir()
	if err != nil {
		return "", err
	}

	switch c.Session.Backend {
	case "sqlite":
		return filepath.Join(dir, "session.db"), nil
	default:
		return filepath.Join(dir, "session.json"), nil
	}
}

// DevAPIAddr returns the listen address of the fixture API server
func (c *Config) DevAPIAddr() string {
	if _, err := strconv.Atoi(c.DevAPI.Port); err == nil {
		return ":" + c.DevAPI.Port
	}
	return c.DevAPI.Port
}
