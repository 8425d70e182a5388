package userconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "equitydash"
	configFileName = "config.yaml"
)

// UserConfig represents the user's local preferences stored in
// $XDG_CONFIG_HOME/equitydash/config.yaml. Empty fields mean "use the default".
type UserConfig struct {
	APIURL         string `yaml:"api_url,omitempty"`
	SessionBackend string `yaml:"session_backend,omitempty"`
	SessionPath    string `yaml:"session_path,omitempty"`
	AuthFallback   string `yaml:"auth_fallback,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
	LogFormat      string `yaml:"log_format,omitempty"`
}

// ConfigDir returns the equitydash config directory.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		base = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(base, appDirName), nil
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the user configuration file. A missing file yields an empty config.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the user configuration from path
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to the default location
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(configPath, cfg)
}

// SaveFile writes the user configuration to path
func SaveFile(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// Keys lists the settable keys in file order
func Keys() []string {
	return []string{"api_url", "session_backend", "session_path", "auth_fallback", "log_level", "log_format"}
}

// Set updates a single key by its YAML name
func (c *UserConfig) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "session_backend":
		c.SessionBackend = value
	case "session_path":
		c.SessionPath = value
	case "auth_fallback":
		c.AuthFallback = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	default:
		return fmt.Errorf("unknown config key '%s'", key)
	}
	return nil
}

// Get returns the value of a single key by its YAML name
func (c *UserConfig) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "session_backend":
		return c.SessionBackend, nil
	case "session_path":
		return c.SessionPath, nil
	case "auth_fallback":
		return c.AuthFallback, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("unknown config key '%s'", key)
}
