package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := &UserConfig{}
	require.NoError(t, cfg.Set("api_url", "https://api.internal"))
	require.NoError(t, cfg.Set("session_backend", "keyring"))
	require.NoError(t, cfg.Set("log_format", "json"))
	require.NoError(t, Save(cfg))

	path := filepath.Join(dir, "equitydash", "config.yaml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	v, err := loaded.Get("session_backend")
	require.NoError(t, err)
	assert.Equal(t, "keyring", v)

	v, err = loaded.Get("log_format")
	require.NoError(t, err)
	assert.Equal(t, "json", v)
}

func TestSetGet_UnknownKey(t *testing.T) {
	cfg := &UserConfig{}
	assert.Error(t, cfg.Set("theme", "dark"))
	_, err := cfg.Get("theme")
	assert.Error(t, err)

	for _, key := range Keys() {
		require.NoError(t, cfg.Set(key, "x"))
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
