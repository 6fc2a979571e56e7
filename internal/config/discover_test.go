package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	// Clear XDG var to test default
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, filepath.Join(".config", "eduscan", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path := DefaultPath()
	assert.Equal(t, "/custom/config/eduscan/config.toml", path)
}

func TestDiscover_EnvVar(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "custom.toml")
	err := os.WriteFile(cfgPath, []byte("[library]"), 0644)
	require.NoError(t, err, "failed to create test config")

	t.Setenv("EDUSCAN_CONFIG", cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVar_NotFound(t *testing.T) {
	t.Setenv("EDUSCAN_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err, "expected error for missing EDUSCAN_CONFIG")
	assert.Contains(t, err.Error(), "EDUSCAN_CONFIG")
	assert.NotErrorIs(t, err, ErrNotFound, "an explicit path that is missing is not a silent fallback")
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv("EDUSCAN_CONFIG", "")

	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "eduscan.toml")
	err := os.WriteFile(cfgPath, []byte("[library]"), 0644)
	require.NoError(t, err, "failed to create test config")
	t.Chdir(tmp)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "eduscan.toml", filepath.Base(path))
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv("EDUSCAN_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Chdir(t.TempDir())

	_, err := Discover()
	require.Error(t, err, "expected error when no config found")
	assert.ErrorIs(t, err, ErrNotFound)
}
