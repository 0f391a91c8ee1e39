package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuoto/vuoto/internal/store"
)

// writeConfig writes content to a config.jsonc file in a temp directory and
// returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefault verifies the built-in default configuration.
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, store.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, "nix", cfg.Manager)
	assert.Equal(t, ".", cfg.FlakeDir)
}

// TestLoad_MissingFile verifies that a nonexistent config file yields the
// defaults without an error.
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

// TestLoad_FullConfig verifies that every recognized field is parsed,
// including from a file that uses JSONC comments.
func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `{
		// Per-vault record cap.
		"capacity": 128,
		/* Delegate activation to a wrapper script. */
		"manager": "nix-portable",
		"flakeDir": "/opt/envs",
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Capacity)
	assert.Equal(t, "nix-portable", cfg.Manager)
	assert.Equal(t, "/opt/envs", cfg.FlakeDir)
}

// TestLoad_PartialConfig verifies that fields absent from the file keep
// their defaults.
func TestLoad_PartialConfig(t *testing.T) {
	path := writeConfig(t, `{"capacity": 32}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Capacity)
	assert.Equal(t, "nix", cfg.Manager)
	assert.Equal(t, ".", cfg.FlakeDir)
}

// TestLoad_ZeroValues verifies that explicit zero values are normalized
// back to defaults rather than taken literally.
func TestLoad_ZeroValues(t *testing.T) {
	path := writeConfig(t, `{"capacity": 0, "manager": "", "flakeDir": ""}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

// TestLoad_NegativeCapacity verifies that a negative capacity falls back to
// the default.
func TestLoad_NegativeCapacity(t *testing.T) {
	path := writeConfig(t, `{"capacity": -5}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, store.DefaultCapacity, cfg.Capacity)
}

// TestLoad_UnknownFieldsIgnored verifies that unrecognized fields do not
// cause a parse error.
func TestLoad_UnknownFieldsIgnored(t *testing.T) {
	path := writeConfig(t, `{"capacity": 16, "theme": "dark"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Capacity)
}

// TestLoad_InvalidJSON verifies that a malformed file is reported as an
// error rather than silently replaced with defaults.
func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"capacity": `)

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
