package apphome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve_EnvOverride verifies that VUOTO_HOME takes precedence over
// the user home directory and that the directory is created.
func TestResolve_EnvOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv(EnvOverride, override)

	dir, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, override, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestResolve_DefaultUnderUserHome verifies the default location of the
// app home. HOME is redirected so the test never touches the real one.
func TestResolve_DefaultUnderUserHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvOverride, "")

	dir, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, HomeDirName), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestResolve_Idempotent checks that resolving twice returns the same
// directory without error (MkdirAll on an existing dir is a no-op).
func TestResolve_Idempotent(t *testing.T) {
	t.Setenv(EnvOverride, filepath.Join(t.TempDir(), "home"))

	first, err := Resolve()
	require.NoError(t, err)

	second, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestDataDir verifies that the vault data directory is nested under the
// app home and created on demand.
func TestDataDir(t *testing.T) {
	home := t.TempDir()

	dir, err := DataDir(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "vault"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestConfigPath verifies the config file location without requiring the
// file to exist.
func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/srv/vuoto/config.jsonc", ConfigPath("/srv/vuoto"))
}
