package env

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable shell script into a temp directory and
// returns its path.
func writeScript(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-manager")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

// TestNixRunner_DelegatedExitStatus verifies that a non-zero exit from the
// manager surfaces as an *exec.ExitError carrying that exact status and is
// not wrapped in anything else.
func TestNixRunner_DelegatedExitStatus(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\nexit 7\n")
	runner := &NixRunner{Command: script}

	err := runner.Activate(context.Background(), rustEnv)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.ExitCode())
}

// TestNixRunner_Success verifies that a zero exit from the manager yields
// no error.
func TestNixRunner_Success(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\nexit 0\n")
	runner := &NixRunner{Command: script}

	assert.NoError(t, runner.Activate(context.Background(), rustEnv))
}

// TestNixRunner_MissingBinary verifies that a manager binary that cannot be
// started produces a start error, not an *exec.ExitError.
func TestNixRunner_MissingBinary(t *testing.T) {
	runner := &NixRunner{Command: filepath.Join(t.TempDir(), "does-not-exist")}

	err := runner.Activate(context.Background(), rustEnv)
	require.Error(t, err)

	var exitErr *exec.ExitError
	assert.False(t, errors.As(err, &exitErr))
}

// TestManagerVersion verifies that the first stdout line is returned as
// the version string.
func TestManagerVersion(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'nix (Nix) 2.18.1'\necho 'extra build info'\n")

	version, err := ManagerVersion(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, "nix (Nix) 2.18.1", version)
}

// TestManagerVersion_Failure verifies that a failing manager produces an
// error that includes the tool's stderr output.
func TestManagerVersion_Failure(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'no such command' >&2\nexit 1\n")

	_, err := ManagerVersion(context.Background(), script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such command")
}
