// Package apphome — apphome.go resolves and prepares the vuoto application
// home directory, the root under which all persistent state lives:
//
//	<app home>/config.jsonc    optional configuration (JSONC)
//	<app home>/vault/          vault index + record store
package apphome

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// HomeDirName is the directory name created under the user's home
	// directory when no override is set.
	HomeDirName = "vuoto_cli"

	// EnvOverride is the environment variable that relocates the app home.
	// When set, it is respected unconditionally — tests and development
	// point it at a scratch directory.
	EnvOverride = "VUOTO_HOME"

	// dataDirName is the subdirectory that holds the vault index and the
	// record store database.
	dataDirName = "vault"

	// configFileName is the optional configuration file inside the app home.
	configFileName = "config.jsonc"
)

// Resolve returns the vuoto application home directory, creating it if it
// does not exist yet.
//
// Resolution order:
//  1. VUOTO_HOME environment variable (if set, used as-is)
//  2. <user home directory>/vuoto_cli
//
// os.MkdirAll is a no-op if the directory already exists, so repeated calls
// are cheap and idempotent.
func Resolve() (string, error) {
	dir := os.Getenv(EnvOverride)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to resolve user home directory: %w", err)
		}
		dir = filepath.Join(home, HomeDirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create app dir %s: %w", dir, err)
	}

	return dir, nil
}

// DataDir returns the vault data directory under the given app home,
// creating it if needed. Both the index file and the record store
// database live here.
func DataDir(home string) (string, error) {
	dir := filepath.Join(home, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return dir, nil
}

// ConfigPath returns the path of the optional JSONC configuration file
// inside the given app home. The file is not required to exist.
func ConfigPath(home string) string {
	return filepath.Join(home, configFileName)
}
