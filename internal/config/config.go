// Package config loads the vuoto configuration file.
//
// The configuration lives at <home>/config.jsonc and supports JSONC
// (JSON with Comments), so this package uses github.com/tidwall/jsonc to
// strip comments before parsing with the standard encoding/json library.
//
// A missing file is not an error: every field has a default, and Load
// returns the full default configuration when no file exists.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/vuoto/vuoto/internal/store"
)

// Default values applied for absent or zero-valued fields.
const (
	// DefaultManager is the environment manager binary the dev dispatcher
	// delegates activation to.
	DefaultManager = "nix"

	// DefaultFlakeDir is where the environment manifest is looked up.
	// Relative paths resolve against the process working directory.
	DefaultFlakeDir = "."
)

// Config represents the parsed configuration file. Only the fields below
// are recognized; other fields are silently ignored during parsing.
type Config struct {
	// Capacity is the per-vault record cap enforced by the record store.
	Capacity int `json:"capacity"`

	// Manager is the external environment manager binary that activates
	// development environments.
	Manager string `json:"manager"`

	// FlakeDir is the directory holding the environment manifest
	// (flake.nix) the manager consumes.
	FlakeDir string `json:"flakeDir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Capacity: store.DefaultCapacity,
		Manager:  DefaultManager,
		FlakeDir: DefaultFlakeDir,
	}
}

// Load reads the configuration file at path, strips JSONC comments, and
// parses it. Fields absent from the file keep their defaults, and a file
// that does not exist at all yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file means all defaults. The file is optional.
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strip JSONC comments (// and /* */) and trailing commas before
	// parsing, so users can annotate their configuration.
	cleanJSON := jsonc.ToJSON(data)

	if err := json.Unmarshal(cleanJSON, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}

	// Normalize explicit zero values back to defaults. A capacity of 0
	// would make every vault reject its first record.
	if cfg.Capacity <= 0 {
		cfg.Capacity = store.DefaultCapacity
	}
	if cfg.Manager == "" {
		cfg.Manager = DefaultManager
	}
	if cfg.FlakeDir == "" {
		cfg.FlakeDir = DefaultFlakeDir
	}

	return cfg, nil
}
