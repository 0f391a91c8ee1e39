// Package snapshot serializes vault state to YAML for export and restores
// it on import.
//
// A snapshot captures every vault name together with the vault's records.
// The encoded form is deterministic (vaults and records are sorted) so that
// exporting the same state twice produces identical bytes, which makes
// snapshots diffable and safe to keep under version control.
package snapshot

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vuoto/vuoto/internal/vault"
)

// Version is the snapshot format version this build writes and accepts.
// Decode rejects snapshots written by a different format version.
const Version = 1

// Record is one key/value pair inside a vault. Values are stored as text;
// the put command only ever writes argv strings.
type Record struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// VaultRecords groups the records belonging to a single vault. A vault with
// no records still appears in the snapshot so import can recreate it.
type VaultRecords struct {
	Name    string   `yaml:"name"`
	Records []Record `yaml:"records,omitempty"`
}

// Snapshot is the full exported application state.
type Snapshot struct {
	// Version identifies the snapshot format so future format changes can
	// be detected on import.
	Version int `yaml:"version"`

	// ExportedAt records when the snapshot was taken.
	ExportedAt time.Time `yaml:"exportedAt"`

	// Vaults holds every vault and its records.
	Vaults []VaultRecords `yaml:"vaults"`
}

// New builds a snapshot of the given vaults, stamped with the current time.
func New(vaults []VaultRecords) *Snapshot {
	return &Snapshot{
		Version:    Version,
		ExportedAt: time.Now().UTC(),
		Vaults:     vaults,
	}
}

// Encode serializes a snapshot to YAML with a header comment.
//
// Vaults are sorted by name and records by key before serialization.
// This makes the output reproducible and easier to diff. The input
// snapshot is not modified.
func Encode(snap *Snapshot) ([]byte, error) {
	// Sort a copy so the caller's slices keep their order.
	sorted := make([]VaultRecords, len(snap.Vaults))
	copy(sorted, snap.Vaults)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	for i := range sorted {
		records := make([]Record, len(sorted[i].Records))
		copy(records, sorted[i].Records)
		sort.Slice(records, func(a, b int) bool {
			return records[a].Key < records[b].Key
		})
		sorted[i].Records = records
	}

	out := Snapshot{
		Version:    snap.Version,
		ExportedAt: snap.ExportedAt,
		Vaults:     sorted,
	}

	yamlBytes, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot YAML: %w", err)
	}

	// Prepend a header comment explaining the file's purpose. The file is
	// meant to be fed back to the import command, so say so.
	header := "# Auto-generated vault snapshot\n# Restore it with \"vuoto import <file>\"\n"

	return []byte(header + string(yamlBytes)), nil
}

// Decode parses and validates snapshot YAML.
//
// Validation rules:
//   - the format version must match Version
//   - every vault name must pass the index name rules
//   - vault names must be unique within the snapshot
//   - record keys must be non-empty and unique within their vault
//
// A snapshot that fails validation is rejected as a whole; import never
// applies a partial snapshot.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot YAML: %w", err)
	}

	if snap.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d (this build reads version %d)", snap.Version, Version)
	}

	seenVaults := make(map[string]bool)
	for _, v := range snap.Vaults {
		if err := vault.ValidateName(v.Name); err != nil {
			return nil, fmt.Errorf("invalid vault name %q in snapshot: %w", v.Name, err)
		}
		if seenVaults[v.Name] {
			return nil, fmt.Errorf("duplicate vault %q in snapshot", v.Name)
		}
		seenVaults[v.Name] = true

		seenKeys := make(map[string]bool)
		for _, r := range v.Records {
			if r.Key == "" {
				return nil, fmt.Errorf("vault %q in snapshot has a record with an empty key", v.Name)
			}
			if seenKeys[r.Key] {
				return nil, fmt.Errorf("duplicate record key %q in snapshot vault %q", r.Key, v.Name)
			}
			seenKeys[r.Key] = true
		}
	}

	return &snap, nil
}
