// Package cli — import.go implements the "vuoto import" command.
//
// import restores vaults and records from a YAML snapshot produced by
// export. The snapshot merges into the existing state: missing vaults are
// created, records are written over existing keys, and nothing outside
// the snapshot is touched.
//
// Validation is all-or-nothing. The snapshot's shape and names are checked
// on decode, and every vault's capacity headroom is verified before the
// first write, so a rejected import leaves the state unchanged.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/model"
	"github.com/vuoto/vuoto/internal/snapshot"
)

// NewImportCommand creates the "import" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot-file>",
		Short: "Restore vaults from a YAML snapshot",
		Long: `Restore vaults and records from a snapshot written by export.

The snapshot merges into the existing state: missing vaults are created
and imported records overwrite existing keys. The whole snapshot is
validated before anything is written.

Examples:
  vuoto import backup.yaml`,

		// Exactly one positional argument (snapshot path) is required.
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runImport is the main logic function for the import command.
// It decodes and validates the snapshot, verifies capacity headroom, and
// then applies the merge.
func runImport(ctx context.Context, path string) error {
	// Step 1: Read and decode the snapshot. Decode validates the format
	// version, the vault names, and record key uniqueness.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("snapshot file not found: %s", path), err)
		}
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read snapshot file %s", path), err)
	}

	snap, err := snapshot.Decode(data)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid snapshot %s", path), err)
	}

	// Step 2: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 3: Verify capacity headroom for every vault before writing
	// anything, so a snapshot that cannot fit is rejected whole instead
	// of half-applied. Overwrites of existing keys do not consume a slot.
	for _, v := range snap.Vaults {
		newKeys, err := countNewKeys(ctx, state, v)
		if err != nil {
			return err
		}

		existing := 0
		if state.index.Has(v.Name) {
			if existing, err = state.store.Count(ctx, v.Name); err != nil {
				return model.WrapCLIError(model.ExitStoreError,
					fmt.Sprintf("failed to count records in vault %q", v.Name), err)
			}
		}

		if existing+newKeys > state.config.Capacity {
			return model.NewCLIError(model.ExitVaultFull,
				fmt.Sprintf("import would put %d records into vault %q (capacity %d)",
					existing+newKeys, v.Name, state.config.Capacity))
		}
	}

	// Step 4: Apply the merge.
	createdVaults := 0
	importedRecords := 0

	for _, v := range snap.Vaults {
		if !state.index.Has(v.Name) {
			if err := state.index.Add(v.Name); err != nil {
				return model.WrapCLIError(model.ExitStoreError,
					fmt.Sprintf("failed to create vault %q", v.Name), err)
			}
			createdVaults++
		}

		for _, r := range v.Records {
			if err := state.store.Put(ctx, v.Name, r.Key, []byte(r.Value)); err != nil {
				return model.WrapCLIError(model.ExitStoreError,
					fmt.Sprintf("failed to import record %q into vault %q", r.Key, v.Name), err)
			}
			importedRecords++
		}
	}

	Logger().Debug("snapshot imported",
		zap.String("path", path),
		zap.Int("vaults_created", createdVaults),
		zap.Int("records_imported", importedRecords),
	)

	// Step 5: Output the result.
	printImportResult(path, createdVaults, importedRecords)
	return nil
}

// countNewKeys returns how many of the snapshot vault's keys are not yet
// present in the store, i.e. how many capacity slots the import consumes.
func countNewKeys(ctx context.Context, state *appState, v snapshot.VaultRecords) (int, error) {
	if !state.index.Has(v.Name) {
		// A brand-new vault imports every record as a new key.
		return len(v.Records), nil
	}

	keys, err := state.store.Keys(ctx, v.Name)
	if err != nil {
		return 0, model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to list records of vault %q", v.Name), err)
	}

	existing := make(map[string]bool, len(keys))
	for _, key := range keys {
		existing[key] = true
	}

	newKeys := 0
	for _, r := range v.Records {
		if !existing[r.Key] {
			newKeys++
		}
	}
	return newKeys, nil
}

// printImportResult outputs the import result in text or JSON format.
func printImportResult(path string, createdVaults, importedRecords int) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"path":          path,
			"vaultsCreated": createdVaults,
			"records":       importedRecords,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Imported %d record(s) from %s\n", importedRecords, path)
	if createdVaults > 0 {
		fmt.Printf("  Created %d new vault(s)\n", createdVaults)
	}
}
