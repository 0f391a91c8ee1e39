// Package cli — export.go implements the "vuoto export" command.
//
// export writes a YAML snapshot of every vault and its records, either to
// stdout (the default, for piping) or to a file with --output. The
// snapshot encoding is deterministic, so exporting unchanged state twice
// produces identical bytes.
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

// exportFlags holds the flag values for the export command.
type exportFlags struct {
	// output is the destination file. Empty means stdout.
	output string
}

// NewExportCommand creates the "export" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all vaults to a YAML snapshot",
		Long: `Export every vault and its records as a YAML snapshot.

Without --output the snapshot is written to stdout. The encoding is
deterministic, so snapshots of unchanged state are byte-identical and
diff cleanly.

Examples:
  vuoto export
  vuoto export --output backup.yaml`,

		// No positional arguments are required for the export command.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the snapshot to a file instead of stdout")

	return cmd
}

// runExport is the main logic function for the export command.
// It collects every vault's records, encodes the snapshot, and writes it
// to the chosen destination.
func runExport(ctx context.Context, flags *exportFlags) error {
	// Step 1: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 2: Collect the records of every vault.
	names := state.index.Names()
	vaults := make([]snapshot.VaultRecords, 0, len(names))
	totalRecords := 0

	for _, name := range names {
		keys, err := state.store.Keys(ctx, name)
		if err != nil {
			return model.WrapCLIError(model.ExitStoreError,
				fmt.Sprintf("failed to list records of vault %q", name), err)
		}

		records := make([]snapshot.Record, 0, len(keys))
		for _, key := range keys {
			value, err := state.store.Get(ctx, name, key)
			if err != nil {
				return model.WrapCLIError(model.ExitStoreError,
					fmt.Sprintf("failed to read record %q from vault %q", key, name), err)
			}
			records = append(records, snapshot.Record{Key: key, Value: string(value)})
		}

		vaults = append(vaults, snapshot.VaultRecords{Name: name, Records: records})
		totalRecords += len(records)
	}

	// Step 3: Encode the snapshot.
	data, err := snapshot.Encode(snapshot.New(vaults))
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode snapshot", err)
	}

	Logger().Debug("snapshot encoded",
		zap.Int("vaults", len(vaults)),
		zap.Int("records", totalRecords),
		zap.Int("bytes", len(data)),
	)

	// Step 4: Write the snapshot. Stdout gets the raw YAML so the command
	// pipes cleanly; a file destination gets a confirmation message.
	if flags.output == "" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to write snapshot to stdout", err)
		}
		return nil
	}

	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to write snapshot to %s", flags.output), err)
	}

	printExportResult(flags.output, len(vaults), totalRecords)
	return nil
}

// printExportResult outputs the export confirmation in text or JSON format.
// Only used when the snapshot went to a file; stdout exports print nothing
// but the snapshot itself.
func printExportResult(path string, vaultCount, recordCount int) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"path":    path,
			"vaults":  vaultCount,
			"records": recordCount,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Exported %d vault(s) with %d record(s) to %s\n", vaultCount, recordCount, path)
}
