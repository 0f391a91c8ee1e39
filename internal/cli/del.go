// Package cli — del.go implements the "vuoto del" command.
//
// del removes one record from a vault. Deleting a key that does not exist
// is an error, so callers can rely on the exit code to know whether a
// record was actually removed.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/model"
)

// NewDelCommand creates the "del" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "del <vault-name> <key>",
		Short: "Delete a record from a vault",
		Long: `Delete the record stored under a key in a vault.

Deleting frees one slot of the vault's capacity. Deleting a key that
does not exist fails.

Examples:
  vuoto del secrets api-token`,

		// Exactly two positional arguments: vault and key.
		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDel(cmd.Context(), args[0], args[1])
		},
	}

	return cmd
}

// runDel is the main logic function for the del command.
func runDel(ctx context.Context, vaultName, key string) error {
	// Step 1: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 2: Ensure the vault exists.
	if err := state.requireVault(vaultName); err != nil {
		return err
	}

	// Step 3: Delete the record. The store reports whether the key existed.
	deleted, err := state.store.Delete(ctx, vaultName, key)
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to delete record %q from vault %q", key, vaultName), err)
	}
	if !deleted {
		return model.NewCLIError(model.ExitRecordNotFound,
			fmt.Sprintf("record %q not found in vault %q", key, vaultName))
	}

	Logger().Debug("record deleted",
		zap.String("vault", vaultName),
		zap.String("key", key),
	)

	// Step 4: Output the result.
	printDelResult(vaultName, key)
	return nil
}

// printDelResult outputs the del command result in text or JSON format.
func printDelResult(vaultName, key string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"vault":  vaultName,
			"key":    key,
			"action": "deleted",
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Deleted record %q from vault %q\n", key, vaultName)
}
