// Package cli — keys.go implements the "vuoto keys" command.
//
// keys lists a vault's record keys, one per line in text mode so the
// output pipes cleanly into xargs, grep, and friends.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuoto/vuoto/internal/model"
)

// NewKeysCommand creates the "keys" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <vault-name>",
		Short: "List the record keys of a vault",
		Long: `List the record keys of a vault in sorted order.

Examples:
  vuoto keys secrets
  vuoto keys secrets --json`,

		// Exactly one positional argument (vault name) is required.
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runKeys is the main logic function for the keys command.
func runKeys(ctx context.Context, vaultName string) error {
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

	// Step 3: Read the keys. The store returns them already sorted.
	keys, err := state.store.Keys(ctx, vaultName)
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to list records of vault %q", vaultName), err)
	}

	// Step 4: Output the result.
	printKeysResult(vaultName, keys)
	return nil
}

// printKeysResult outputs the keys command result in text or JSON format.
func printKeysResult(vaultName string, keys []string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"vault": vaultName,
			// Empty slice instead of nil so JSON shows [] for empty vaults.
			"keys": append(make([]string, 0, len(keys)), keys...),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(keys) == 0 {
		fmt.Printf("No records in vault %q.\n", vaultName)
		return
	}

	for _, key := range keys {
		fmt.Println(key)
	}
}
