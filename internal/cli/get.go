// Package cli — get.go implements the "vuoto get" command.
//
// get prints a record's value. In text mode the raw value is the only
// stdout output, so the command composes cleanly in shell pipelines:
//
//	DB_PASSWORD=$(vuoto get secrets db-password)
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuoto/vuoto/internal/model"
	"github.com/vuoto/vuoto/internal/store"
)

// NewGetCommand creates the "get" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <vault-name> <key>",
		Short: "Print a record's value",
		Long: `Print the value stored under a key in a vault.

In text mode the raw value is printed on its own, suitable for command
substitution. With --json the vault, key, and value are printed as a
JSON object.

Examples:
  vuoto get secrets api-token
  vuoto get --json secrets api-token`,

		// Exactly two positional arguments: vault and key.
		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), args[0], args[1])
		},
	}

	return cmd
}

// runGet is the main logic function for the get command.
func runGet(ctx context.Context, vaultName, key string) error {
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

	// Step 3: Read the record.
	value, err := state.store.Get(ctx, vaultName, key)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return model.NewCLIError(model.ExitRecordNotFound,
				fmt.Sprintf("record %q not found in vault %q", key, vaultName))
		}
		return model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to read record %q from vault %q", key, vaultName), err)
	}

	// Step 4: Output the result.
	printGetResult(vaultName, key, value)
	return nil
}

// printGetResult outputs the get command result in text or JSON format.
func printGetResult(vaultName, key string, value []byte) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"vault": vaultName,
			"key":   key,
			"value": string(value),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	// Text mode prints only the value so the command can be used in
	// command substitution.
	fmt.Println(string(value))
}
