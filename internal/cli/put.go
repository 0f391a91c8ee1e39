// Package cli — put.go implements the "vuoto put" command.
//
// put writes one key/value record into an existing vault. Overwriting an
// existing key is always allowed; adding a new key to a vault that is at
// its record capacity is rejected rather than evicting anything.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/model"
	"github.com/vuoto/vuoto/internal/store"
)

// NewPutCommand creates the "put" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <vault-name> <key> <value>",
		Short: "Store a record in a vault",
		Long: `Store a key/value record in a vault.

Writing an existing key replaces its value. Writing a new key into a
full vault fails; remove a record first or raise the capacity in the
configuration file.

Examples:
  vuoto put secrets api-token hunter2
  vuoto put secrets db-password "s3cret value"`,

		// Exactly three positional arguments: vault, key, value.
		Args: cobra.ExactArgs(3),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd.Context(), args[0], args[1], args[2])
		},
	}

	return cmd
}

// runPut is the main logic function for the put command.
func runPut(ctx context.Context, vaultName, key, value string) error {
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

	// Step 3: Write the record, translating the store's sentinel errors
	// into user-facing diagnostics with their own exit codes.
	if err := state.store.Put(ctx, vaultName, key, []byte(value)); err != nil {
		switch {
		case errors.Is(err, store.ErrVaultFull):
			return model.WrapCLIError(model.ExitVaultFull,
				fmt.Sprintf("vault %q is at its capacity of %d records", vaultName, state.config.Capacity), err)
		case errors.Is(err, store.ErrEmptyKey):
			return model.NewCLIError(model.ExitGeneralError, "record key must not be empty")
		default:
			return model.WrapCLIError(model.ExitStoreError,
				fmt.Sprintf("failed to store record %q in vault %q", key, vaultName), err)
		}
	}

	Logger().Debug("record stored",
		zap.String("vault", vaultName),
		zap.String("key", key),
		zap.Int("value_bytes", len(value)),
	)

	// Step 4: Output the result.
	printPutResult(vaultName, key)
	return nil
}

// printPutResult outputs the put command result in text or JSON format.
func printPutResult(vaultName, key string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"vault":  vaultName,
			"key":    key,
			"action": "stored",
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Stored record %q in vault %q\n", key, vaultName)
}
