// Package cli — create.go implements the "vuoto create" command.
//
// The create command registers a new vault name in the index. The index
// enforces the name rules (non-empty, at most 16 bytes, no NUL bytes) and
// treats re-creating an existing vault as a no-op, so create is idempotent.
//
// Orchestration steps:
//  1. Validate the vault name against the index rules
//  2. Open the data layer
//  3. Add the name to the index (existing vaults are left untouched)
//  4. Output the result (text or JSON)
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/model"
	"github.com/vuoto/vuoto/internal/vault"
)

// NewCreateCommand creates the "create" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <vault-name>",
		Short: "Create a new vault",
		Long: `Create a new vault for key/value records.

Vault names are at most 16 bytes, non-empty, and may not contain NUL
bytes. Creating a vault that already exists is a no-op.

Examples:
  vuoto create secrets
  vuoto create api-tokens`,

		// Args validates that exactly one positional argument (vault name) is provided.
		Args: cobra.ExactArgs(1),

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0])
		},
	}

	return cmd
}

// runCreate is the main logic function for the create command.
func runCreate(name string) error {
	// Step 1: Validate the name up front so the user gets a clear message
	// instead of a low-level index error.
	if err := vault.ValidateName(name); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("invalid vault name %q", name), err)
	}

	// Step 2: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 3: Add the name. Add is a no-op for names already present, so
	// record whether the vault existed beforehand for the output.
	existed := state.index.Has(name)
	if err := state.index.Add(name); err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to create vault %q", name), err)
	}

	Logger().Debug("vault created",
		zap.String("vault", name),
		zap.Bool("already_existed", existed),
	)

	// Step 4: Output results.
	printCreateResult(name, !existed)
	return nil
}

// printCreateResult outputs the create command results in text or JSON format.
func printCreateResult(name string, created bool) {
	if IsJSONOutput() {
		printCreateResultJSON(name, created)
	} else {
		printCreateResultText(name, created)
	}
}

// printCreateResultJSON outputs the create result as structured JSON.
func printCreateResultJSON(name string, created bool) {
	result := map[string]interface{}{
		"name":    name,
		"created": created,
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printCreateResultText outputs the create result as human-readable text.
func printCreateResultText(name string, created bool) {
	if created {
		fmt.Printf("Created vault %q\n", name)
	} else {
		fmt.Printf("Vault %q already exists\n", name)
	}
}
