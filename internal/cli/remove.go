// Package cli — remove.go implements the "vuoto remove" command.
//
// The remove command destroys a vault: every record in the store is
// deleted, then the name's index slot is zeroed so a later create can
// reuse it. The store purge runs first; if it fails, the name stays in
// the index and the command can simply be retried.
//
// By default, the command prompts for confirmation before proceeding.
// The --force flag skips the confirmation prompt.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/model"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	// force skips the interactive confirmation prompt when true.
	force bool
}

// NewRemoveCommand creates the "remove" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "remove <vault-name>",
		Short: "Remove a vault and all of its records",
		Long: `Remove a vault, deleting every record it holds.

The vault's index slot is freed for reuse by a later create. Unless
--force is specified, the command prompts for confirmation.

Examples:
  vuoto remove secrets
  vuoto remove --force secrets`,

		// Exactly one positional argument (vault name) is required.
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), args[0], flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Remove without confirmation")

	return cmd
}

// runRemove is the main logic function for the remove command.
// It finds the vault, optionally prompts for confirmation, purges the
// vault's records, and frees the index slot.
func runRemove(ctx context.Context, name string, flags *removeFlags) error {
	// Step 1: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 2: Ensure the vault exists.
	if err := state.requireVault(name); err != nil {
		return err
	}

	// Step 3: Count the vault's records so the confirmation prompt and the
	// result output can say what is at stake.
	count, err := state.store.Count(ctx, name)
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to count records in vault %q", name), err)
	}

	// Step 4: Prompt for confirmation unless --force is specified.
	if !flags.force {
		confirmed, err := promptConfirmation(name, count)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
		}
		if !confirmed {
			return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
		}
	}

	// Step 5: Purge the vault's records from the store.
	removedRecords, err := state.store.DropVault(ctx, name)
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to delete records of vault %q", name), err)
	}

	// Step 6: Free the index slot.
	if _, err := state.index.Remove(name); err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to remove vault %q from the index", name), err)
	}

	Logger().Debug("vault removed",
		zap.String("vault", name),
		zap.Int64("records_deleted", removedRecords),
	)

	// Step 7: Output the result.
	printRemoveResult(name, removedRecords)
	return nil
}

// promptConfirmation asks the user to confirm the remove operation.
// It reads a single line from stdin and checks for "y" or "yes".
// Returns true if the user confirmed, false otherwise.
func promptConfirmation(name string, recordCount int) (bool, error) {
	fmt.Printf("About to remove vault %q:\n", name)
	fmt.Printf("  - %d record(s) will be deleted\n", recordCount)
	fmt.Print("\nContinue? [y/N] ")

	// Read a line from stdin. bufio.Scanner handles different line endings
	// across platforms (LF on Unix, CRLF on Windows).
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}

	// If stdin is closed or an error occurred, treat it as "no".
	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}

// printRemoveResult outputs the remove command result in text or JSON format.
func printRemoveResult(name string, removedRecords int64) {
	if IsJSONOutput() {
		printRemoveResultJSON(name, removedRecords)
	} else {
		printRemoveResultText(name, removedRecords)
	}
}

// printRemoveResultJSON outputs the remove result as structured JSON.
func printRemoveResultJSON(name string, removedRecords int64) {
	result := map[string]interface{}{
		"name":           name,
		"action":         "removed",
		"recordsDeleted": removedRecords,
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printRemoveResultText outputs the remove result as human-readable text.
func printRemoveResultText(name string, removedRecords int64) {
	fmt.Printf("Removed vault %q\n", name)
	fmt.Printf("  Deleted %d record(s)\n", removedRecords)
}
