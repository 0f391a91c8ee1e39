// Package cli — list.go implements the "vuoto list" command.
//
// The list command shows every vault from the index together with its
// record count from the store, as a text table or a JSON array depending
// on the --json flag.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/model"
)

// NewListCommand creates the "list" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all vaults",
		Long: `List every vault and its record count.

Examples:
  vuoto list
  vuoto list --json`,

		// No positional arguments are required for the list command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context())
		},
	}

	return cmd
}

// runList is the main logic function for the list command.
// It reads the vault names from the index, counts each vault's records,
// and outputs results in the appropriate format.
func runList(ctx context.Context) error {
	// Step 1: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 2: Read the vault names. The index keeps them in slot order;
	// sort alphabetically for consistent output.
	names := state.index.Names()
	sort.Strings(names)

	// Step 3: Build a summary per vault. A count failure on one vault
	// should not prevent listing the others.
	summaries := make([]model.VaultSummary, 0, len(names))
	for _, name := range names {
		count, err := state.store.Count(ctx, name)
		if err != nil {
			Logger().Warn("skipping vault",
				zap.String("vault", name),
				zap.Error(err),
			)
			continue
		}
		summaries = append(summaries, model.VaultSummary{Name: name, Records: count})
	}

	// Step 4: Output results in the appropriate format.
	printListResult(summaries)
	return nil
}

// printListResult outputs the vault list in text or JSON format,
// depending on the global --json flag.
func printListResult(summaries []model.VaultSummary) {
	if IsJSONOutput() {
		printListResultJSON(summaries)
	} else {
		printListResultText(summaries)
	}
}

// printListResultJSON outputs the vault list as structured JSON.
// The top-level key is "vaults" containing an array of vault objects.
func printListResultJSON(summaries []model.VaultSummary) {
	type resultJSON struct {
		Vaults []model.VaultSummary `json:"vaults"`
	}

	result := resultJSON{
		// Use an empty slice instead of nil to ensure JSON output shows []
		// instead of null when no vaults exist.
		Vaults: make([]model.VaultSummary, 0, len(summaries)),
	}
	result.Vaults = append(result.Vaults, summaries...)

	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printListResultText outputs the vault list as a human-readable text
// table with aligned columns.
//
// The table format is:
//
//	NAME                 RECORDS
//	api-tokens           12
//	secrets              3
func printListResultText(summaries []model.VaultSummary) {
	if len(summaries) == 0 {
		fmt.Println("No vaults found.")
		return
	}

	// Print header row.
	fmt.Printf("%-20s %s\n", "NAME", "RECORDS")

	for _, summary := range summaries {
		// Print one row per vault with fixed-width columns.
		fmt.Printf("%-20s %d\n", summary.Name, summary.Records)
	}
}
