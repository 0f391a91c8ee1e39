// Package cli — status.go implements the "vuoto status" command.
//
// status reports where the application keeps its data and how much of it
// there is: the home directory, the effective configuration, vault and
// record totals, and the on-disk size of the index and the store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vuoto/vuoto/internal/apphome"
	"github.com/vuoto/vuoto/internal/model"
)

// statusResult aggregates everything the status command reports.
type statusResult struct {
	Home       string `json:"home"`
	ConfigPath string `json:"configPath"`
	Manager    string `json:"manager"`
	FlakeDir   string `json:"flakeDir"`
	Capacity   int    `json:"capacity"`
	Vaults     int    `json:"vaults"`
	Records    int    `json:"records"`
	IndexPath  string `json:"indexPath"`
	IndexSize  int64  `json:"indexSize"`
	StorePath  string `json:"storePath"`
	StoreSize  int64  `json:"storeSize"`
}

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show application state and storage usage",
		Long: `Show the application home, the effective configuration, and the
size of the vault index and the record store.

Examples:
  vuoto status
  vuoto status --json`,

		// No positional arguments are required for the status command.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}

	return cmd
}

// runStatus is the main logic function for the status command.
func runStatus(ctx context.Context) error {
	// Step 1: Open the data layer.
	state, err := openAppState()
	if err != nil {
		return err
	}
	defer state.Close()

	// Step 2: Count vaults and records. The record total comes straight
	// from the store, so it also covers records whose vault is no longer
	// in the index.
	totalRecords, err := state.store.TotalRecords(ctx)
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, "failed to count records", err)
	}

	// Step 3: Measure the on-disk footprint of both storage files.
	result := statusResult{
		Home:       state.home,
		ConfigPath: apphome.ConfigPath(state.home),
		Manager:    state.config.Manager,
		FlakeDir:   state.config.FlakeDir,
		Capacity:   state.config.Capacity,
		Vaults:     state.index.Len(),
		Records:    totalRecords,
		IndexPath:  state.index.Path(),
		StorePath:  state.store.Path(),
	}
	if info, err := os.Stat(result.IndexPath); err == nil {
		result.IndexSize = info.Size()
	}
	if info, err := os.Stat(result.StorePath); err == nil {
		result.StoreSize = info.Size()
	}

	// Step 4: Output the result.
	printStatusResult(result)
	return nil
}

// printStatusResult outputs the status in text or JSON format.
func printStatusResult(result statusResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("vuoto home %s\n", result.Home)
	fmt.Printf("  Config:    %s\n", result.ConfigPath)
	fmt.Printf("  Manager:   %s\n", result.Manager)
	fmt.Printf("  Flake dir: %s\n", result.FlakeDir)
	fmt.Printf("  Capacity:  %d records per vault\n", result.Capacity)
	fmt.Println()
	fmt.Printf("  Vaults:    %d\n", result.Vaults)
	fmt.Printf("  Records:   %d\n", result.Records)
	fmt.Printf("  Index:     %s (%s)\n", result.IndexPath, FormatByteSize(result.IndexSize))
	fmt.Printf("  Store:     %s (%s)\n", result.StorePath, FormatByteSize(result.StoreSize))
}

// FormatByteSize renders a byte count with a binary unit suffix.
//
// This function is exported for testing purposes (tested in status_test.go).
//
// Example:
//
//	532        → "532 B"
//	16384      → "16.0 KiB"
//	5242880    → "5.0 MiB"
func FormatByteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	// Walk up the unit ladder until the value fits below 1024.
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
