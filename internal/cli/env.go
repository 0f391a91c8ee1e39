// Package cli — env.go implements the "vuoto env" command group.
//
// The group bundles the read-only environment tooling:
//
//	env list      show the built-in development environments
//	env manifest  print the rendered flake.nix manifest
//	env doctor    check that activation can work (doctor.go)
//
// Activation itself lives in the separate dev binary; these commands only
// describe and verify what dev will delegate to.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuoto/vuoto/internal/env"
	"github.com/vuoto/vuoto/internal/model"
)

// NewEnvCommand creates the "env" command group.
// It is called from NewRootCommand to register as a subcommand.
func NewEnvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect development environments",
		Long: `Inspect the built-in development environments and the manifest the
environment manager consumes.`,
	}

	cmd.AddCommand(newEnvListCommand())
	cmd.AddCommand(newEnvManifestCommand())
	cmd.AddCommand(newEnvDoctorCommand())

	return cmd
}

// newEnvListCommand creates the "env list" cobra command.
func newEnvListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in environments",
		Long: `List every development environment the dev dispatcher can open.

Examples:
  vuoto env list
  vuoto env list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvList()
		},
	}

	return cmd
}

// runEnvList prints the environment catalog. The catalog is compiled in,
// so this command needs no data layer.
func runEnvList() error {
	printEnvListResult(env.Descriptors())
	return nil
}

// envJSON is the JSON output structure for a single environment in the
// env list command.
type envJSON struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Packages    []string `json:"packages"`
	Hook        []string `json:"hook"`
}

// printEnvListResult outputs the catalog in text or JSON format.
func printEnvListResult(descriptors []env.Descriptor) {
	if IsJSONOutput() {
		type resultJSON struct {
			Environments []envJSON `json:"environments"`
		}

		result := resultJSON{Environments: make([]envJSON, 0, len(descriptors))}
		for _, d := range descriptors {
			result.Environments = append(result.Environments, envJSON{
				Name:        d.Name,
				DisplayName: d.DisplayName,
				Packages:    d.Packages,
				Hook:        d.Hook,
			})
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	// Print header row.
	fmt.Printf("%-10s %-12s %s\n", "NAME", "SHELL", "PACKAGES")
	for _, d := range descriptors {
		fmt.Printf("%-10s %-12s %s\n", d.Name, d.DisplayName, strings.Join(d.Packages, ", "))
	}
}

// newEnvManifestCommand creates the "env manifest" cobra command.
func newEnvManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the environment manifest",
		Long: `Render the flake.nix manifest for every built-in environment and
print it to stdout.

The committed flake.nix at the repository root must match this output.
Redirect to regenerate it after changing the catalog:

  vuoto env manifest > flake.nix`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvManifest()
		},
	}

	return cmd
}

// runEnvManifest renders the manifest and writes the raw bytes to stdout
// so the output can be redirected straight into flake.nix.
func runEnvManifest() error {
	data, err := env.RenderFlake()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to render environment manifest", err)
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write environment manifest", err)
	}
	return nil
}
