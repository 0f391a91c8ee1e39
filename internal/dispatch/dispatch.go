// Package dispatch implements the "dev" entry point: it routes a single
// environment-name argument to the external environment manager.
//
// The dispatcher does exactly one of two things per invocation. If the
// argument names a known environment, it delegates activation and passes
// the manager's exit status through unchanged. Otherwise it prints one
// diagnostic line to stderr and exits with status 1. It reads no
// configuration, no environment variables, and no state beyond the
// argument, so repeated invocations behave identically.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuoto/vuoto/internal/env"
	"github.com/vuoto/vuoto/internal/model"
)

// NewDevCommand creates the dev root command. The activator is injected so
// routing stays testable without provisioning real environments.
func NewDevCommand(activator env.Activator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev <env-name>",
		Short: "Open a development environment shell",
		Long: fmt.Sprintf(`Open the shell of a named development environment.

The name is matched verbatim against the built-in catalog; there is no
normalization and no case-folding. Known environments: %s.

On a match, activation is delegated to the environment manager and the
manager's exit status is passed through unchanged.

Examples:
  dev rust    Open the Rust toolchain shell`, strings.Join(env.Names(), ", ")),

		// The environment name is matched verbatim, so nothing that looks
		// like a flag may be consumed by the flag parser. Every argument
		// reaches RunE exactly as typed.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,
		// SilenceErrors lets us handle error printing ourselves in Execute().
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd.Context(), args, activator)
		},
	}

	return cmd
}

// runDev resolves the environment name and delegates activation.
//
// Only the first argument is read; extra arguments are ignored, and no
// argument at all is treated as the empty name, which falls into the
// unknown-environment branch. A delegated failure is returned exactly as
// the activator produced it, never inspected or rewrapped.
func runDev(ctx context.Context, args []string, activator env.Activator) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	environment, ok := env.Lookup(name)
	if !ok {
		return model.NewCLIError(model.ExitGeneralError, fmt.Sprintf("unknown env: '%s'", name))
	}

	return activator.Activate(ctx, environment)
}

// Execute builds the dev command around the given activator, runs it, and
// exits the process with the appropriate status code.
func Execute(activator env.Activator) {
	rootCmd := NewDevCommand(activator)

	if err := rootCmd.Execute(); err != nil {
		// Unknown environment name, the only locally produced failure.
		// errors.As would also work here, but a type assertion is simpler
		// for this single-level check.
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message)
			os.Exit(int(cliErr.Code))
		}

		// The delegated activation exited non-zero. The manager already
		// reported the details on the shared stderr, so print nothing and
		// pass its status through verbatim.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		// The manager binary could not be started at all.
		printError(err.Error())
		os.Exit(int(model.ExitCommandNotFound))
	}
}

// printError writes one diagnostic line to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
