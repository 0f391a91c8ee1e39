// activate.go shells out to the external environment manager.
//
// The dispatcher depends only on the Activator interface so its routing
// logic stays independently testable without provisioning anything real.
// NixRunner is the production implementation.
package env

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultManagerCommand is the environment manager binary used when the
// configuration does not name one.
const DefaultManagerCommand = "nix"

// Activator is the capability the dispatcher needs: given a descriptor,
// provision and activate the environment and report how the attempt ended.
type Activator interface {
	Activate(ctx context.Context, environment Descriptor) error
}

// NixRunner activates environments with `nix develop`, attaching the
// caller's terminal so the user lands inside the activated shell.
type NixRunner struct {
	// Command is the manager binary to invoke. Empty means
	// DefaultManagerCommand.
	Command string

	// Dir is the directory holding flake.nix. Empty means the current
	// working directory.
	Dir string
}

// Activate runs `nix develop .#<name>` and blocks until the spawned shell
// exits.
//
// The returned error is exactly what os/exec reports: an *exec.ExitError
// when the shell exited non-zero, or a start failure when the manager
// binary could not run at all. Nothing here inspects, wraps, or translates
// the delegated outcome — callers that need the exit status unwrap it
// themselves.
func (r *NixRunner) Activate(ctx context.Context, environment Descriptor) error {
	command := r.Command
	if command == "" {
		command = DefaultManagerCommand
	}

	// #nosec G204 -- the binary comes from the config file and the
	// attribute name from the compiled-in catalog
	cmd := exec.CommandContext(ctx, command, "develop", ".#"+environment.Name)
	cmd.Dir = r.Dir

	// The activated shell is interactive. Hand it the caller's terminal
	// instead of capturing anything.
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// ManagerVersion asks the manager binary for its version string. Only the
// doctor command uses this; activation itself never inspects the tool.
func ManagerVersion(ctx context.Context, command string) (string, error) {
	if command == "" {
		command = DefaultManagerCommand
	}

	// #nosec G204 -- the binary name comes from the config file
	cmd := exec.CommandContext(ctx, command, "--version")

	// Capture stdout and stderr separately so we can include stderr
	// in error messages while returning stdout on success.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("%s --version failed", command)
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}

	// Keep the first line only. Some managers print build metadata on
	// additional lines.
	version := strings.TrimSpace(stdout.String())
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = strings.TrimSpace(version[:i])
	}
	return version, nil
}
