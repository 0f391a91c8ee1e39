// Package cli — doctor.go implements the "vuoto env doctor" command.
//
// doctor probes everything environment activation depends on: the manager
// binary on PATH, the manifest in the configured flake directory, and the
// writable application home with its two storage files. The probes are
// independent, so they run concurrently and report into fixed result slots.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vuoto/vuoto/internal/apphome"
	"github.com/vuoto/vuoto/internal/config"
	"github.com/vuoto/vuoto/internal/env"
	"github.com/vuoto/vuoto/internal/model"
	"github.com/vuoto/vuoto/internal/store"
	"github.com/vuoto/vuoto/internal/vault"
)

// healthCheck is the result of a single doctor probe.
type healthCheck struct {
	// Name identifies the probe in the report.
	Name string `json:"name"`

	// Status is the probe outcome (ok, failed, or skipped).
	Status model.CheckStatus `json:"status"`

	// Detail carries the resolved path, version, count, or failure reason.
	Detail string `json:"detail,omitempty"`
}

// newEnvDoctorCommand creates the "env doctor" cobra command.
func newEnvDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that environment activation can work",
		Long: `Run health checks over everything environment activation depends on:

  - the environment manager binary and its reported version
  - the manifest in the configured flake directory
  - the application home, the vault index, and the record store

The command exits non-zero when any check fails.

Examples:
  vuoto env doctor
  vuoto env doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvDoctor(cmd.Context())
		},
	}

	return cmd
}

// runEnvDoctor contains the main logic for the env doctor command.
func runEnvDoctor(ctx context.Context) error {
	// Step 1: Resolve the home and configuration the probes depend on.
	// doctor opens its own handles rather than going through openAppState,
	// because opening the index and store is itself part of the checkup.
	home, err := apphome.Resolve()
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, "failed to resolve application home", err)
	}

	cfg, err := config.Load(apphome.ConfigPath(home))
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}

	// Step 2: Run the probes concurrently. Each goroutine writes only its
	// own slots, so the report order is stable without any locking. Probe
	// problems surface as failed check statuses, never as goroutine errors.
	checks := make([]healthCheck, 6)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		checks[0], checks[1] = checkManager(ctx, cfg.Manager)
		return nil
	})
	g.Go(func() error {
		checks[2] = checkManifest(cfg.FlakeDir)
		return nil
	})
	g.Go(func() error {
		checks[3] = checkHomeWritable(home)
		return nil
	})
	g.Go(func() error {
		checks[4] = checkIndex(home)
		return nil
	})
	g.Go(func() error {
		checks[5] = checkStore(ctx, home, cfg.Capacity)
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "health checks aborted", err)
	}

	// Step 3: Count failures and print the report.
	failed := 0
	for _, c := range checks {
		if c.Status == model.CheckFailed {
			failed++
		}
	}

	printDoctorResult(checks, failed)

	if failed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d of %d checks failed", failed, len(checks)))
	}
	return nil
}

// checkManager probes the environment manager binary and its version.
// The two results are coupled: when the binary is missing from PATH the
// version probe is skipped rather than failed twice for the same cause.
func checkManager(ctx context.Context, manager string) (healthCheck, healthCheck) {
	binary := healthCheck{Name: "manager binary"}
	version := healthCheck{Name: "manager version"}

	path, err := exec.LookPath(manager)
	if err != nil {
		binary.Status = model.CheckFailed
		binary.Detail = fmt.Sprintf("%q not found on PATH", manager)
		version.Status = model.CheckSkipped
		version.Detail = "manager binary missing"
		return binary, version
	}
	binary.Status = model.CheckOK
	binary.Detail = path

	reported, err := env.ManagerVersion(ctx, manager)
	if err != nil {
		version.Status = model.CheckFailed
		version.Detail = err.Error()
		return binary, version
	}
	version.Status = model.CheckOK
	version.Detail = reported
	return binary, version
}

// checkManifest verifies that flake.nix exists in the configured flake
// directory and still matches the built-in environment catalog.
func checkManifest(flakeDir string) healthCheck {
	result := healthCheck{Name: "environment manifest"}

	path := filepath.Join(flakeDir, "flake.nix")
	committed, err := os.ReadFile(path)
	if err != nil {
		result.Status = model.CheckFailed
		if os.IsNotExist(err) {
			result.Detail = fmt.Sprintf("%s not found", path)
		} else {
			result.Detail = err.Error()
		}
		return result
	}

	rendered, err := env.RenderFlake()
	if err != nil {
		result.Status = model.CheckFailed
		result.Detail = err.Error()
		return result
	}

	if !bytes.Equal(committed, rendered) {
		result.Status = model.CheckFailed
		result.Detail = fmt.Sprintf("%s differs from the built-in catalog (regenerate with \"vuoto env manifest\")", path)
		return result
	}

	result.Status = model.CheckOK
	result.Detail = path
	return result
}

// checkHomeWritable verifies the application home accepts writes by
// creating and removing a probe file.
func checkHomeWritable(home string) healthCheck {
	result := healthCheck{Name: "application home"}

	probe := filepath.Join(home, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		result.Status = model.CheckFailed
		result.Detail = fmt.Sprintf("%s is not writable: %v", home, err)
		return result
	}
	_ = os.Remove(probe)

	result.Status = model.CheckOK
	result.Detail = home
	return result
}

// checkIndex opens the vault index and reports how many vaults it holds.
func checkIndex(home string) healthCheck {
	result := healthCheck{Name: "vault index"}

	dataDir, err := apphome.DataDir(home)
	if err != nil {
		result.Status = model.CheckFailed
		result.Detail = err.Error()
		return result
	}

	ix, err := vault.Open(dataDir)
	if err != nil {
		result.Status = model.CheckFailed
		result.Detail = err.Error()
		return result
	}
	defer func() { _ = ix.Close() }()

	result.Status = model.CheckOK
	result.Detail = fmt.Sprintf("%d vault(s)", ix.Len())
	return result
}

// checkStore opens the record store and reports how many records it holds
// across all vaults.
func checkStore(ctx context.Context, home string, capacity int) healthCheck {
	result := healthCheck{Name: "record store"}

	dataDir, err := apphome.DataDir(home)
	if err != nil {
		result.Status = model.CheckFailed
		result.Detail = err.Error()
		return result
	}

	st, err := store.Open(dataDir, capacity)
	if err != nil {
		result.Status = model.CheckFailed
		result.Detail = err.Error()
		return result
	}
	defer func() { _ = st.Close() }()

	total, err := st.TotalRecords(ctx)
	if err != nil {
		result.Status = model.CheckFailed
		result.Detail = err.Error()
		return result
	}

	result.Status = model.CheckOK
	result.Detail = fmt.Sprintf("%d record(s)", total)
	return result
}

// printDoctorResult outputs the check report in text or JSON format.
func printDoctorResult(checks []healthCheck, failed int) {
	if IsJSONOutput() {
		type resultJSON struct {
			Checks  []healthCheck `json:"checks"`
			Healthy bool          `json:"healthy"`
		}

		result := resultJSON{Checks: checks, Healthy: failed == 0}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	// Print header row.
	fmt.Printf("%-8s %-22s %s\n", "STATUS", "CHECK", "DETAIL")
	for _, c := range checks {
		fmt.Printf("%-8s %-22s %s\n", c.Status, c.Name, c.Detail)
	}
}
