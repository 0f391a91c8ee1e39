// Package model defines the domain types for the vuoto CLI tools.
//
// All entities in this package are pure data structures shared by the two
// binaries (vuoto and dev) and the storage packages. The package also defines
// the exit-code table and the CLIError type that carries exit codes from
// command logic up to the process boundary.
package model

import (
	"fmt"
)

// CheckStatus represents the outcome of a single health check run by
// "vuoto env doctor". Checks either pass, fail, or are skipped when a
// prerequisite (such as the app home directory) is unavailable.
type CheckStatus string

const (
	// CheckOK indicates the check passed.
	CheckOK CheckStatus = "ok"

	// CheckFailed indicates the check ran and found a problem.
	CheckFailed CheckStatus = "failed"

	// CheckSkipped indicates the check did not run because a
	// prerequisite check already failed.
	CheckSkipped CheckStatus = "skipped"
)

// String returns the string representation of CheckStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (s CheckStatus) String() string {
	return string(s)
}

// IsValid checks whether the CheckStatus value is one of the
// predefined valid states.
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckOK, CheckFailed, CheckSkipped:
		return true
	default:
		return false
	}
}

// VaultSummary pairs a vault name with its record count. It is the row type
// for "vuoto list" and "vuoto status" output and is reconstructed at runtime
// from the index and the record store — it is never persisted itself.
type VaultSummary struct {
	// Name is the vault identifier as registered in the index.
	Name string `json:"name"`

	// Records is the number of records currently stored in the vault.
	Records int `json:"records"`
}

// ExitCode defines the standard CLI exit codes shared by both binaries.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	// The dev dispatcher also uses this code for an unrecognized
	// environment name.
	ExitGeneralError ExitCode = 1

	// ExitVaultNotFound indicates the named vault is not registered
	// in the index.
	ExitVaultNotFound ExitCode = 2

	// ExitRecordNotFound indicates the requested key does not exist
	// in the vault.
	ExitRecordNotFound ExitCode = 3

	// ExitVaultFull indicates the vault has reached its record capacity
	// and cannot accept new keys.
	ExitVaultFull ExitCode = 4

	// ExitStoreError indicates the index or record store could not be
	// opened, read, or written.
	ExitStoreError ExitCode = 5

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 6

	// ExitCommandNotFound indicates an external tool (such as the
	// environment manager) could not be spawned at all. The value follows
	// the shell convention for "command not found".
	ExitCommandNotFound ExitCode = 127
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
