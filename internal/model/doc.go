// Package model defines the domain types and value objects shared by the
// vuoto and dev binaries.
//
// This package contains pure data structures with no external dependencies.
// VaultSummary values are transient representations joined together from the
// vault index and the record store at runtime; nothing in this package is
// persisted directly.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
