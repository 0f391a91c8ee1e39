// Package main is the entry point for the dev dispatcher.
//
// dev takes a single environment name, matches it against the compiled-in
// catalog, and hands the terminal over to the environment manager:
//
//	dev rust
//
// The dispatcher reads no configuration and keeps no state. Its only
// decisions are "which environment" and "delegate or refuse"; everything
// after a successful match, including the final exit status, belongs to
// the manager process.
package main

import (
	"github.com/vuoto/vuoto/internal/dispatch"
	"github.com/vuoto/vuoto/internal/env"
)

func main() {
	// Execute handles error formatting and exit codes, including passing
	// a delegated manager exit status through untouched.
	dispatch.Execute(&env.NixRunner{})
}
