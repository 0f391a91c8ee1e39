// Package env declares the built-in development environments, renders the
// flake manifest the environment manager consumes, and shells out to that
// manager for activation.
//
// The environment catalog is a fixed, compiled-in enumeration: adding an
// environment means adding a Descriptor here and regenerating flake.nix.
// There is no runtime registry, and name matching is exact — no
// normalization, no case-folding, no whitespace trimming.
package env

// Descriptor declares one named development environment: the toolchain
// packages it provisions and the hook that runs when its shell opens.
//
// Descriptors are resolved by the external environment manager using the
// identifier the dispatcher passes; the dispatcher itself never reads the
// package list or the hook.
type Descriptor struct {
	// Name is the identifier users pass to the dispatcher. It doubles as
	// the devShell attribute name in the rendered manifest, so it must be
	// a valid Nix attribute name.
	Name string

	// DisplayName names the shell derivation in the manifest. The manager
	// shows it while building the environment.
	DisplayName string

	// Packages lists the tool packages the environment provisions, in
	// declaration order. All of them must be present in the activated
	// shell; no ordering dependency exists beyond "all present".
	Packages []string

	// Hook holds the shell lines run once the environment is active.
	Hook []string
}

// rustEnv is the Rust toolchain environment: compiler, build driver,
// formatter, linter, language server, linker support, and the
// package-config helper native builds need.
var rustEnv = Descriptor{
	Name:        "rust",
	DisplayName: "rust-dev",
	Packages: []string{
		"rustc",
		"cargo",
		"rustfmt",
		"clippy",
		"rust-analyzer",
		"gcc",
		"pkg-config",
	},
	Hook: []string{
		`export RUST_BACKTRACE=1`,
		`echo "Rust environment ready: $(rustc --version)"`,
	},
}

// Lookup resolves an environment name to its descriptor. The match is
// exact, so "RUST" or a whitespace-padded name misses.
func Lookup(name string) (Descriptor, bool) {
	switch name {
	case rustEnv.Name:
		return rustEnv, true
	default:
		return Descriptor{}, false
	}
}

// Descriptors returns every built-in environment in declaration order.
func Descriptors() []Descriptor {
	return []Descriptor{rustEnv}
}

// Names returns the names of every built-in environment in declaration
// order. Used for listings and error hints.
func Names() []string {
	descriptors := Descriptors()
	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.Name
	}
	return names
}
