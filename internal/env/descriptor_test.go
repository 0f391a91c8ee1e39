package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLookup_Rust verifies that the rust environment resolves to its full
// descriptor.
func TestLookup_Rust(t *testing.T) {
	d, ok := Lookup("rust")
	require.True(t, ok)

	assert.Equal(t, "rust", d.Name)
	assert.Equal(t, "rust-dev", d.DisplayName)
	assert.Equal(t, []string{
		"rustc",
		"cargo",
		"rustfmt",
		"clippy",
		"rust-analyzer",
		"gcc",
		"pkg-config",
	}, d.Packages)
}

// TestLookup_ExactMatchOnly verifies that matching does no normalization:
// casing, padding, and unknown names all miss.
func TestLookup_ExactMatchOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown language", input: "python"},
		{name: "empty string", input: ""},
		{name: "upper case", input: "RUST"},
		{name: "mixed case", input: "Rust"},
		{name: "leading space", input: " rust"},
		{name: "trailing space", input: "rust "},
		{name: "prefix", input: "rus"},
		{name: "suffix", input: "rustc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Lookup(tt.input)
			assert.False(t, ok)
		})
	}
}

// TestRustHook verifies the two startup hook effects: enabling failure
// traces and announcing the compiler version.
func TestRustHook(t *testing.T) {
	d, ok := Lookup("rust")
	require.True(t, ok)

	require.Len(t, d.Hook, 2)
	assert.Equal(t, `export RUST_BACKTRACE=1`, d.Hook[0])
	assert.Contains(t, d.Hook[1], "$(rustc --version)")
}

// TestDescriptors verifies the catalog contents and ordering.
func TestDescriptors(t *testing.T) {
	descriptors := Descriptors()

	require.Len(t, descriptors, 1)
	assert.Equal(t, "rust", descriptors[0].Name)
}

// TestNames verifies the name listing matches the catalog.
func TestNames(t *testing.T) {
	assert.Equal(t, []string{"rust"}, Names())
}
