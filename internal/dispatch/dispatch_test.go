package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuoto/vuoto/internal/env"
	"github.com/vuoto/vuoto/internal/model"
)

// fakeActivator records activation requests and returns a canned error.
type fakeActivator struct {
	calls []env.Descriptor
	err   error
}

func (f *fakeActivator) Activate(_ context.Context, environment env.Descriptor) error {
	f.calls = append(f.calls, environment)
	return f.err
}

// TestRunDev_KnownEnvironment verifies that a recognized name triggers
// exactly one activation with the matching descriptor.
func TestRunDev_KnownEnvironment(t *testing.T) {
	activator := &fakeActivator{}

	err := runDev(context.Background(), []string{"rust"}, activator)
	require.NoError(t, err)

	require.Len(t, activator.calls, 1)
	assert.Equal(t, "rust", activator.calls[0].Name)
}

// TestRunDev_UnknownEnvironment verifies the diagnostic for every shape of
// unrecognized input: wrong name, empty string, wrong casing, padding.
// None of them may reach the activator.
func TestRunDev_UnknownEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
	}{
		{name: "unknown language", args: []string{"go"}, input: "go"},
		{name: "empty argument", args: []string{""}, input: ""},
		{name: "no arguments", args: nil, input: ""},
		{name: "upper case", args: []string{"RUST"}, input: "RUST"},
		{name: "padded name", args: []string{" rust"}, input: " rust"},
		{name: "flag-like argument", args: []string{"--help"}, input: "--help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activator := &fakeActivator{}

			err := runDev(context.Background(), tt.args, activator)
			require.Error(t, err)

			cliErr, ok := err.(*model.CLIError)
			require.True(t, ok)
			assert.Equal(t, model.ExitGeneralError, cliErr.Code)
			assert.Equal(t, fmt.Sprintf("unknown env: '%s'", tt.input), cliErr.Message)
			assert.Empty(t, activator.calls)
		})
	}
}

// TestRunDev_ExtraArgumentsIgnored verifies that only the first argument
// is consulted.
func TestRunDev_ExtraArgumentsIgnored(t *testing.T) {
	activator := &fakeActivator{}

	err := runDev(context.Background(), []string{"rust", "--fast", "whatever"}, activator)
	require.NoError(t, err)

	require.Len(t, activator.calls, 1)
	assert.Equal(t, "rust", activator.calls[0].Name)
}

// TestRunDev_DelegatedErrorUntouched verifies that an activation failure is
// returned exactly as produced, with no wrapping or translation.
func TestRunDev_DelegatedErrorUntouched(t *testing.T) {
	delegated := errors.New("activation blew up")
	activator := &fakeActivator{err: delegated}

	err := runDev(context.Background(), []string{"rust"}, activator)

	assert.Equal(t, delegated, err)
	assert.ErrorIs(t, err, delegated)
}

// TestRunDev_Idempotent verifies that repeated invocations with the same
// argument behave identically.
func TestRunDev_Idempotent(t *testing.T) {
	activator := &fakeActivator{}

	for i := 0; i < 3; i++ {
		require.NoError(t, runDev(context.Background(), []string{"rust"}, activator))
	}

	assert.Len(t, activator.calls, 3)
}

// TestNewDevCommand_RoutesThroughCobra verifies the full command path:
// arguments reach runDev unparsed, including flag-shaped ones.
func TestNewDevCommand_RoutesThroughCobra(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantErr   string
		activated int
	}{
		{name: "known environment", args: []string{"rust"}, activated: 1},
		{name: "unknown environment", args: []string{"python"}, wantErr: "unknown env: 'python'"},
		{name: "zero arguments", args: []string{}, wantErr: "unknown env: ''"},
		{name: "help flag is a name", args: []string{"--help"}, wantErr: "unknown env: '--help'"},
		{name: "extras ignored", args: []string{"rust", "extra"}, activated: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activator := &fakeActivator{}
			cmd := NewDevCommand(activator)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			if tt.wantErr != "" {
				require.Error(t, err)
				cliErr, ok := err.(*model.CLIError)
				require.True(t, ok)
				assert.Equal(t, model.ExitGeneralError, cliErr.Code)
				assert.Equal(t, tt.wantErr, cliErr.Message)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, activator.calls, tt.activated)
		})
	}
}
