// Package cli — state.go opens the shared data layer for subcommands.
//
// Every data-facing command needs the same four things: the resolved
// application home, the parsed configuration, the vault name index, and
// the record store. openAppState opens them all in one call so each
// command's orchestration starts from a ready state, mirrored by Close.
package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vuoto/vuoto/internal/apphome"
	"github.com/vuoto/vuoto/internal/config"
	"github.com/vuoto/vuoto/internal/model"
	"github.com/vuoto/vuoto/internal/store"
	"github.com/vuoto/vuoto/internal/vault"
)

// appState bundles the open handles a command works against.
type appState struct {
	// home is the resolved application home directory.
	home string

	// config is the parsed configuration, defaults applied.
	config config.Config

	// index is the open vault name index.
	index *vault.Index

	// store is the open record store.
	store *store.Store
}

// openAppState resolves the application home, loads the configuration, and
// opens the vault index and the record store. Callers must Close the
// returned state when done.
func openAppState() (*appState, error) {
	home, err := apphome.Resolve()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError, "failed to resolve application home", err)
	}

	cfg, err := config.Load(apphome.ConfigPath(home))
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}

	dataDir, err := apphome.DataDir(home)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError, "failed to create data directory", err)
	}

	ix, err := vault.Open(dataDir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError, "failed to open vault index", err)
	}

	st, err := store.Open(dataDir, cfg.Capacity)
	if err != nil {
		// The index is already open at this point; release it before
		// reporting the failure.
		_ = ix.Close()
		return nil, model.WrapCLIError(model.ExitStoreError, "failed to open record store", err)
	}

	Logger().Debug("opened application state",
		zap.String("home", home),
		zap.String("index", ix.Path()),
		zap.String("store", st.Path()),
		zap.Int("capacity", cfg.Capacity),
	)

	return &appState{home: home, config: cfg, index: ix, store: st}, nil
}

// Close releases the record store and the vault index.
func (s *appState) Close() {
	_ = s.store.Close()
	_ = s.index.Close()
}

// requireVault fails with ExitVaultNotFound when the named vault is not in
// the index. Record commands call this before touching the store so a typo
// in the vault name is reported as such rather than as a missing record.
func (s *appState) requireVault(name string) error {
	if !s.index.Has(name) {
		return model.NewCLIError(model.ExitVaultNotFound, fmt.Sprintf("vault %q does not exist", name))
	}
	return nil
}
