package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openStore opens a store in a fresh temp directory and closes it when the
// test finishes.
func openStore(t *testing.T, capacity int) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), capacity)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

// TestOpen_CreatesDatabase verifies that Open creates the database file and
// reports its path.
func TestOpen_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, 0)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	assert.Equal(t, filepath.Join(dir, DBFileName), s.Path())
	_, err = os.Stat(s.Path())
	assert.NoError(t, err)
}

// TestOpen_DefaultCapacity verifies that a non-positive capacity falls back
// to DefaultCapacity.
func TestOpen_DefaultCapacity(t *testing.T) {
	s := openStore(t, 0)
	assert.Equal(t, DefaultCapacity, s.Capacity())

	s2 := openStore(t, 64)
	assert.Equal(t, 64, s2.Capacity())
}

// TestPutGet_Roundtrip verifies that a stored value comes back unchanged.
func TestPutGet_Roundtrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "secrets", "api-token", []byte("hunter2")))

	value, err := s.Get(ctx, "secrets", "api-token")
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), value)
}

// TestPut_Overwrite verifies that writing an existing key replaces the value
// without growing the vault.
func TestPut_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "secrets", "api-token", []byte("old")))
	require.NoError(t, s.Put(ctx, "secrets", "api-token", []byte("new")))

	value, err := s.Get(ctx, "secrets", "api-token")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)

	count, err := s.Count(ctx, "secrets")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestPut_EmptyKey verifies that an empty record key is rejected.
func TestPut_EmptyKey(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	err := s.Put(ctx, "secrets", "", []byte("value"))
	assert.ErrorIs(t, err, ErrEmptyKey)
}

// TestPut_EmptyValue verifies that an empty value is allowed.
func TestPut_EmptyValue(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "secrets", "blank", []byte{}))

	value, err := s.Get(ctx, "secrets", "blank")
	require.NoError(t, err)
	assert.Empty(t, value)
}

// TestGet_Missing verifies that reading an absent key returns
// ErrRecordNotFound.
func TestGet_Missing(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	_, err := s.Get(ctx, "secrets", "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// TestDelete verifies that Delete reports whether the record existed and
// that the record is gone afterwards.
func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "secrets", "api-token", []byte("hunter2")))

	deleted, err := s.Delete(ctx, "secrets", "api-token")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.Get(ctx, "secrets", "api-token")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	deleted, err = s.Delete(ctx, "secrets", "api-token")
	require.NoError(t, err)
	assert.False(t, deleted)
}

// TestKeys_Sorted verifies that Keys returns the vault's keys in sorted
// order and does not leak keys from other vaults.
func TestKeys_Sorted(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "secrets", "charlie", []byte("3")))
	require.NoError(t, s.Put(ctx, "secrets", "alpha", []byte("1")))
	require.NoError(t, s.Put(ctx, "secrets", "bravo", []byte("2")))
	require.NoError(t, s.Put(ctx, "other", "zulu", []byte("z")))

	keys, err := s.Keys(ctx, "secrets")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, keys)
}

// TestKeys_EmptyVault verifies that listing a vault with no records returns
// an empty slice.
func TestKeys_EmptyVault(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	keys, err := s.Keys(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

// TestCount_PerVault verifies that Count isolates vaults from each other.
func TestCount_PerVault(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "a", "k1", []byte("v")))
	require.NoError(t, s.Put(ctx, "a", "k2", []byte("v")))
	require.NoError(t, s.Put(ctx, "b", "k1", []byte("v")))

	countA, err := s.Count(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, countA)

	countB, err := s.Count(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, countB)

	countC, err := s.Count(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 0, countC)
}

// TestTotalRecords verifies the cross-vault record count.
func TestTotalRecords(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	total, err := s.TotalRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	require.NoError(t, s.Put(ctx, "a", "k1", []byte("v")))
	require.NoError(t, s.Put(ctx, "a", "k2", []byte("v")))
	require.NoError(t, s.Put(ctx, "b", "k1", []byte("v")))

	total, err = s.TotalRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

// TestPut_CapacityEnforced verifies that a new key is rejected once the
// vault is full, while overwrites and other vaults are unaffected.
func TestPut_CapacityEnforced(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 2)

	require.NoError(t, s.Put(ctx, "small", "k1", []byte("v1")))
	require.NoError(t, s.Put(ctx, "small", "k2", []byte("v2")))

	// Step over the cap with a new key.
	err := s.Put(ctx, "small", "k3", []byte("v3"))
	assert.ErrorIs(t, err, ErrVaultFull)

	// Overwriting an existing key must still work at capacity.
	assert.NoError(t, s.Put(ctx, "small", "k1", []byte("updated")))

	// Other vaults have their own budget.
	assert.NoError(t, s.Put(ctx, "other", "k1", []byte("v")))

	// Deleting frees a slot.
	deleted, err := s.Delete(ctx, "small", "k2")
	require.NoError(t, err)
	require.True(t, deleted)
	assert.NoError(t, s.Put(ctx, "small", "k3", []byte("v3")))
}

// TestDropVault verifies that DropVault removes every record of one vault
// and leaves other vaults intact.
func TestDropVault(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, 0)

	require.NoError(t, s.Put(ctx, "doomed", "k1", []byte("v")))
	require.NoError(t, s.Put(ctx, "doomed", "k2", []byte("v")))
	require.NoError(t, s.Put(ctx, "kept", "k1", []byte("v")))

	removed, err := s.DropVault(ctx, "doomed")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := s.Count(ctx, "doomed")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = s.Count(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Dropping an empty vault is a no-op.
	removed, err = s.DropVault(ctx, "doomed")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

// TestPersistence verifies that records survive closing and reopening the
// store.
func TestPersistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir, 0)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "secrets", "api-token", []byte("hunter2")))
	require.NoError(t, s.Close())

	s2, err := Open(dir, 0)
	require.NoError(t, err)
	defer func() { require.NoError(t, s2.Close()) }()

	value, err := s2.Get(ctx, "secrets", "api-token")
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), value)
}
