// Package store — store.go implements the SQLite-backed record store.
//
// Records are (vault, key, value) rows with timestamps, keyed by the vault
// name plus the record key. The store enforces a per-vault record capacity:
// a Put that would grow a full vault is rejected with ErrVaultFull rather
// than evicting old records. Vault existence itself is tracked by the index
// (internal/vault); the store never consults it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// DBFileName is the SQLite database file inside the data directory.
	DBFileName = "records.db"

	// DefaultCapacity is the per-vault record cap applied when the caller
	// passes a non-positive capacity.
	DefaultCapacity = 512
)

var (
	// ErrRecordNotFound is returned by Get when the key does not exist
	// in the vault.
	ErrRecordNotFound = errors.New("record not found")

	// ErrVaultFull is returned by Put when inserting a new key into a
	// vault that already holds its capacity of records.
	ErrVaultFull = errors.New("vault is at capacity")

	// ErrEmptyKey is returned by Put when the record key is empty.
	ErrEmptyKey = errors.New("record key must not be empty")
)

// Store is an open handle to the record database. It is safe for use from
// a single CLI invocation; commands open it, run their operation, and close.
type Store struct {
	db       *sql.DB
	path     string
	capacity int
}

// Open creates or opens the record database inside dir. A non-positive
// capacity selects DefaultCapacity.
func Open(dir string, capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	path := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store %s: %w", path, err)
	}

	s := &Store{db: db, path: path, capacity: capacity}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize record store schema: %w", err)
	}

	return s, nil
}

// initSchema creates the records table if it does not exist yet.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		vault      TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (vault, key)
	);
	CREATE INDEX IF NOT EXISTS idx_records_vault ON records(vault);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put writes a record. Overwriting an existing key is always allowed;
// inserting a new key into a vault that already holds capacity records
// fails with ErrVaultFull. The existence check, the capacity check, and
// the write run in one transaction.
func (s *Store) Put(ctx context.Context, vaultName, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE vault = ? AND key = ?`,
		vaultName, key).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check record existence: %w", err)
	}

	if existing == 0 {
		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM records WHERE vault = ?`,
			vaultName).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count vault records: %w", err)
		}
		if count >= s.capacity {
			return fmt.Errorf("vault %q holds %d records: %w", vaultName, count, ErrVaultFull)
		}
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (vault, key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(vault, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		vaultName, key, value, now, now)
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return tx.Commit()
}

// Get returns the value stored under key in the vault, or ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, vaultName, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE vault = ? AND key = ?`,
		vaultName, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	return value, nil
}

// Delete removes a record and reports whether it existed.
func (s *Store) Delete(ctx context.Context, vaultName, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE vault = ? AND key = ?`,
		vaultName, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// Keys returns the vault's record keys in sorted order.
func (s *Store) Keys(ctx context.Context, vaultName string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM records WHERE vault = ? ORDER BY key`,
		vaultName)
	if err != nil {
		return nil, fmt.Errorf("failed to list record keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan record key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record keys: %w", err)
	}
	return keys, nil
}

// Count returns the number of records in the vault.
func (s *Store) Count(ctx context.Context, vaultName string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE vault = ?`,
		vaultName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// TotalRecords returns the number of records across every vault.
func (s *Store) TotalRecords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DropVault deletes every record belonging to the vault and returns how
// many were removed. Dropping a vault with no records is not an error.
func (s *Store) DropVault(ctx context.Context, vaultName string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE vault = ?`, vaultName)
	if err != nil {
		return 0, fmt.Errorf("failed to drop vault records: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read drop result: %w", err)
	}
	return affected, nil
}

// Capacity returns the per-vault record cap this store enforces.
func (s *Store) Capacity() int {
	return s.capacity
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
