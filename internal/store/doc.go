// Package store persists vault records in a SQLite database.
//
// One database file (records.db) lives inside the application data
// directory and holds the records of every vault, keyed by vault name and
// record key. The store enforces a fixed per-vault capacity at write time
// and exposes context-aware CRUD operations plus bulk deletion for vault
// removal.
package store
