// Package vault implements the on-disk index of registered vault names.
//
// The index is a small binary file with a magic/version header followed by
// fixed-size NUL-padded name records. Removals leave free slots that later
// adds reuse, so the file never needs compaction. Corrupt headers are
// healed by reinitializing to an empty index, and every mutation is synced
// to disk before it is acknowledged.
//
// Record payloads live elsewhere (see internal/store); this package only
// tracks which vaults exist.
package vault
