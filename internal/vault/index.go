// Package vault — index.go implements the on-disk vault index.
//
// The index is a single binary file (index.vuoto) listing every registered
// vault name. The layout is deliberately simple:
//
//	offset 0:  8-byte magic "VUOTOIDX"
//	offset 8:  format version, uint32 little-endian
//	offset 12: fixed-size name records, 16 bytes each, NUL-padded
//
// An all-zero record is a free slot left behind by a removal; the next add
// reuses the first free slot before appending at the end. A partial record
// at the end of the file (from a truncated write) is ignored on load. A file
// with a bad magic or version is reinitialized to an empty index rather than
// rejected.
package vault

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// IndexFileName is the index file created inside the data directory.
	IndexFileName = "index.vuoto"

	// RecordSize is the fixed on-disk size of one name record. Names are
	// NUL-padded to this length, which caps them at RecordSize bytes.
	RecordSize = 16

	// indexMagic identifies a vuoto index file.
	indexMagic = "VUOTOIDX"

	// indexVersion is the current format version, stored little-endian
	// directly after the magic.
	indexVersion uint32 = 1

	// headerSize is the magic plus the 4-byte version.
	headerSize = len(indexMagic) + 4
)

// Name validation errors returned by Add.
var (
	// ErrEmptyName is returned when a vault name is the empty string.
	ErrEmptyName = errors.New("vault name must not be empty")

	// ErrNameTooLong is returned when a vault name does not fit in a record.
	// The limit applies to the UTF-8 byte length, not the rune count.
	ErrNameTooLong = fmt.Errorf("vault name byte length must be <= %d bytes", RecordSize)

	// ErrNameHasNUL is returned when a vault name contains a NUL byte,
	// which would corrupt the NUL-padded record encoding.
	ErrNameHasNUL = errors.New("vault name must not contain NUL bytes")
)

// Index is the open handle to a vault index file. It keeps the registered
// names in memory and mirrors every mutation to disk with an fsync before
// returning, so a crash never loses an acknowledged add or remove.
//
// Index is not safe for concurrent use; the CLI opens it once per command.
type Index struct {
	names []string
	f     *os.File
	path  string
}

// Open opens the vault index inside dir, creating an empty index file if
// none exists. A file with an unknown magic or version is reinitialized
// to an empty index.
func Open(dir string) (*Index, error) {
	path := filepath.Join(dir, IndexFileName)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", path, err)
	}

	ok, err := checkHeader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read index header: %w", err)
	}
	if !ok {
		if err := initFile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to initialize index %s: %w", path, err)
		}
	}

	names, err := loadRecords(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to load index records: %w", err)
	}

	return &Index{names: names, f: f, path: path}, nil
}

// checkHeader reports whether the file starts with a valid magic and a
// supported version. A short file (including an empty one) is simply
// invalid, not an error — the caller reinitializes it.
func checkHeader(f *os.File) (bool, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}

	if string(header[:len(indexMagic)]) != indexMagic {
		return false, nil
	}

	version := binary.LittleEndian.Uint32(header[len(indexMagic):])
	return version == indexVersion, nil
}

// initFile truncates the file and writes a fresh header, leaving an empty
// record region behind it.
func initFile(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	header := make([]byte, headerSize)
	copy(header, indexMagic)
	binary.LittleEndian.PutUint32(header[len(indexMagic):], indexVersion)

	if _, err := f.Write(header); err != nil {
		return err
	}
	return f.Sync()
}

// loadRecords reads every full record after the header. Free slots are
// skipped, and a partial record at the end of the file is ignored.
func loadRecords(f *os.File) ([]string, error) {
	if _, err := f.Seek(int64(headerSize), io.SeekStart); err != nil {
		return nil, err
	}

	var names []string
	buf := make([]byte, RecordSize)
	for {
		_, err := io.ReadFull(f, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if isFreeSlot(buf) {
			continue
		}

		name, err := recordName(buf)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

// offsetForSlot computes the on-disk offset of a record slot.
func offsetForSlot(slot int64) int64 {
	return int64(headerSize) + slot*RecordSize
}

// isFreeSlot reports whether a record is all zeros.
func isFreeSlot(record []byte) bool {
	for _, b := range record {
		if b != 0 {
			return false
		}
	}
	return true
}

// recordName decodes the NUL-padded name from a record.
func recordName(record []byte) (string, error) {
	end := bytes.IndexByte(record, 0)
	if end < 0 {
		end = len(record)
	}
	name := record[:end]
	if !utf8.Valid(name) {
		return "", errors.New("index record contains invalid UTF-8")
	}
	return string(name), nil
}

// ValidateName checks that a vault name can be stored in a record:
// non-empty, at most RecordSize bytes of UTF-8, and free of NUL bytes.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > RecordSize {
		return ErrNameTooLong
	}
	if strings.IndexByte(name, 0) >= 0 {
		return ErrNameHasNUL
	}
	return nil
}

// Add registers a vault name. Adding a name that is already registered is
// a silent no-op. The record is written into the first free slot if one
// exists, otherwise appended at the end of the file, and synced before
// Add returns.
func (ix *Index) Add(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if ix.Has(name) {
		return nil
	}

	record := make([]byte, RecordSize)
	copy(record, name)

	slot, reuse, err := ix.findFreeSlot()
	if err != nil {
		return fmt.Errorf("failed to scan index for free slot: %w", err)
	}

	if reuse {
		if _, err := ix.f.Seek(offsetForSlot(slot), io.SeekStart); err != nil {
			return err
		}
	} else {
		if _, err := ix.f.Seek(0, io.SeekEnd); err != nil {
			return err
		}
	}

	if _, err := ix.f.Write(record); err != nil {
		return fmt.Errorf("failed to write index record: %w", err)
	}
	if err := ix.f.Sync(); err != nil {
		return err
	}

	ix.names = append(ix.names, name)
	return nil
}

// Remove unregisters a vault name by zeroing its record, leaving a free
// slot for a later Add. It reports whether the name was present. When the
// name exists in memory but its record is missing on disk, the in-memory
// list is authoritative and the removal is still reported as successful.
func (ix *Index) Remove(name string) (bool, error) {
	pos := ix.indexOf(name)
	if pos < 0 {
		return false, nil
	}

	slot, onDisk, err := ix.findRecordSlot(name)
	if err != nil {
		return false, fmt.Errorf("failed to scan index for %q: %w", name, err)
	}

	ix.names = append(ix.names[:pos], ix.names[pos+1:]...)

	if !onDisk {
		return true, nil
	}

	if _, err := ix.f.Seek(offsetForSlot(slot), io.SeekStart); err != nil {
		return false, err
	}
	if _, err := ix.f.Write(make([]byte, RecordSize)); err != nil {
		return false, fmt.Errorf("failed to clear index record: %w", err)
	}
	if err := ix.f.Sync(); err != nil {
		return false, err
	}

	return true, nil
}

// findFreeSlot scans the record region for the first all-zero record.
// The second return value is false when every slot is occupied, in which
// case the caller appends at the end of the file.
func (ix *Index) findFreeSlot() (int64, bool, error) {
	if _, err := ix.f.Seek(int64(headerSize), io.SeekStart); err != nil {
		return 0, false, err
	}

	buf := make([]byte, RecordSize)
	var slot int64
	for {
		_, err := io.ReadFull(ix.f, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}

		if isFreeSlot(buf) {
			return slot, true, nil
		}
		slot++
	}
}

// findRecordSlot scans the record region for the record holding name.
// Free slots still advance the slot counter — slots are physical positions.
func (ix *Index) findRecordSlot(name string) (int64, bool, error) {
	if _, err := ix.f.Seek(int64(headerSize), io.SeekStart); err != nil {
		return 0, false, err
	}

	buf := make([]byte, RecordSize)
	var slot int64
	for {
		_, err := io.ReadFull(ix.f, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}

		if !isFreeSlot(buf) {
			recName, err := recordName(buf)
			if err != nil {
				return 0, false, err
			}
			if recName == name {
				return slot, true, nil
			}
		}
		slot++
	}
}

// Names returns the registered vault names: slot order for names loaded
// from disk, then insertion order for names added in this session. The
// returned slice is a copy.
func (ix *Index) Names() []string {
	out := make([]string, len(ix.names))
	copy(out, ix.names)
	return out
}

// Has reports whether a vault name is registered.
func (ix *Index) Has(name string) bool {
	return ix.indexOf(name) >= 0
}

// Len returns the number of registered vaults.
func (ix *Index) Len() int {
	return len(ix.names)
}

// Path returns the index file path.
func (ix *Index) Path() string {
	return ix.path
}

// Close closes the underlying index file.
func (ix *Index) Close() error {
	return ix.f.Close()
}

func (ix *Index) indexOf(name string) int {
	for i, n := range ix.names {
		if n == name {
			return i
		}
	}
	return -1
}
