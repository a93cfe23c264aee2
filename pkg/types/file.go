package types

import (
	"errors"
	"time"
)

// List caps applied when an IndexedFile is assembled. Pathological files can
// produce thousands of matches; these bounds keep per-entry memory predictable.
const (
	MaxImportsPerFile   = 50
	MaxExportsPerFile   = 50
	MaxFunctionsPerFile = 100
	MaxClassesPerFile   = 50
)

// IndexedFile is one fully-extracted catalog entry for a tracked source file.
// An IndexedFile visible to readers always reflects a single completed
// extraction: the scheduler builds the whole record off to the side and swaps
// it into the store in one step, never mutating fields in place.
type IndexedFile struct {
	// URI uniquely identifies the file and is the store key.
	URI string

	// Metadata snapshot taken from the bytes that were actually extracted.
	LastModified time.Time
	Size         int64
	Language     string

	// Extracted symbol bodies.
	Functions []FunctionInfo
	Classes   []ClassInfo

	// Import/export surface, capped at MaxImportsPerFile / MaxExportsPerFile.
	Imports      []string
	Exports      []string
	Dependencies []string

	// Complexity is the extractor's cyclomatic-complexity-like score for the
	// whole file.
	Complexity int

	// Symbols is the flattened searchable view derived from Functions and
	// Classes. It lives and dies with this record.
	Symbols []SymbolInfo

	// Fingerprint is the content hash of the extracted bytes, used for
	// incremental change detection.
	Fingerprint Fingerprint
}

// Fingerprint is a content hash strong enough that two distinct file contents
// collide with negligible probability.
type Fingerprint [32]byte

// Zero reports whether the fingerprint is unset.
func (f Fingerprint) Zero() bool {
	return f == Fingerprint{}
}

// Validate checks structural integrity of the record.
func (f *IndexedFile) Validate() error {
	if f.URI == "" {
		return errors.New("file URI is required")
	}
	if f.Size < 0 {
		return errors.New("size must be non-negative")
	}
	if f.Language == "" {
		return errors.New("language tag is required")
	}
	if f.Fingerprint.Zero() {
		return errors.New("fingerprint is required")
	}
	return nil
}

// FileEventOp is the kind of filesystem change reported by the watch stream.
type FileEventOp int

const (
	FileCreated FileEventOp = iota
	FileChanged
	FileDeleted
)

// String returns the event op name for logging.
func (op FileEventOp) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileChanged:
		return "changed"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileEvent is one debounced filesystem change delivered to the indexer's
// incremental update path.
type FileEvent struct {
	Op   FileEventOp
	Path string
}
