package types

import "errors"

// Domain errors shared across the indexing pipeline.
var (
	// ErrNotFound indicates a path vanished between discovery and stat, or a
	// store lookup missed. Per-file: callers skip silently.
	ErrNotFound = errors.New("file not found")

	// ErrReadFailed indicates the file could not be read (permissions,
	// encoding). Per-file: logged and skipped, never fatal to a run.
	ErrReadFailed = errors.New("file read failed")

	// ErrExtractionFailed indicates the symbol extractor rejected the file.
	// Per-file: logged and skipped.
	ErrExtractionFailed = errors.New("symbol extraction failed")

	// ErrNoExtractor indicates no extractor is registered for the language.
	ErrNoExtractor = errors.New("no extractor registered for language")

	// ErrDiscoveryFailed indicates workspace enumeration itself failed.
	// This is the only error fatal to an indexing run.
	ErrDiscoveryFailed = errors.New("workspace discovery failed")
)
