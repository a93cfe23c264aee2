// Package types provides shared type definitions for the CodeLens MCP server.
//
// This package defines the domain types used across every component of the
// indexing pipeline: indexed file records, symbol views, derived statistics,
// watch events, and the error taxonomy.
//
// # Core Types
//
// IndexedFile is one catalog entry per tracked source file:
//
//	file := &types.IndexedFile{
//	    URI:         "file:///src/auth/login.ts",
//	    Language:    "typescript",
//	    Functions:   functions,
//	    Fingerprint: fingerprint,
//	}
//
// SymbolInfo is the flattened view used by symbol search:
//
//	sym := types.SymbolInfo{
//	    Name:    "validateToken",
//	    Kind:    types.KindFunction,
//	    FileURI: file.URI,
//	    Line:    42,
//	}
//
// # Record Lifecycle
//
// An IndexedFile is created on first successful extraction, replaced
// wholesale on every re-extraction, and deleted on a delete event or an
// index clear. Partially-constructed records are never visible: the store
// swaps whole entries.
//
// # Error Taxonomy
//
// Per-file failures (ErrNotFound, ErrReadFailed, ErrExtractionFailed) are
// always recovered locally: log, count, continue. Only ErrDiscoveryFailed
// aborts a run, because without a file set there is nothing to index.
package types
