// Package store holds the authoritative URI to IndexedFile mapping.
//
// The store is the one shared mutable structure in the indexing pipeline.
// Its contract is whole-entry atomicity: Put swaps a fully-built record in
// one critical section, so a concurrent reader sees either the old record or
// the new one, never a mix. Records are treated as immutable after Put;
// re-extraction builds a fresh record rather than mutating in place.
//
// Snapshot gives queries and statistics a consistent set of entries without
// blocking writers beyond a map copy. Staleness relative to in-flight
// writes is accepted by design of the callers.
package store
