package store

import (
	"sync"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// Store is the authoritative in-memory mapping from file URI to its indexed
// record. Writers replace whole entries; readers take consistent snapshots.
// All expensive work (reading, extraction) happens outside the lock, so the
// critical sections here are pointer swaps and map copies only.
type Store struct {
	mu         sync.RWMutex
	files      map[string]*types.IndexedFile
	generation uint64
}

// New creates an empty index store.
func New() *Store {
	return &Store{
		files: make(map[string]*types.IndexedFile),
	}
}

// Put atomically replaces the record for a URI. The record must be fully
// constructed before this call; the store never exposes partial entries.
func (s *Store) Put(record *types.IndexedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[record.URI] = record
	s.generation++
}

// Get returns the current record for a URI, or nil when absent.
func (s *Store) Get(uri string) *types.IndexedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files[uri]
}

// Remove deletes the record for a URI. Removing an absent URI is a no-op.
func (s *Store) Remove(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[uri]; ok {
		delete(s.files, uri)
		s.generation++
	}
}

// Snapshot returns the current set of whole entries. The slice is a fresh
// copy; the records it points to are immutable once stored, so callers may
// read them without further locking. The snapshot may be slightly stale
// relative to in-flight writes.
func (s *Store) Snapshot() []*types.IndexedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*types.IndexedFile, 0, len(s.files))
	for _, record := range s.files {
		snapshot = append(snapshot, record)
	}
	return snapshot
}

// Fingerprint returns the stored fingerprint for a URI and whether a record
// exists. Used by the change detector without copying the whole entry.
func (s *Store) Fingerprint(uri string) (types.Fingerprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.files[uri]
	if !ok {
		return types.Fingerprint{}, false
	}
	return record.Fingerprint, true
}

// Len returns the number of indexed files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Generation returns a counter that increments on every mutation. Query
// caches key on it to invalidate cheaply without watching individual entries.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string]*types.IndexedFile)
	s.generation++
}
