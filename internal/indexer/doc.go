// Package indexer coordinates the end-to-end indexing pipeline for a
// workspace: discovery, change detection, bounded-concurrency extraction,
// and atomic store replacement.
//
// # Basic Usage
//
//	idx := indexer.New(src, registry, st, &indexer.Config{Workers: 10})
//
//	result, err := idx.IndexWorkspace(ctx, indexer.Options{
//	    Full: false,
//	    Progress: func(done, total int) { log.Printf("%d/%d", done, total) },
//	})
//
// # Pipeline
//
// The scheduler partitions discovered paths into chunks (default 100) and
// drives each chunk through a fixed pool of worker slots (default 10).
// Each slot runs one path at a time:
//
//  1. Stat: a vanished path is skipped silently
//  2. Read: read errors are logged, counted, and skipped
//  3. Fingerprint: SHA-256 over the bytes actually read
//  4. Skip when unchanged (incremental runs only)
//  5. Extract via the language registry
//  6. Replace the store entry atomically
//
// # Incremental Indexing
//
// A path is skipped when an entry already exists and its stored fingerprint
// equals the fingerprint of the freshly-read bytes. A full run re-extracts
// everything, recovering from extractor upgrades or corrupted entries.
// Because the record is content-addressed by the bytes read, racing updates
// for one path converge on whichever extraction completed last.
//
// # Cancellation
//
// Cancellation is cooperative: the signal is checked before each path is
// handed to a slot and between chunks, bounding cancellation latency to
// roughly one chunk. A cancelled run returns partial statistics with
// Cancelled set; the index is left as the union of completed extractions.
//
// # Watch Events
//
// HandleEvent applies single-file updates from the watch stream using the
// same per-file sequence, without the chunking machinery. Deletes remove
// the entry outright.
package indexer
