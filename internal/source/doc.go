// Package source provides the indexer's only view of the filesystem:
// workspace enumeration, per-file stat/read, and a debounced watch stream.
//
// Discovery walks the workspace root, pruning VCS, dependency, and build
// directories before descending, then applies .gitignore rules, caller glob
// patterns, and the maximum file size. A file excluded at discovery is never
// read and never enters the index.
//
// Watch wraps fsnotify with recursive directory registration and a debouncer
// that collapses editor save bursts into single events:
//
//	watcher, err := src.Watch()
//	for batch := range watcher.Events() {
//	    for _, event := range batch {
//	        indexer.HandleEvent(ctx, event)
//	    }
//	}
//
// Stat and Read distinguish a vanished path (types.ErrNotFound, skipped
// silently) from an unreadable one (types.ErrReadFailed, logged and skipped).
package source
