// Package query provides symbol search and per-language file listing over
// the live index snapshot.
//
// Both operations are read-only: they take a snapshot from the store, scan
// it in deterministic URI order, and cap their result counts. Symbol
// searches are cached in an LRU keyed on the store generation, so a cache
// entry is valid exactly as long as the index it was computed from.
//
//	engine := query.NewEngine(st, nil)
//	syms := engine.FindSymbol("handle", types.KindFunction)
//	files := engine.FindFilesByLanguage("typescript")
package query
