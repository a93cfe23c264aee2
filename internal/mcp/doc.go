// Package mcp exposes the codebase indexer over the Model Context Protocol.
//
// The server binds one workspace: construction wires the file source,
// extractor registry, store, indexer, and query engine together, optionally
// starts the filesystem watch stream, and registers four tools:
//
//   - index_workspace: run a scan (incremental by default, full on request)
//   - find_symbol: substring symbol search over the live index
//   - list_files: per-language file listing
//   - codebase_stats: derived statistics snapshot
//
// Tool handlers only translate parameters and format results; every
// behavior lives in the internal packages, which never depend on this one.
package mcp
