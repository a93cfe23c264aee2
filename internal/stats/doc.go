// Package stats computes derived summary statistics over an index snapshot:
// language distribution, average complexity, top-N largest files and most
// complex functions, and a rough memory footprint estimate.
//
// CodebaseStats has no lifecycle of its own; Compute is a pure function of
// the snapshot passed in, so callers may invoke it at any time, including
// mid-scan, and get a consistent (possibly slightly stale) view.
package stats
