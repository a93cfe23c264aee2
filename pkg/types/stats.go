package types

import "time"

// FileSizeEntry is one row in the largest-files ranking.
type FileSizeEntry struct {
	URI  string
	Size int64
}

// FunctionComplexityEntry is one row in the most-complex-functions ranking.
type FunctionComplexityEntry struct {
	Name       string
	FileURI    string
	Complexity int
}

// CodebaseStats is a derived snapshot of the index at one point in time.
// It has no independent lifecycle: every value is recomputed on demand from
// the store's current contents.
type CodebaseStats struct {
	TotalFiles   int
	IndexedFiles int

	// LanguageDistribution maps language tag to file count.
	LanguageDistribution map[string]int

	// AverageComplexity is the mean complexity across files with
	// complexity > 0, or 0 when no such files exist.
	AverageComplexity float64

	LargestFiles         []FileSizeEntry
	MostComplexFunctions []FunctionComplexityEntry

	LastScanDuration time.Duration

	// EstimatedMemoryBytes is a rough operational estimate, not a guarantee.
	EstimatedMemoryBytes int64

	// Run accounting. FailedFiles counts per-file errors that were recovered
	// and skipped; Cancelled marks a run ended early by its context.
	SkippedFiles int
	FailedFiles  int
	Cancelled    bool
}
