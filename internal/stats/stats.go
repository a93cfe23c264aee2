package stats

import (
	"sort"
	"time"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// TopN is the ranking depth for largest files and most complex functions.
const TopN = 10

// perEntryOverhead is the rough bookkeeping cost per indexed file used for
// the memory estimate, beyond symbol and string payloads.
const perEntryOverhead = 512

// Compute derives summary statistics from one index snapshot. It is a pure
// function of the snapshot: no locks, no side effects, recomputed on demand.
func Compute(files []*types.IndexedFile, scanDuration time.Duration) *types.CodebaseStats {
	result := &types.CodebaseStats{
		TotalFiles:           len(files),
		IndexedFiles:         len(files),
		LanguageDistribution: make(map[string]int),
		LastScanDuration:     scanDuration,
	}

	complexitySum := 0
	complexityCount := 0

	for _, file := range files {
		result.LanguageDistribution[file.Language]++

		if file.Complexity > 0 {
			complexitySum += file.Complexity
			complexityCount++
		}

		result.EstimatedMemoryBytes += estimateSize(file)
	}

	if complexityCount > 0 {
		result.AverageComplexity = float64(complexitySum) / float64(complexityCount)
	}

	result.LargestFiles = largestFiles(files, TopN)
	result.MostComplexFunctions = mostComplexFunctions(files, TopN)

	return result
}

// largestFiles ranks files by size, ties broken by input order.
func largestFiles(files []*types.IndexedFile, n int) []types.FileSizeEntry {
	entries := make([]types.FileSizeEntry, 0, len(files))
	for _, file := range files {
		entries = append(entries, types.FileSizeEntry{URI: file.URI, Size: file.Size})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size > entries[j].Size
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// mostComplexFunctions ranks extracted functions by complexity, ties broken
// by input order.
func mostComplexFunctions(files []*types.IndexedFile, n int) []types.FunctionComplexityEntry {
	var entries []types.FunctionComplexityEntry
	for _, file := range files {
		for _, fn := range file.Functions {
			entries = append(entries, types.FunctionComplexityEntry{
				Name:       fn.Name,
				FileURI:    file.URI,
				Complexity: fn.Complexity,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Complexity > entries[j].Complexity
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// estimateSize approximates the in-memory footprint of one entry. Rough by
// design: it exists for operational monitoring, not accounting.
func estimateSize(file *types.IndexedFile) int64 {
	size := int64(perEntryOverhead)
	size += int64(len(file.URI))
	for _, fn := range file.Functions {
		size += int64(len(fn.Name) + len(fn.Signature) + 64)
		for _, p := range fn.Parameters {
			size += int64(len(p))
		}
	}
	for _, cls := range file.Classes {
		size += int64(len(cls.Name) + 64)
		for _, m := range cls.Methods {
			size += int64(len(m))
		}
		for _, p := range cls.Properties {
			size += int64(len(p))
		}
	}
	for _, sym := range file.Symbols {
		size += int64(len(sym.Name) + len(sym.Signature) + 48)
	}
	for _, s := range file.Imports {
		size += int64(len(s))
	}
	for _, s := range file.Exports {
		size += int64(len(s))
	}
	for _, s := range file.Dependencies {
		size += int64(len(s))
	}
	return size
}
