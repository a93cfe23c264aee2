package query

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codelens-dev/codelens-mcp/internal/store"
	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

const (
	// DefaultSymbolLimit caps FindSymbol results to protect callers from
	// unbounded payloads.
	DefaultSymbolLimit = 100
	// DefaultFileLimit caps FindFilesByLanguage results.
	DefaultFileLimit = 500

	cacheSize = 1000
)

// Config contains tuning knobs for the query engine.
type Config struct {
	SymbolLimit int // max symbols per search (default: DefaultSymbolLimit)
	FileLimit   int // max files per language listing (default: DefaultFileLimit)
}

// Engine answers symbol and per-language queries over the current index
// snapshot. Queries never trigger extraction and never block on a running
// scan beyond the store's entry-swap critical section.
type Engine struct {
	store       *store.Store
	cache       *lru.Cache[[32]byte, []types.SymbolInfo]
	symbolLimit int
	fileLimit   int
}

// NewEngine creates a query engine over the store.
func NewEngine(st *store.Store, config *Config) *Engine {
	if config == nil {
		config = &Config{}
	}
	symbolLimit := config.SymbolLimit
	if symbolLimit <= 0 {
		symbolLimit = DefaultSymbolLimit
	}
	fileLimit := config.FileLimit
	if fileLimit <= 0 {
		fileLimit = DefaultFileLimit
	}

	cache, err := lru.New[[32]byte, []types.SymbolInfo](cacheSize)
	if err != nil {
		// Only possible with a non-positive size parameter.
		panic(fmt.Sprintf("failed to create query cache: %v", err))
	}

	return &Engine{
		store:       st,
		cache:       cache,
		symbolLimit: symbolLimit,
		fileLimit:   fileLimit,
	}
}

// FindSymbol returns symbols whose name contains pattern, case-insensitively.
// kind narrows the match when non-empty. Results are capped and ordered by
// file URI then line, which is stable for a fixed index snapshot.
func (e *Engine) FindSymbol(pattern string, kind types.SymbolKind) []types.SymbolInfo {
	needle := strings.ToLower(pattern)

	// Cache keyed on the store generation: any mutation moves the
	// generation forward and old entries simply stop being referenced.
	key := cacheKey(needle, string(kind), e.store.Generation())
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}

	snapshot := e.snapshotByURI()

	matches := make([]types.SymbolInfo, 0)
outer:
	for _, file := range snapshot {
		for _, sym := range file.Symbols {
			if kind != "" && sym.Kind != kind {
				continue
			}
			if !strings.Contains(strings.ToLower(sym.Name), needle) {
				continue
			}
			matches = append(matches, sym)
			if len(matches) >= e.symbolLimit {
				break outer
			}
		}
	}

	e.cache.Add(key, matches)
	return matches
}

// FindFilesByLanguage returns indexed files with the given language tag,
// capped and ordered by URI.
func (e *Engine) FindFilesByLanguage(tag string) []*types.IndexedFile {
	snapshot := e.snapshotByURI()

	files := make([]*types.IndexedFile, 0)
	for _, file := range snapshot {
		if file.Language != tag {
			continue
		}
		files = append(files, file)
		if len(files) >= e.fileLimit {
			break
		}
	}
	return files
}

// snapshotByURI returns the store snapshot in deterministic URI order.
func (e *Engine) snapshotByURI() []*types.IndexedFile {
	snapshot := e.store.Snapshot()
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].URI < snapshot[j].URI
	})
	return snapshot
}

func cacheKey(pattern, kind string, generation uint64) [32]byte {
	return sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", pattern, kind, generation)))
}
