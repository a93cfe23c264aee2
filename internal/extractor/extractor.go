package extractor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// Result is the output of one extraction pass over a file's contents.
type Result struct {
	Functions  []types.FunctionInfo
	Classes    []types.ClassInfo
	Imports    []string
	Exports    []string
	Complexity int
}

// Extractor extracts symbols from source bytes for one language. Extraction
// is a pure function of the content: implementations hold no per-file state
// and must be safe for concurrent use.
type Extractor interface {
	// Language returns the language tag this extractor handles.
	Language() string
	// Extract parses content and returns the symbols found in it.
	Extract(content []byte) (*Result, error)
}

// Registry maps language tags to their extractors. Adding a language means
// registering a new implementation, not editing a dispatch switch.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
	}
}

// NewDefaultRegistry creates a registry with all built-in language extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewGoExtractor())
	r.Register(NewTypeScriptExtractor())
	r.Register(NewJavaScriptExtractor())
	r.Register(NewPythonExtractor())
	return r
}

// Register adds an extractor, replacing any previous one for the same language.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.Language()] = e
}

// For returns the extractor for a language tag.
func (r *Registry) For(language string) (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrNoExtractor, language)
	}
	return e, nil
}

// Languages returns the registered language tags in sorted order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.extractors))
	for lang := range r.extractors {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
