// Package extractor provides per-language symbol extraction behind a
// strategy registry.
//
// Each language registers one Extractor implementation keyed on its language
// tag; the indexer selects an extractor through the registry rather than a
// dispatch switch, so adding a language is a single Register call:
//
//	reg := extractor.NewDefaultRegistry()
//	reg.Register(NewRubyExtractor())
//
//	ext, err := reg.For("typescript")
//	result, err := ext.Extract(content)
//
// # Extraction Model
//
// Extraction is heuristic, not a full parse: line-level regular expressions
// find function, class, and import declarations, brace or indentation
// scanning estimates body spans, and a decision-point count produces a
// cyclomatic-complexity-like score. The heuristics trade precision for
// speed and language breadth; a file that defeats them yields fewer symbols,
// never an error that stops a scan.
//
// Extractors are stateless and safe for concurrent use; the indexer calls
// them from multiple worker slots at once.
package extractor
