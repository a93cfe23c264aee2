package indexer

import (
	"strings"

	"github.com/codelens-dev/codelens-mcp/internal/extractor"
	"github.com/codelens-dev/codelens-mcp/internal/source"
	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// buildRecord assembles a complete IndexedFile from one extraction. The
// record is fully constructed before it is handed to the store, so readers
// never see it half-built. List caps keep pathological files from ballooning
// memory.
func buildRecord(path, language string, meta source.FileMeta, result *extractor.Result, fingerprint types.Fingerprint) *types.IndexedFile {
	functions := result.Functions
	if len(functions) > types.MaxFunctionsPerFile {
		functions = functions[:types.MaxFunctionsPerFile]
	}
	classes := result.Classes
	if len(classes) > types.MaxClassesPerFile {
		classes = classes[:types.MaxClassesPerFile]
	}

	imports := capList(result.Imports, types.MaxImportsPerFile)
	exports := capList(result.Exports, types.MaxExportsPerFile)

	record := &types.IndexedFile{
		URI:          path,
		LastModified: meta.ModTime,
		Size:         meta.Size,
		Language:     language,
		Functions:    functions,
		Classes:      classes,
		Imports:      imports,
		Exports:      exports,
		Dependencies: dependencies(imports),
		Complexity:   result.Complexity,
		Fingerprint:  fingerprint,
	}
	record.Symbols = flattenSymbols(record)
	return record
}

// flattenSymbols builds the denormalized searchable view from the extracted
// function and class bodies.
func flattenSymbols(record *types.IndexedFile) []types.SymbolInfo {
	symbols := make([]types.SymbolInfo, 0, len(record.Functions)+len(record.Classes))
	seen := make(map[string]bool)

	for _, fn := range record.Functions {
		symbols = append(symbols, types.SymbolInfo{
			Name:      fn.Name,
			Kind:      types.KindFunction,
			FileURI:   record.URI,
			Line:      fn.StartLine,
			Scope:     types.ScopeGlobal,
			Signature: fn.Signature,
		})
		seen[fn.Name] = true
	}

	for _, cls := range record.Classes {
		symbols = append(symbols, types.SymbolInfo{
			Name:    cls.Name,
			Kind:    types.KindClass,
			FileURI: record.URI,
			Line:    cls.StartLine,
			Scope:   types.ScopeGlobal,
		})
		// Methods recorded only on the class (no body span of their own)
		// still need to be searchable.
		for _, method := range cls.Methods {
			if seen[method] {
				continue
			}
			symbols = append(symbols, types.SymbolInfo{
				Name:    method,
				Kind:    types.KindFunction,
				FileURI: record.URI,
				Line:    cls.StartLine,
				Scope:   types.ScopeClass,
			})
			seen[method] = true
		}
	}

	return symbols
}

// dependencies filters the import list down to external packages: anything
// that is not a relative path.
func dependencies(imports []string) []string {
	var deps []string
	for _, imp := range imports {
		if strings.HasPrefix(imp, ".") || strings.HasPrefix(imp, "/") {
			continue
		}
		deps = append(deps, imp)
	}
	return deps
}

func capList(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}
