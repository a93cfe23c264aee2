package types

import "errors"

// SymbolKind represents the kind of language construct a symbol describes
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindClass     SymbolKind = "class"
	KindVariable  SymbolKind = "variable"
	KindInterface SymbolKind = "interface"
	KindType      SymbolKind = "type"
	KindConstant  SymbolKind = "constant"
)

// SymbolScope represents where a symbol is visible
type SymbolScope string

const (
	ScopeGlobal SymbolScope = "global"
	ScopeClass  SymbolScope = "class"
	ScopeLocal  SymbolScope = "local"
)

// SymbolInfo is the flattened, searchable view of a symbol. Each SymbolInfo
// is owned by its parent IndexedFile and is replaced wholesale whenever the
// file is re-extracted.
type SymbolInfo struct {
	Name      string
	Kind      SymbolKind
	FileURI   string
	Line      int
	Scope     SymbolScope
	Signature string
}

// FunctionInfo describes an extracted function or method body.
type FunctionInfo struct {
	Name       string
	Signature  string
	StartLine  int
	EndLine    int
	Parameters []string
	ReturnType string
	Complexity int
	IsAsync    bool
	IsExported bool
}

// ClassInfo describes an extracted class, struct, or equivalent aggregate.
type ClassInfo struct {
	Name       string
	StartLine  int
	EndLine    int
	Methods    []string
	Properties []string
	Extends    string
	IsExported bool
}

// ValidateKind checks if the symbol kind is valid
func (s *SymbolInfo) ValidateKind() error {
	switch s.Kind {
	case KindFunction, KindClass, KindVariable, KindInterface, KindType, KindConstant:
		return nil
	default:
		return errors.New("invalid symbol kind")
	}
}

// Validate performs basic validation of the symbol
func (s *SymbolInfo) Validate() error {
	if s.Name == "" {
		return errors.New("symbol name is required")
	}
	if err := s.ValidateKind(); err != nil {
		return err
	}
	if s.FileURI == "" {
		return errors.New("file URI is required")
	}
	if s.Line <= 0 {
		return errors.New("invalid position: line numbers must be positive")
	}
	return nil
}
