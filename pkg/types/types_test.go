package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSymbolInfoValidate(t *testing.T) {
	valid := SymbolInfo{Name: "login", Kind: KindFunction, FileURI: "a.ts", Line: 3}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SymbolInfo)
	}{
		{"missing name", func(s *SymbolInfo) { s.Name = "" }},
		{"invalid kind", func(s *SymbolInfo) { s.Kind = "enum" }},
		{"missing file", func(s *SymbolInfo) { s.FileURI = "" }},
		{"zero line", func(s *SymbolInfo) { s.Line = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym := valid
			tt.mutate(&sym)
			assert.Error(t, sym.Validate())
		})
	}
}

func TestIndexedFileValidate(t *testing.T) {
	valid := IndexedFile{
		URI:          "a.ts",
		Language:     "typescript",
		LastModified: time.Now(),
		Fingerprint:  Fingerprint{1},
	}
	assert.NoError(t, valid.Validate())

	missingFingerprint := valid
	missingFingerprint.Fingerprint = Fingerprint{}
	assert.Error(t, missingFingerprint.Validate())

	missingLanguage := valid
	missingLanguage.Language = ""
	assert.Error(t, missingLanguage.Validate())
}

func TestFingerprintZero(t *testing.T) {
	assert.True(t, Fingerprint{}.Zero())
	assert.False(t, Fingerprint{1}.Zero())
}

func TestFileEventOpString(t *testing.T) {
	assert.Equal(t, "created", FileCreated.String())
	assert.Equal(t, "changed", FileChanged.String())
	assert.Equal(t, "deleted", FileDeleted.String())
	assert.Equal(t, "unknown", FileEventOp(99).String())
}
