package extractor

import (
	"path/filepath"
	"strings"
)

// extensionLanguages maps file extensions to language tags.
var extensionLanguages = map[string]string{
	".go":  "go",
	".ts":  "typescript",
	".tsx": "typescript",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".py":  "python",
	".pyw": "python",
}

// DetectLanguage returns the language tag for a file path, or "" when the
// extension is not recognized.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return extensionLanguages[ext]
}

// SupportedExtensions returns the set of extensions handled by detection.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	return exts
}
