package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// skipDirs are directory names never worth descending into: build output,
// dependency trees, VCS metadata, caches.
var skipDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"__pycache__":  true,
	".idea":        true,
	".vscode":      true,
	".cache":       true,
	"coverage":     true,
	".venv":        true,
	"venv":         true,
}

// Matcher decides whether a path participates in indexing. It layers default
// directory excludes, .gitignore rules from the workspace root, and
// caller-supplied doublestar include/exclude globs.
type Matcher struct {
	root      string
	includes  []string
	excludes  []string
	gitIgnore gitignore.GitIgnore
}

// NewMatcher creates a matcher rooted at the workspace directory.
func NewMatcher(root string, includes, excludes []string) *Matcher {
	return &Matcher{
		root:      root,
		includes:  includes,
		excludes:  excludes,
		gitIgnore: loadGitIgnore(root),
	}
}

// ShouldIgnoreDir reports whether traversal should skip a directory entirely.
func (m *Matcher) ShouldIgnoreDir(absPath string) bool {
	name := filepath.Base(absPath)
	if skipDirs[name] {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(m.rel(absPath), true); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

// ShouldIgnore reports whether a file is excluded from indexing.
func (m *Matcher) ShouldIgnore(absPath string) bool {
	if strings.HasPrefix(filepath.Base(absPath), ".") {
		return true
	}

	rel := m.rel(absPath)

	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(rel, false); match != nil && match.Ignore() {
			return true
		}
	}

	for _, pattern := range m.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	if len(m.includes) > 0 {
		for _, pattern := range m.includes {
			if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
				return false
			}
		}
		return true
	}

	return false
}

// rel normalizes a path to slash-separated form relative to the root.
func (m *Matcher) rel(absPath string) string {
	rel, err := filepath.Rel(m.root, absPath)
	if err != nil {
		rel = absPath
	}
	return filepath.ToSlash(rel)
}

// loadGitIgnore reads the root .gitignore when present.
func loadGitIgnore(root string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, root, nil)
}
