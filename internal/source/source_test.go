package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newSource(t *testing.T, opts Options) *Source {
	t.Helper()
	src, err := New(opts)
	require.NoError(t, err)
	return src
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestDiscoverSkipsDefaultDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.ts", "export function main() {}")
	writeFile(t, dir, "node_modules/pkg/index.ts", "export function hidden() {}")
	writeFile(t, dir, ".git/hooks/pre-commit.py", "def hook(): pass")
	writeFile(t, dir, "dist/bundle.js", "function bundled() {}")
	writeFile(t, dir, "src/app.ts", "export function app() {}")

	src := newSource(t, Options{Root: dir})
	files, err := src.Discover(0)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"main.ts", "src/app.ts"}, relPaths(t, dir, files))
}

func TestDiscoverExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", "x")
	writeFile(t, dir, "b.py", "x")
	writeFile(t, dir, "c.md", "x")

	src := newSource(t, Options{Root: dir, Extensions: []string{".ts"}})
	files, err := src.Discover(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.ts"}, relPaths(t, dir, files))
}

func TestDiscoverSizeFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.ts", "tiny")
	writeFile(t, dir, "big.ts", strings.Repeat("x", 2048))

	src := newSource(t, Options{Root: dir, MaxFileSize: 1024})
	files, err := src.Discover(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"small.ts"}, relPaths(t, dir, files))
}

func TestDiscoverMaxResults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ts", "b.ts", "c.ts", "d.ts"} {
		writeFile(t, dir, name, "x")
	}

	src := newSource(t, Options{Root: dir})
	files, err := src.Discover(2)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.ts", "x")
	writeFile(t, dir, "app.spec.ts", "x")
	writeFile(t, dir, "nested/deep/util.spec.ts", "x")

	src := newSource(t, Options{Root: dir, ExcludePatterns: []string{"**/*.spec.ts"}})
	files, err := src.Discover(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"app.ts"}, relPaths(t, dir, files))
}

func TestDiscoverIncludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.ts", "x")
	writeFile(t, dir, "scripts/tool.ts", "x")

	src := newSource(t, Options{Root: dir, IncludePatterns: []string{"src/**"}})
	files, err := src.Discover(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.ts"}, relPaths(t, dir, files))
}

func TestDiscoverHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated.ts\n")
	writeFile(t, dir, "kept.ts", "x")
	writeFile(t, dir, "generated.ts", "x")

	src := newSource(t, Options{Root: dir})
	files, err := src.Discover(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"kept.ts"}, relPaths(t, dir, files))
}

func TestStatAndRead(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "export function f() {}")

	src := newSource(t, Options{Root: dir})

	meta, err := src.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("export function f() {}")), meta.Size)
	assert.False(t, meta.ModTime.IsZero())

	content, err := src.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "export function f() {}", string(content))
}

func TestStatVanishedPath(t *testing.T) {
	dir := t.TempDir()
	src := newSource(t, Options{Root: dir})

	_, err := src.Stat(filepath.Join(dir, "gone.ts"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = src.Read(filepath.Join(dir, "gone.ts"))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, types.ErrDiscoveryFailed)
}
