package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens-dev/codelens-mcp/internal/extractor"
	"github.com/codelens-dev/codelens-mcp/internal/source"
	"github.com/codelens-dev/codelens-mcp/internal/store"
	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// countingExtractor wraps a real extractor and tracks call counts plus the
// maximum number of concurrent extractions observed.
type countingExtractor struct {
	inner    extractor.Extractor
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	delay    time.Duration
}

func (c *countingExtractor) Language() string { return c.inner.Language() }

func (c *countingExtractor) Extract(content []byte) (*extractor.Result, error) {
	c.calls.Add(1)
	current := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	for {
		peak := c.maxSeen.Load()
		if current <= peak || c.maxSeen.CompareAndSwap(peak, current) {
			break
		}
	}

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.inner.Extract(content)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestIndexer(t *testing.T, root string, registry *extractor.Registry, cfg *Config) *Indexer {
	t.Helper()
	src, err := source.New(source.Options{
		Root:       root,
		Extensions: extractor.SupportedExtensions(),
	})
	require.NoError(t, err)
	return New(src, registry, store.New(), cfg)
}

const tsSample = `import { helper } from './helper';

export function login(user: string): boolean {
    if (user === '') {
        return false;
    }
    return true;
}

function logout(): void {
    console.log('bye');
}
`

const pySample = `import os

class Session:
    def open(self):
        return True

    def close(self):
        return False
`

func TestIndexWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", tsSample)
	writeFile(t, dir, "b.py", pySample)
	writeFile(t, dir, "notes.txt", "not source code")

	idx := newTestIndexer(t, dir, extractor.NewDefaultRegistry(), nil)

	result, err := idx.IndexWorkspace(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalFiles)
	assert.False(t, result.Cancelled)
	assert.Equal(t, map[string]int{"typescript": 1, "python": 1}, result.LanguageDistribution)

	record := idx.Store().Get(filepath.Join(dir, "a.ts"))
	require.NotNil(t, record)
	assert.Equal(t, "typescript", record.Language)
	assert.Len(t, record.Functions, 2)
	assert.Contains(t, record.Imports, "./helper")
	assert.Contains(t, record.Exports, "login")
	assert.False(t, record.Fingerprint.Zero())

	// The Python class and both of its methods are searchable symbols.
	py := idx.Store().Get(filepath.Join(dir, "b.py"))
	require.NotNil(t, py)
	names := make([]string, 0, len(py.Symbols))
	for _, sym := range py.Symbols {
		names = append(names, sym.Name)
	}
	assert.Contains(t, names, "Session")
	assert.Contains(t, names, "open")
	assert.Contains(t, names, "close")
}

func TestIndexWorkspaceSizeExclusion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.ts", tsSample)
	writeFile(t, dir, "big.ts", "// "+strings.Repeat("x", 600*1024))

	src, err := source.New(source.Options{
		Root:        dir,
		Extensions:  extractor.SupportedExtensions(),
		MaxFileSize: 500 * 1024,
	})
	require.NoError(t, err)
	idx := New(src, extractor.NewDefaultRegistry(), store.New(), nil)

	for range 3 {
		result, err := idx.IndexWorkspace(context.Background(), Options{Full: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalFiles)
	}
	assert.Nil(t, idx.Store().Get(filepath.Join(dir, "big.ts")))
}

func TestIncrementalSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	aPath := writeFile(t, dir, "a.ts", tsSample)
	writeFile(t, dir, "b.py", pySample)

	tsCounter := &countingExtractor{inner: extractor.NewTypeScriptExtractor()}
	pyCounter := &countingExtractor{inner: extractor.NewPythonExtractor()}
	registry := extractor.NewRegistry()
	registry.Register(tsCounter)
	registry.Register(pyCounter)

	idx := newTestIndexer(t, dir, registry, nil)

	_, err := idx.IndexWorkspace(context.Background(), Options{})
	require.NoError(t, err)
	require.Equal(t, int32(1), tsCounter.calls.Load())
	require.Equal(t, int32(1), pyCounter.calls.Load())

	before := idx.Store().Get(filepath.Join(dir, "b.py"))

	// Unchanged bytes: no extractor call the second time.
	result, err := idx.IndexWorkspace(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), tsCounter.calls.Load())
	assert.Equal(t, int32(1), pyCounter.calls.Load())
	assert.Equal(t, 2, result.SkippedFiles)

	// Edit one file: only that file is re-extracted, the other record is
	// the same object as before.
	require.NoError(t, os.WriteFile(aPath, []byte(tsSample+"\nexport function extra() {}\n"), 0o644))
	_, err = idx.IndexWorkspace(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), tsCounter.calls.Load())
	assert.Equal(t, int32(1), pyCounter.calls.Load())
	assert.Same(t, before, idx.Store().Get(filepath.Join(dir, "b.py")))
}

func TestFullRunReextractsEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", tsSample)

	counter := &countingExtractor{inner: extractor.NewTypeScriptExtractor()}
	registry := extractor.NewRegistry()
	registry.Register(counter)

	idx := newTestIndexer(t, dir, registry, nil)

	_, err := idx.IndexWorkspace(context.Background(), Options{})
	require.NoError(t, err)
	_, err = idx.IndexWorkspace(context.Background(), Options{Full: true})
	require.NoError(t, err)

	assert.Equal(t, int32(2), counter.calls.Load())
}

func TestConcurrencyBound(t *testing.T) {
	dir := t.TempDir()
	for i := range 40 {
		writeFile(t, dir, filepath.Join("src", "file"+string(rune('a'+i%26))+strings.Repeat("x", i/26+1)+".ts"), tsSample)
	}

	const workers = 4
	counter := &countingExtractor{inner: extractor.NewTypeScriptExtractor(), delay: 5 * time.Millisecond}
	registry := extractor.NewRegistry()
	registry.Register(counter)

	idx := newTestIndexer(t, dir, registry, &Config{Workers: workers, ChunkSize: 10})

	_, err := idx.IndexWorkspace(context.Background(), Options{})
	require.NoError(t, err)

	assert.LessOrEqual(t, counter.maxSeen.Load(), int32(workers))
	assert.Equal(t, int32(40), counter.calls.Load())
}

func TestCancellationLeavesIndexConsistent(t *testing.T) {
	dir := t.TempDir()
	for i := range 30 {
		writeFile(t, dir, filepath.Join("src", "f"+strings.Repeat("x", i+1)+".ts"), tsSample)
	}

	counter := &countingExtractor{inner: extractor.NewTypeScriptExtractor(), delay: 2 * time.Millisecond}
	registry := extractor.NewRegistry()
	registry.Register(counter)

	idx := newTestIndexer(t, dir, registry, &Config{Workers: 2, ChunkSize: 5})

	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once
	result, err := idx.IndexWorkspace(ctx, Options{
		Progress: func(processed, total int) {
			if processed >= 5 {
				once.Do(cancel)
			}
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Cancelled)

	// Every entry that made it in is a complete record.
	for _, record := range idx.Store().Snapshot() {
		assert.NoError(t, record.Validate())
	}
	assert.Less(t, idx.Store().Len(), 30)
}

func TestProgressReporting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", tsSample)
	writeFile(t, dir, "b.py", pySample)

	idx := newTestIndexer(t, dir, extractor.NewDefaultRegistry(), nil)

	var mu sync.Mutex
	var seen []int
	total := 0
	_, err := idx.IndexWorkspace(context.Background(), Options{
		Progress: func(processed, totalCount int) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, processed)
			total = totalCount
		},
	})
	require.NoError(t, err)

	assert.Len(t, seen, 2)
	assert.Equal(t, 2, total)
	assert.Contains(t, seen, 2)
}

func TestScanLockRejectsConcurrentScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", tsSample)

	idx := newTestIndexer(t, dir, extractor.NewDefaultRegistry(), nil)

	require.True(t, idx.lock.TryAcquire())
	_, err := idx.IndexWorkspace(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrScanInProgress)
	idx.lock.Release()

	_, err = idx.IndexWorkspace(context.Background(), Options{})
	assert.NoError(t, err)
}

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	aPath := writeFile(t, dir, "a.ts", tsSample)

	idx := newTestIndexer(t, dir, extractor.NewDefaultRegistry(), nil)
	ctx := context.Background()

	// Create
	idx.HandleEvent(ctx, types.FileEvent{Op: types.FileCreated, Path: aPath})
	record := idx.Store().Get(aPath)
	require.NotNil(t, record)
	assert.Len(t, record.Functions, 2)

	// Change
	require.NoError(t, os.WriteFile(aPath, []byte(tsSample+"\nexport function extra() {}\n"), 0o644))
	idx.HandleEvent(ctx, types.FileEvent{Op: types.FileChanged, Path: aPath})
	record = idx.Store().Get(aPath)
	require.NotNil(t, record)
	assert.Len(t, record.Functions, 3)

	// Delete
	idx.HandleEvent(ctx, types.FileEvent{Op: types.FileDeleted, Path: aPath})
	assert.Nil(t, idx.Store().Get(aPath))
	assert.Empty(t, idx.Store().Snapshot())
}

func TestHandleEventVanishedPath(t *testing.T) {
	dir := t.TempDir()
	idx := newTestIndexer(t, dir, extractor.NewDefaultRegistry(), nil)

	// An event for a path that no longer exists is skipped silently.
	idx.HandleEvent(context.Background(), types.FileEvent{
		Op:   types.FileChanged,
		Path: filepath.Join(dir, "gone.ts"),
	})
	assert.Equal(t, 0, idx.Store().Len())
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	a := Fingerprint([]byte("package a"))
	b := Fingerprint([]byte("package b"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Fingerprint([]byte("package a")))
	assert.False(t, a.Zero())
}
