package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codelens-dev/codelens-mcp/internal/extractor"
	"github.com/codelens-dev/codelens-mcp/internal/source"
	"github.com/codelens-dev/codelens-mcp/internal/stats"
	"github.com/codelens-dev/codelens-mcp/internal/store"
	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

const (
	// DefaultWorkers bounds the number of extractions in flight.
	DefaultWorkers = 10
	// DefaultChunkSize is the number of paths processed per chunk.
	DefaultChunkSize = 100
)

// ErrScanInProgress is returned when a second workspace scan is requested
// while one is already running.
var ErrScanInProgress = errors.New("an indexing scan is already running")

// Skip reasons, recovered locally and counted, never fatal.
var (
	errUnchanged   = errors.New("unchanged")
	errVanished    = errors.New("vanished before processing")
	errOversize    = errors.New("exceeds max file size")
	errNoExtractor = errors.New("unsupported language")
)

// Indexer coordinates the indexing pipeline: discover -> detect changes ->
// extract -> store. One Indexer serves one workspace; construct it explicitly
// and pass it by reference, there is no process-wide instance.
type Indexer struct {
	source   *source.Source
	registry *extractor.Registry
	store    *store.Store
	logger   *slog.Logger

	workers    int
	chunkSize  int
	maxResults int

	lock             scanLock
	lastScanDuration atomic.Int64
}

// Config contains tuning knobs for the indexer.
type Config struct {
	Workers    int // max concurrent extractions (default: DefaultWorkers)
	ChunkSize  int // paths per chunk (default: DefaultChunkSize)
	MaxResults int // cap on discovered files, 0 = unbounded
	Logger     *slog.Logger
}

// Options controls one IndexWorkspace run.
type Options struct {
	// Full forces re-extraction of every file regardless of fingerprint
	// match, recovering from extractor upgrades or corrupted entries.
	Full bool
	// Progress, when set, is called after each processed file with
	// (processedCount, totalCount). It may be called from multiple worker
	// goroutines concurrently.
	Progress func(processed, total int)
}

// New creates an Indexer over the given source, extractor registry, and store.
func New(src *source.Source, registry *extractor.Registry, st *store.Store, config *Config) *Indexer {
	if config == nil {
		config = &Config{}
	}
	workers := config.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	chunkSize := config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Indexer{
		source:     src,
		registry:   registry,
		store:      st,
		logger:     logger,
		workers:    workers,
		chunkSize:  chunkSize,
		maxResults: config.MaxResults,
	}
}

// Store returns the index store backing this indexer.
func (idx *Indexer) Store() *store.Store { return idx.store }

// Stats recomputes statistics from the current index contents, outside any
// scan. Safe to call at any time, including mid-scan.
func (idx *Indexer) Stats() *types.CodebaseStats {
	return stats.Compute(idx.store.Snapshot(), time.Duration(idx.lastScanDuration.Load()))
}

// IndexWorkspace runs a workspace scan and returns statistics derived from
// the resulting index. Cancellation through ctx is cooperative: workers stop
// taking new paths, completed extractions stay in the index, and the partial
// stats are returned with Cancelled set rather than an error.
func (idx *Indexer) IndexWorkspace(ctx context.Context, opts Options) (*types.CodebaseStats, error) {
	if !idx.lock.TryAcquire() {
		return nil, ErrScanInProgress
	}
	defer idx.lock.Release()

	startTime := time.Now()

	files, err := idx.source.Discover(idx.maxResults)
	if err != nil {
		// Discovery failure is the only error fatal to a run.
		return nil, err
	}

	total := len(files)
	var counters runCounters
	cancelled := false

	for offset := 0; offset < total; offset += idx.chunkSize {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		end := offset + idx.chunkSize
		if end > total {
			end = total
		}

		if err := idx.processChunk(ctx, files[offset:end], opts, total, &counters); err != nil {
			// Only cancellation escapes a chunk; per-file errors are
			// swallowed inside.
			cancelled = true
			break
		}

		// Let the host schedule other work between chunks.
		runtime.Gosched()
	}

	idx.lastScanDuration.Store(int64(time.Since(startTime)))

	result := stats.Compute(idx.store.Snapshot(), time.Since(startTime))
	result.SkippedFiles = int(counters.skipped.Load())
	result.FailedFiles = int(counters.failed.Load())
	result.Cancelled = cancelled

	idx.logger.Info("workspace scan finished",
		"discovered", total,
		"indexed", counters.indexed.Load(),
		"skipped", counters.skipped.Load(),
		"failed", counters.failed.Load(),
		"cancelled", cancelled,
		"duration", result.LastScanDuration)

	return result, nil
}

// HandleEvent applies one watch event to the index, outside any scan. Create
// and change events reuse the same read -> fingerprint -> extract -> replace
// sequence as a scan; a delete removes the entry outright.
func (idx *Indexer) HandleEvent(ctx context.Context, event types.FileEvent) {
	switch event.Op {
	case types.FileDeleted:
		idx.store.Remove(event.Path)
	case types.FileCreated, types.FileChanged:
		if err := idx.processFile(event.Path, false); err != nil {
			if isSkip(err) {
				return
			}
			idx.logger.Warn("incremental update failed", "path", event.Path, "error", err)
		}
	}
}

// runCounters tracks per-run accounting with atomics shared across workers.
type runCounters struct {
	processed atomic.Int32
	indexed   atomic.Int32
	skipped   atomic.Int32
	failed    atomic.Int32
}

// processChunk distributes one chunk's paths across the worker slots. At no
// instant are more than idx.workers extractions in flight; the cancellation
// signal is checked before each path is handed to a slot.
func (idx *Indexer) processChunk(ctx context.Context, chunk []string, opts Options, total int, counters *runCounters) error {
	semaphore := make(chan struct{}, idx.workers)
	g, gctx := errgroup.WithContext(ctx)

	for _, path := range chunk {
		select {
		case <-gctx.Done():
			_ = g.Wait()
			return gctx.Err()
		case semaphore <- struct{}{}:
		}

		g.Go(func() error {
			defer func() { <-semaphore }()

			err := idx.processFile(path, opts.Full)
			switch {
			case err == nil:
				counters.indexed.Add(1)
			case isSkip(err):
				counters.skipped.Add(1)
			default:
				counters.failed.Add(1)
				idx.logger.Warn("failed to index file", "path", path, "error", err)
			}

			processed := counters.processed.Add(1)
			if opts.Progress != nil {
				opts.Progress(int(processed), total)
			}
			return nil
		})
	}

	return g.Wait()
}

// processFile runs the per-file pipeline for one path: stat, read,
// fingerprint check, extract, atomic store replace. All of it happens outside
// any lock; only the final Put touches shared state.
func (idx *Indexer) processFile(path string, full bool) error {
	meta, err := idx.source.Stat(path)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return errVanished
		}
		return err
	}
	if meta.Size > idx.source.MaxFileSize() {
		// Discovery filters size, but incremental updates bypass discovery
		// and files can grow between discovery and processing.
		idx.store.Remove(path)
		return errOversize
	}

	content, err := idx.source.Read(path)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return errVanished
		}
		return err
	}
	// The record is addressed by the bytes actually read: keep the size
	// consistent with them even if the file changed between stat and read.
	meta.Size = int64(len(content))

	fingerprint := Fingerprint(content)
	if !full {
		if stored, ok := idx.store.Fingerprint(path); ok && stored == fingerprint {
			return errUnchanged
		}
	}

	language := extractor.DetectLanguage(path)
	if language == "" {
		return errNoExtractor
	}
	ext, err := idx.registry.For(language)
	if err != nil {
		return errNoExtractor
	}

	result, err := ext.Extract(content)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrExtractionFailed, path, err)
	}

	idx.store.Put(buildRecord(path, language, meta, result, fingerprint))
	return nil
}

// isSkip reports whether an error is a counted skip rather than a failure.
func isSkip(err error) bool {
	return errors.Is(err, errUnchanged) ||
		errors.Is(err, errVanished) ||
		errors.Is(err, errOversize) ||
		errors.Is(err, errNoExtractor)
}
