package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// DefaultMaxFileSize is the discovery-time size cutoff. Files above it are
// never read, never indexed, and never appear in query results or stats.
const DefaultMaxFileSize = 500 * 1024

// FileMeta is the metadata snapshot returned by Stat.
type FileMeta struct {
	Size    int64
	ModTime time.Time
}

// Options configures a workspace file source.
type Options struct {
	// Root is the workspace directory to enumerate.
	Root string
	// IncludePatterns are doublestar globs relative to Root; empty means
	// every file with a recognized extension.
	IncludePatterns []string
	// ExcludePatterns are doublestar globs applied after includes.
	ExcludePatterns []string
	// MaxFileSize excludes larger files at discovery time.
	// Defaults to DefaultMaxFileSize.
	MaxFileSize int64
	// Extensions restricts discovery to these file extensions (with dot).
	Extensions []string

	Logger *slog.Logger
}

// Source enumerates, stats, reads, and watches files in one workspace root.
// It is the indexer's only view of the filesystem.
type Source struct {
	root        string
	matcher     *Matcher
	maxFileSize int64
	extensions  map[string]bool
	logger      *slog.Logger
}

// New creates a file source for the workspace root.
func New(opts Options) (*Source, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("%w: workspace root is required", types.ErrDiscoveryFailed)
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDiscoveryFailed, err)
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[ext] = true
	}

	return &Source{
		root:        root,
		matcher:     NewMatcher(root, opts.IncludePatterns, opts.ExcludePatterns),
		maxFileSize: maxSize,
		extensions:  exts,
		logger:      logger,
	}, nil
}

// Root returns the absolute workspace root.
func (s *Source) Root() string { return s.root }

// MaxFileSize returns the discovery-time size cutoff. The indexer re-checks
// it on incremental updates, which bypass discovery.
func (s *Source) MaxFileSize() int64 { return s.maxFileSize }

// Discover enumerates candidate files under the root, applying directory
// excludes before descending, then pattern and size filters per file.
// maxResults <= 0 means unbounded.
func (s *Source) Discover(maxResults int) ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			// Unreadable subtrees are skipped, not fatal.
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != s.root && s.matcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.eligible(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > s.maxFileSize {
			return nil
		}

		files = append(files, path)
		if maxResults > 0 && len(files) >= maxResults {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDiscoveryFailed, err)
	}

	return files, nil
}

// eligible applies extension and pattern filters to one file path.
func (s *Source) eligible(path string) bool {
	if len(s.extensions) > 0 && !s.extensions[filepath.Ext(path)] {
		return false
	}
	return !s.matcher.ShouldIgnore(path)
}

// Stat returns the current metadata for a path. A path that vanished between
// discovery and stat yields ErrNotFound.
func (s *Source) Stat(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileMeta{}, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return FileMeta{}, fmt.Errorf("%w: %s: %v", types.ErrReadFailed, path, err)
	}
	return FileMeta{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Read returns the file's bytes.
func (s *Source) Read(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", types.ErrReadFailed, path, err)
	}
	return content, nil
}
