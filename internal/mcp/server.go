package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/codelens-dev/codelens-mcp/internal/config"
	"github.com/codelens-dev/codelens-mcp/internal/extractor"
	"github.com/codelens-dev/codelens-mcp/internal/indexer"
	"github.com/codelens-dev/codelens-mcp/internal/query"
	"github.com/codelens-dev/codelens-mcp/internal/source"
	"github.com/codelens-dev/codelens-mcp/internal/store"
)

const (
	// ServerName is the MCP server name
	ServerName = "codelens-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Path validation errors
var (
	ErrPathRequired    = errors.New("workspace path is required")
	ErrPathNotAbsolute = errors.New("workspace path must be absolute")
	ErrPathNotFound    = errors.New("workspace path does not exist")
	ErrNotDirectory    = errors.New("workspace path is not a directory")
)

// Server wraps the MCP server with one workspace's indexing pipeline.
type Server struct {
	mcp     *server.MCPServer
	indexer *indexer.Indexer
	query   *query.Engine
	source  *source.Source
	watcher *source.Watcher
	logger  *slog.Logger
}

// NewServer creates an MCP server bound to a workspace root. The indexer,
// store, and query engine are constructed here, once, and shared by every
// tool handler; there is no process-wide instance.
func NewServer(workspace string, logger *slog.Logger) (*Server, error) {
	if err := validateWorkspace(workspace); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := config.Resolve(workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	src, err := source.New(source.Options{
		Root:            workspace,
		IncludePatterns: cfg.IncludePatterns,
		ExcludePatterns: cfg.ExcludePatterns,
		MaxFileSize:     cfg.MaxFileSizeBytes,
		Extensions:      extractor.SupportedExtensions(),
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create file source: %w", err)
	}

	st := store.New()
	idx := indexer.New(src, extractor.NewDefaultRegistry(), st, &indexer.Config{
		Workers:    cfg.Workers,
		ChunkSize:  cfg.ChunkSize,
		MaxResults: cfg.MaxResults,
		Logger:     logger,
	})
	eng := query.NewEngine(st, &query.Config{
		SymbolLimit: cfg.SymbolLimit,
		FileLimit:   cfg.FileLimit,
	})

	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion),
		indexer: idx,
		query:   eng,
		source:  src,
		logger:  logger,
	}

	if cfg.Watch {
		watcher, err := src.Watch()
		if err != nil {
			logger.Warn("filesystem watching unavailable", "error", err)
		} else {
			s.watcher = watcher
		}
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown. The watch
// stream, when available, is consumed for the lifetime of the context.
func (s *Server) Serve(ctx context.Context) error {
	if s.watcher != nil {
		go s.consumeEvents(ctx)
		defer func() { _ = s.watcher.Close() }()
	}
	return server.ServeStdio(s.mcp)
}

// consumeEvents applies debounced watch batches to the index.
func (s *Server) consumeEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-s.watcher.Events():
			if !ok {
				return
			}
			for _, event := range batch {
				s.indexer.HandleEvent(ctx, event)
			}
		}
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(indexWorkspaceTool(), s.handleIndexWorkspace)
	s.mcp.AddTool(findSymbolTool(), s.handleFindSymbol)
	s.mcp.AddTool(listFilesTool(), s.handleListFiles)
	s.mcp.AddTool(codebaseStatsTool(), s.handleCodebaseStats)
}

// validateWorkspace checks that the workspace root exists and is a directory.
func validateWorkspace(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return fmt.Errorf("workspace path not accessible: %w", err)
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}
