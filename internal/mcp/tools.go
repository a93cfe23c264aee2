package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codelens-dev/codelens-mcp/internal/indexer"
	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeScanInProgress = -32010 // Another indexing scan is already running
)

// handleIndexWorkspace handles the index_workspace tool invocation
func (s *Server) handleIndexWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	full, _ := args["full"].(bool)

	result, err := s.indexer.IndexWorkspace(ctx, indexer.Options{Full: full})
	if err != nil {
		if err == indexer.ErrScanInProgress {
			return nil, newMCPError(ErrorCodeScanInProgress, "an indexing scan is already running", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(statsResponse(result))), nil
}

// handleFindSymbol handles the find_symbol tool invocation
func (s *Server) handleFindSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	pattern, ok := args["pattern"].(string)
	if !ok || pattern == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "pattern parameter is required", map[string]interface{}{
			"param":  "pattern",
			"reason": "missing or empty",
		})
	}

	kind := types.SymbolKind(getStringDefault(args, "kind", ""))
	if kind != "" {
		probe := types.SymbolInfo{Kind: kind}
		if err := probe.ValidateKind(); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid kind", map[string]interface{}{
				"param": "kind",
				"value": string(kind),
			})
		}
	}

	symbols := s.query.FindSymbol(pattern, kind)

	results := make([]map[string]interface{}, 0, len(symbols))
	for _, sym := range symbols {
		results = append(results, map[string]interface{}{
			"name":      sym.Name,
			"kind":      string(sym.Kind),
			"file":      sym.FileURI,
			"line":      sym.Line,
			"scope":     string(sym.Scope),
			"signature": sym.Signature,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"pattern": pattern,
		"count":   len(results),
		"symbols": results,
	})), nil
}

// handleListFiles handles the list_files tool invocation
func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	language, ok := args["language"].(string)
	if !ok || language == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "language parameter is required", map[string]interface{}{
			"param":  "language",
			"reason": "missing or empty",
		})
	}

	files := s.query.FindFilesByLanguage(language)

	results := make([]map[string]interface{}, 0, len(files))
	for _, file := range files {
		results = append(results, map[string]interface{}{
			"uri":        file.URI,
			"size":       file.Size,
			"complexity": file.Complexity,
			"functions":  len(file.Functions),
			"classes":    len(file.Classes),
			"modified":   file.LastModified.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"language": language,
		"count":    len(results),
		"files":    results,
	})), nil
}

// handleCodebaseStats handles the codebase_stats tool invocation
func (s *Server) handleCodebaseStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.indexer.Stats()
	return mcp.NewToolResultText(formatJSON(statsResponse(result))), nil
}

// statsResponse formats CodebaseStats for tool output.
func statsResponse(result *types.CodebaseStats) map[string]interface{} {
	largest := make([]map[string]interface{}, 0, len(result.LargestFiles))
	for _, entry := range result.LargestFiles {
		largest = append(largest, map[string]interface{}{
			"uri":  entry.URI,
			"size": entry.Size,
		})
	}

	complexFns := make([]map[string]interface{}, 0, len(result.MostComplexFunctions))
	for _, entry := range result.MostComplexFunctions {
		complexFns = append(complexFns, map[string]interface{}{
			"name":       entry.Name,
			"file":       entry.FileURI,
			"complexity": entry.Complexity,
		})
	}

	return map[string]interface{}{
		"total_files":            result.TotalFiles,
		"indexed_files":          result.IndexedFiles,
		"skipped_files":          result.SkippedFiles,
		"failed_files":           result.FailedFiles,
		"cancelled":              result.Cancelled,
		"language_distribution":  result.LanguageDistribution,
		"average_complexity":     result.AverageComplexity,
		"largest_files":          largest,
		"most_complex_functions": complexFns,
		"last_scan_duration_ms":  result.LastScanDuration.Milliseconds(),
		"estimated_memory_bytes": result.EstimatedMemoryBytes,
	}
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
