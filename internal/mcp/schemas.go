package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexWorkspaceTool returns the tool definition for index_workspace
func indexWorkspaceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_workspace",
		Description: "Scan the workspace and build or refresh the codebase index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"full": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-extract every file ignoring content fingerprints (full rebuild)",
					"default":     false,
				},
			},
		},
	}
}

// findSymbolTool returns the tool definition for find_symbol
func findSymbolTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_symbol",
		Description: "Search indexed symbols by case-insensitive substring match on name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pattern": map[string]interface{}{
					"type":        "string",
					"description": "Substring to match against symbol names",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one symbol kind",
					"enum":        []string{"function", "class", "variable", "interface", "type", "constant"},
				},
			},
			Required: []string{"pattern"},
		},
	}
}

// listFilesTool returns the tool definition for list_files
func listFilesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_files",
		Description: "List indexed files for one language",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Language tag (e.g. go, typescript, python)",
				},
			},
			Required: []string{"language"},
		},
	}
}

// codebaseStatsTool returns the tool definition for codebase_stats
func codebaseStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "codebase_stats",
		Description: "Compute summary statistics over the current index",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
