package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
)

// GlobArgs defines the input parameters for the codeintel_glob tool.
type GlobArgs struct {
	Pattern    string `json:"pattern" jsonschema:"Glob pattern to match files (e.g. **/*.ts or src/**/*.go)"`
	NameOnly   bool   `json:"nameOnly,omitempty" jsonschema:"If true return only file paths without metadata"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 50)"`
}

// GlobHandler holds the dependencies for the glob tool.
type GlobHandler struct {
	FileIndex    *index.FileIndex
	DefaultLimit int
	Logger       *slog.Logger
}

// Handle processes a codeintel_glob request.
func (h *GlobHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GlobArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Pattern == "" {
		h.Logger.Warn("codeintel_glob called with empty pattern")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: pattern parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.DefaultLimit
	}

	results, err := h.FileIndex.SearchByGlob(args.Pattern, maxResults)
	if err != nil {
		h.Logger.Error("codeintel_glob failed", "pattern", args.Pattern, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Glob error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("codeintel_glob",
		"pattern", args.Pattern,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatFileEntries(results, args.NameOnly)}},
	}, nil, nil
}
