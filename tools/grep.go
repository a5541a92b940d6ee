package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
)

// GrepArgs defines the input parameters for the codeintel_grep tool.
type GrepArgs struct {
	Query        string `json:"query" jsonschema:"Search query. Plain text for word match, quoted for exact phrase, /regex/ for regular expression"`
	FilePath     string `json:"filePath,omitempty" jsonschema:"Exact relative file path to search in (overrides fileGlob)"`
	FileGlob     string `json:"fileGlob,omitempty" jsonschema:"Optional glob pattern to filter files (e.g. **/*.go)"`
	MaxResults   int    `json:"maxResults,omitempty" jsonschema:"Maximum number of file results to return (default 50)"`
	ContextLines int    `json:"contextLines,omitempty" jsonschema:"Number of context lines before and after each match (default 2)"`
}

// GrepHandler holds the dependencies for the grep tool.
type GrepHandler struct {
	ContentIndex *index.ContentIndex
	DefaultLimit int
	Logger       *slog.Logger
}

// Handle processes a codeintel_grep request.
func (h *GrepHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GrepArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("codeintel_grep called with empty query")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: query parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	contextLines := args.ContextLines
	if contextLines == 0 {
		contextLines = 2
	}

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.DefaultLimit
	}

	// An exact file path is just the most specific glob.
	fileGlob := args.FileGlob
	if args.FilePath != "" {
		fileGlob = args.FilePath
	}

	results, totalMatches, err := h.ContentIndex.Search(index.ContentSearchOptions{
		Query:        args.Query,
		FileGlob:     fileGlob,
		MaxResults:   maxResults,
		ContextLines: contextLines,
	})
	if err != nil {
		h.Logger.Error("codeintel_grep failed", "query", args.Query, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Search error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("codeintel_grep",
		"query", args.Query,
		"filePath", args.FilePath,
		"fileGlob", args.FileGlob,
		"files", len(results),
		"matches", totalMatches,
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatContentResults(results, totalMatches)}},
	}, nil, nil
}
