package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
)

// FilesArgs defines the input parameters for the codeintel_files tool.
type FilesArgs struct {
	Query      string `json:"query,omitempty" jsonschema:"Fuzzy query matched against file names (e.g. 'auth' or 'fidx'). Empty lists every indexed file"`
	NameOnly   bool   `json:"nameOnly,omitempty" jsonschema:"If true return only file paths without metadata"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 50)"`
}

// FilesHandler holds the dependencies for the files tool.
type FilesHandler struct {
	FileIndex    *index.FileIndex
	DefaultLimit int
	Logger       *slog.Logger
}

// Handle processes a codeintel_files request. An empty query enumerates the
// whole index; anything else runs the ranked fuzzy search.
func (h *FilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FilesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	var results []index.FileEntry
	if args.Query == "" {
		// The full listing is only capped when the caller asks for it.
		results = h.FileIndex.ListAllFiles()
		if args.MaxResults > 0 && len(results) > args.MaxResults {
			results = results[:args.MaxResults]
		}
	} else {
		maxResults := args.MaxResults
		if maxResults <= 0 {
			maxResults = h.DefaultLimit
		}
		results = h.FileIndex.SearchFiles(args.Query, maxResults)
	}

	h.Logger.Info("codeintel_files",
		"query", args.Query,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatFileEntries(results, args.NameOnly)}},
	}, nil, nil
}
