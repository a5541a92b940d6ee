package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
	"codeintel/parser"
)

// SymbolsArgs defines the input parameters for the codeintel_symbols tool.
type SymbolsArgs struct {
	Query      string `json:"query" jsonschema:"Fuzzy query matched against symbol names (e.g. 'login' or 'gUById')"`
	Kind       string `json:"kind,omitempty" jsonschema:"Optional symbol kind filter (e.g. class, method, function, interface)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 50)"`
}

// SymbolsHandler holds the dependencies for the symbols tool.
type SymbolsHandler struct {
	SymbolIndex  *index.SymbolIndex
	DefaultLimit int
	Logger       *slog.Logger
}

// Handle processes a codeintel_symbols request.
func (h *SymbolsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SymbolsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("codeintel_symbols called with empty query")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: query parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.DefaultLimit
	}

	results := h.SymbolIndex.SearchSymbols(ctx, args.Query, maxResults, parser.Kind(args.Kind))

	h.Logger.Info("codeintel_symbols",
		"query", args.Query,
		"kind", args.Kind,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatSymbols(results)}},
	}, nil, nil
}
