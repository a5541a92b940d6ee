package tools

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
)

// OutlineArgs defines the input parameters for the codeintel_outline tool.
type OutlineArgs struct {
	FilePath string `json:"filePath" jsonschema:"Relative path of the file to outline (e.g. src/auth.go)"`
}

// OutlineHandler holds the dependencies for the outline tool.
type OutlineHandler struct {
	FileIndex   *index.FileIndex
	SymbolIndex *index.SymbolIndex
	Logger      *slog.Logger
}

// Handle processes a codeintel_outline request.
func (h *OutlineHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args OutlineArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("codeintel_outline called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	absPath := args.FilePath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(h.FileIndex.Root(), filepath.FromSlash(args.FilePath))
	}

	symbols := h.SymbolIndex.GetSymbols(ctx, absPath)

	h.Logger.Info("codeintel_outline",
		"filePath", args.FilePath,
		"symbols", len(symbols),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatOutline(args.FilePath, symbols)}},
	}, nil, nil
}
