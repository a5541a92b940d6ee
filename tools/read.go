package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
)

// ReadArgs defines the input parameters for the codeintel_read tool.
type ReadArgs struct {
	FilePath string `json:"filePath" jsonschema:"Relative file path to read from the index (e.g. src/main.go)"`
}

// ReadHandler holds the dependencies for the read tool.
type ReadHandler struct {
	FileIndex    *index.FileIndex
	ContentIndex *index.ContentIndex
	Logger       *slog.Logger
}

// Handle processes a codeintel_read request.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("codeintel_read called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	absPath := args.FilePath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(h.FileIndex.Root(), filepath.FromSlash(args.FilePath))
	}

	content, ok := h.ContentIndex.GetFileContent(absPath)
	if !ok {
		h.Logger.Info("codeintel_read file not found", "filePath", args.FilePath)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("File not found in index: %s", args.FilePath)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("codeintel_read", "filePath", args.FilePath, "elapsed", time.Since(start))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatFileContent(args.FilePath, content)}},
	}, nil, nil
}
