package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/index"
)

// RefsArgs defines the input parameters for the codeintel_refs tool.
type RefsArgs struct {
	Symbol string `json:"symbol" jsonschema:"Fully qualified symbol name to find references for (e.g. AuthService.Login)"`
}

// RefsHandler holds the dependencies for the refs tool.
type RefsHandler struct {
	SymbolIndex *index.SymbolIndex
	Logger      *slog.Logger
}

// Handle processes a codeintel_refs request.
func (h *RefsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RefsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Symbol == "" {
		h.Logger.Warn("codeintel_refs called with empty symbol")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: symbol parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	if h.SymbolIndex.GetSymbol(ctx, args.Symbol) == nil {
		h.Logger.Info("codeintel_refs symbol not found", "symbol", args.Symbol)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Symbol not found: %s", args.Symbol)}},
			IsError: true,
		}, nil, nil
	}

	refs := h.SymbolIndex.FindReferences(ctx, args.Symbol)

	h.Logger.Info("codeintel_refs",
		"symbol", args.Symbol,
		"references", len(refs),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatReferences(args.Symbol, refs)}},
	}, nil, nil
}
