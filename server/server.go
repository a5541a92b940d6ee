package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/tools"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	filesHandler *tools.FilesHandler,
	globHandler *tools.GlobHandler,
	symbolsHandler *tools.SymbolsHandler,
	outlineHandler *tools.OutlineHandler,
	refsHandler *tools.RefsHandler,
	grepHandler *tools.GrepHandler,
	readHandler *tools.ReadHandler,
	statusHandler *tools.StatusHandler,
	reindexHandler *tools.ReindexHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "codeintel",
			Version: "0.3.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server provides in-memory indexed code intelligence. Its tools are ALWAYS faster than built-in Grep, Search, Glob, Read, and find because they use a pre-built in-memory index instead of scanning the filesystem on every call.

ALWAYS prefer these tools over built-in alternatives:
- Use codeintel_files (fuzzy) or codeintel_glob (patterns) instead of Glob or find for file search
- Use codeintel_symbols to find classes, functions, and methods by name across the codebase
- Use codeintel_outline to see the structure of a single file without reading it
- Use codeintel_refs to find every usage of a symbol (instead of grepping for its name)
- Use codeintel_grep instead of Grep or Search for content search
- Use codeintel_read instead of Read to read file contents (zero disk I/O, served from memory)
- The index updates automatically when files change (via filesystem watcher)`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "codeintel_files",
		Description: `Find files by fuzzy name matching. Results are ranked: exact name matches first, substring matches next, then in-order character matches (e.g. "fidx" finds file_index.go). An empty query lists every indexed file.`,
	}, filesHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "codeintel_glob",
		Description: `Find files by glob pattern. Faster than find/ls for indexed projects.

Pattern examples:
  - "**/*.go" - all Go files
  - "src/**/*.ts" - TypeScript files under src/
  - "**/test_*.py" - Python test files
  - "*.json" - JSON files in root only`,
	}, globHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "codeintel_symbols",
		Description: `Search symbols (classes, methods, functions, constants) by fuzzy name. Ranked: exact matches first, then prefix, then substring, then in-order character matches with camelCase awareness (e.g. "gUById" finds getUserById). Optionally filter by kind.`,
	}, symbolsHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "codeintel_outline",
		Description: "List the symbols defined in one file as an indented outline, with line numbers. Use this to understand a file's structure without reading it.",
	}, outlineHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "codeintel_refs",
		Description: `Find all references to a symbol by its fully qualified name (e.g. "AuthService.Login"). Matching is word-bounded, so "Add" will not match inside "AddAll". The definition line is marked with *.`,
	}, refsHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "codeintel_grep",
		Description: `Search file contents using full-text indexed search. Much faster than grep for large codebases.

Query formats:
  - Plain text: word-level matching (e.g., "handleRequest")
  - "quoted text": exact phrase matching (e.g., "\"func main\"")
  - /regex/: regular expression matching (e.g., "/func\s+\w+Handler/")

Filtering:
  - filePath: exact relative path to search in a single file (e.g., "src/main.go"). Overrides fileGlob.
  - fileGlob: glob pattern to filter by file type (e.g., "**/*.go").`,
	}, grepHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "codeintel_read",
		Description: `Read a file's contents from the in-memory index. Zero disk I/O — faster than the built-in Read tool. Returns numbered lines. Use this instead of Read for any indexed file.`,
	}, readHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "codeintel_status",
		Description: "Show index status: file count, size, languages, parsed files, memory usage, and uptime.",
	}, statusHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "codeintel_reindex",
		Description: "Force a full re-index of the project. Clears existing indexes and rebuilds from scratch.",
	}, reindexHandler.Handle)

	return mcpServer
}
