package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/ignore"
	"codeintel/index"
	"codeintel/register"
	"codeintel/server"
	"codeintel/tools"
	"codeintel/watcher"
)

// excludePatterns is a repeatable CLI flag for custom ignore patterns.
type excludePatterns []string

func (e *excludePatterns) String() string { return strings.Join(*e, ", ") }
func (e *excludePatterns) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "register" {
		register.Run(register.DeriveServerName(os.Args[0]), os.Args[2:])
		return
	}

	var rootDir string
	var maxFileSizeBytes int64
	var maxResults int
	var syncInterval time.Duration
	var logLevel string
	var logFile string
	var excludes excludePatterns

	flag.StringVar(&rootDir, "root", "", "Workspace root directory (default: current working directory)")
	flag.Var(&excludes, "exclude", "Extra ignore pattern (repeatable)")
	flag.Int64Var(&maxFileSizeBytes, "max-file-size", ignore.DefaultMaxFileSizeBytes, "Maximum file size in bytes")
	flag.IntVar(&maxResults, "max-results", 50, "Default max search results")
	flag.DurationVar(&syncInterval, "sync-interval", 5*time.Minute, "Periodic index verification interval (0 disables)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: codeintel.log in the root directory)")
	flag.Parse()

	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
	}
	rootDir, _ = filepath.Abs(rootDir)

	if logFile == "" {
		logFile = filepath.Join(rootDir, "codeintel.log")
	}

	// Logging goes to a file or stderr, never stdout: stdout carries the
	// MCP stdio protocol.
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting codeintel",
		"root", rootDir,
		"maxFileSize", maxFileSizeBytes,
		"maxResults", maxResults,
		"syncInterval", syncInterval,
	)

	startTime := time.Now()

	ignoreMatcher := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:          rootDir,
		CustomPatterns:   excludes,
		MaxFileSizeBytes: maxFileSizeBytes,
	})

	fileIndex := index.NewFileIndex(ignoreMatcher)
	symbolIndex := index.NewSymbolIndex(fileIndex)
	contentIndex, err := index.NewContentIndex()
	if err != nil {
		logger.Error("failed to create content index", "error", err)
		os.Exit(1)
	}
	defer contentIndex.Close()

	indexedCount, totalSize, err := performIndexing(context.Background(), rootDir, fileIndex, contentIndex, logger)
	if err != nil {
		logger.Error("initial indexing failed", "error", err)
		os.Exit(1)
	}
	logger.Info("initial indexing complete",
		"files", fileIndex.FileCount(),
		"contentFiles", indexedCount,
		"totalSize", totalSize,
		"duration", time.Since(startTime),
	)

	fileWatcher, err := watcher.New(rootDir, ignoreMatcher, logger)
	if err != nil {
		logger.Warn("failed to start file watcher, continuing without live updates", "error", err)
	} else {
		go fileWatcher.Run()
		go handleWatcherEvents(fileWatcher, rootDir, fileIndex, symbolIndex, contentIndex, ignoreMatcher, logger)
		defer fileWatcher.Close()
	}

	if syncInterval > 0 {
		stopSync := make(chan struct{})
		defer close(stopSync)
		go runPeriodicSync(syncInterval, rootDir, fileIndex, symbolIndex, contentIndex, ignoreMatcher, logger, stopSync)
	}

	filesHandler := &tools.FilesHandler{FileIndex: fileIndex, DefaultLimit: maxResults, Logger: logger}
	globHandler := &tools.GlobHandler{FileIndex: fileIndex, DefaultLimit: maxResults, Logger: logger}
	symbolsHandler := &tools.SymbolsHandler{SymbolIndex: symbolIndex, DefaultLimit: maxResults, Logger: logger}
	outlineHandler := &tools.OutlineHandler{FileIndex: fileIndex, SymbolIndex: symbolIndex, Logger: logger}
	refsHandler := &tools.RefsHandler{SymbolIndex: symbolIndex, Logger: logger}
	grepHandler := &tools.GrepHandler{ContentIndex: contentIndex, DefaultLimit: maxResults, Logger: logger}
	readHandler := &tools.ReadHandler{FileIndex: fileIndex, ContentIndex: contentIndex, Logger: logger}
	statusHandler := &tools.StatusHandler{
		FileIndex:    fileIndex,
		SymbolIndex:  symbolIndex,
		ContentIndex: contentIndex,
		StartTime:    startTime,
		RootDir:      rootDir,
		Logger:       logger,
	}
	reindexHandler := &tools.ReindexHandler{
		Logger: logger,
		DoReindex: func() (int, int64, string, error) {
			start := time.Now()
			fileIndex.Clear()
			symbolIndex.InvalidateAll()
			if err := contentIndex.Clear(); err != nil {
				return 0, 0, "", fmt.Errorf("clearing content index: %w", err)
			}
			// Pick up .gitignore edits made while the server was running.
			ignoreMatcher.Reload()
			count, size, err := performIndexing(context.Background(), rootDir, fileIndex, contentIndex, logger)
			if err != nil {
				return 0, 0, "", err
			}
			elapsed := time.Since(start).Round(time.Millisecond).String()
			return count, size, elapsed, nil
		},
	}

	mcpServer := server.Setup(
		filesHandler,
		globHandler,
		symbolsHandler,
		outlineHandler,
		refsHandler,
		grepHandler,
		readHandler,
		statusHandler,
		reindexHandler,
	)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
