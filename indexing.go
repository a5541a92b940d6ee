package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"codeintel/ignore"
	"codeintel/index"
	"codeintel/language"
	"codeintel/watcher"
)

// performIndexing runs the full indexing pipeline: a metadata scan that
// populates the file index, then a parallel content pass that reads each
// indexed file into the full-text index. Symbol parsing stays lazy; the
// symbol index fills in on first query.
func performIndexing(
	ctx context.Context,
	rootDir string,
	fileIndex *index.FileIndex,
	contentIndex *index.ContentIndex,
	logger *slog.Logger,
) (int, int64, error) {
	if err := fileIndex.IndexWorkspace(ctx, rootDir); err != nil {
		return 0, 0, err
	}

	var indexedCount atomic.Int64
	var totalSize atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, entry := range fileIndex.ListAllFiles() {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := indexFileContent(entry.Path, entry.RelativePath, entry.Language, contentIndex); err != nil {
				logger.Debug("skipped file content", "path", entry.RelativePath, "error", err)
				return nil
			}
			indexedCount.Add(1)
			totalSize.Add(entry.SizeBytes)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return int(indexedCount.Load()), totalSize.Load(), ctx.Err()
}

// indexFileContent reads one file from disk and stores it in the content
// index. Binary files are skipped.
func indexFileContent(absolutePath string, relativePath string, lang string, contentIndex *index.ContentIndex) error {
	content, err := readFileWithRetry(absolutePath)
	if err != nil {
		return err
	}
	if language.IsBinaryContent(content) {
		return errBinaryFile
	}
	return contentIndex.IndexFile(absolutePath, relativePath, string(content), lang)
}

var errBinaryFile = errors.New("binary file")

// readFileWithRetry reads a file, retrying once after a short delay if the
// first attempt fails. Editors on Windows briefly lock files while saving.
func readFileWithRetry(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		time.Sleep(50 * time.Millisecond)
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// handleWatcherEvents applies debounced file system batches to all three
// indexes. Removals always win: the entry is dropped even when a stale
// write notification for the same path arrived in an earlier batch.
func handleWatcherEvents(
	fileWatcher *watcher.Watcher,
	rootDir string,
	fileIndex *index.FileIndex,
	symbolIndex *index.SymbolIndex,
	contentIndex *index.ContentIndex,
	ignoreMatcher *ignore.Matcher,
	logger *slog.Logger,
) {
	for events := range fileWatcher.Events() {
		for _, event := range events {
			relPath, _ := filepath.Rel(rootDir, event.Path)
			relPath = filepath.ToSlash(relPath)

			switch event.Op {
			case watcher.OpRemove:
				fileIndex.OnFileChanged(event.Path, index.ChangeDeleted)
				symbolIndex.InvalidateFile(event.Path)
				contentIndex.RemoveFile(event.Path)
				logger.Debug("removed from index", "path", relPath)

			case watcher.OpCreate, watcher.OpWrite:
				// Ignore-rule files change which paths are indexable.
				if filepath.Base(event.Path) == ".gitignore" {
					ignoreMatcher.Reload()
					logger.Info("reloaded ignore rules", "path", relPath)
					continue
				}

				kind := index.ChangeModified
				if event.Op == watcher.OpCreate {
					kind = index.ChangeCreated
				}
				fileIndex.OnFileChanged(event.Path, kind)
				symbolIndex.InvalidateFile(event.Path)

				// The file index re-checks eligibility on every change;
				// only mirror into the content index what it accepted.
				entry := fileIndex.GetFileInfo(event.Path)
				if entry == nil {
					contentIndex.RemoveFile(event.Path)
					continue
				}
				if err := indexFileContent(entry.Path, entry.RelativePath, entry.Language, contentIndex); err != nil {
					logger.Debug("skipped file update", "path", relPath, "error", err)
					continue
				}
				logger.Debug("updated index", "path", relPath)
			}
		}
	}
}
