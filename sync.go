package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"codeintel/ignore"
	"codeintel/index"
)

// SyncResult holds the outcome of a single sync verification run.
type SyncResult struct {
	MissingFiles  int // files on disk but not in index
	StaleFiles    int // files in index but not on disk
	ModifiedFiles int // files where ModTime differs
	Duration      time.Duration
}

// runPeriodicSync verifies index consistency at the given interval until
// the stop channel is closed. The watcher catches most changes; this loop
// is the safety net for anything it missed (network mounts, bursts that
// overflowed the kernel event queue).
func runPeriodicSync(
	interval time.Duration,
	rootDir string,
	fileIndex *index.FileIndex,
	symbolIndex *index.SymbolIndex,
	contentIndex *index.ContentIndex,
	ignoreMatcher *ignore.Matcher,
	logger *slog.Logger,
	stop <-chan struct{},
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("periodic sync started", "interval", interval)

	for {
		select {
		case <-stop:
			logger.Info("periodic sync stopped")
			return
		case <-ticker.C:
			result := performSyncVerification(rootDir, fileIndex, symbolIndex, contentIndex, ignoreMatcher, logger)
			total := result.MissingFiles + result.StaleFiles + result.ModifiedFiles
			if total > 0 {
				logger.Info("sync verification complete",
					"missing", result.MissingFiles,
					"stale", result.StaleFiles,
					"modified", result.ModifiedFiles,
					"duration", result.Duration,
				)
			} else {
				logger.Debug("sync verification complete, index is in sync", "duration", result.Duration)
			}
		}
	}
}

// performSyncVerification compares the filesystem with the current index
// state and repairs any divergence it finds.
func performSyncVerification(
	rootDir string,
	fileIndex *index.FileIndex,
	symbolIndex *index.SymbolIndex,
	contentIndex *index.ContentIndex,
	ignoreMatcher *ignore.Matcher,
	logger *slog.Logger,
) SyncResult {
	start := time.Now()
	var result SyncResult

	// Snapshot of eligible files currently on disk, keyed by absolute path.
	diskFiles := make(map[string]os.FileInfo)
	filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootDir && ignoreMatcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignoreMatcher.ShouldIgnore(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if ignoreMatcher.IsFileTooLarge(info.Size()) {
			return nil
		}
		diskFiles[path] = info
		return nil
	})

	indexed := fileIndex.ListAllFiles()
	indexedSet := make(map[string]index.FileEntry, len(indexed))
	for _, entry := range indexed {
		indexedSet[entry.Path] = entry
	}

	// On disk but not in the index.
	for absPath := range diskFiles {
		if _, exists := indexedSet[absPath]; exists {
			continue
		}
		fileIndex.OnFileChanged(absPath, index.ChangeCreated)
		entry := fileIndex.GetFileInfo(absPath)
		if entry == nil {
			continue
		}
		result.MissingFiles++
		logger.Info("sync: indexed missing file", "path", entry.RelativePath)
		if err := indexFileContent(entry.Path, entry.RelativePath, entry.Language, contentIndex); err != nil {
			logger.Debug("sync: content skipped", "path", entry.RelativePath, "error", err)
		}
	}

	// In the index but gone from disk.
	for absPath, entry := range indexedSet {
		if _, exists := diskFiles[absPath]; exists {
			continue
		}
		fileIndex.OnFileChanged(absPath, index.ChangeDeleted)
		symbolIndex.InvalidateFile(absPath)
		contentIndex.RemoveFile(absPath)
		logger.Info("sync: removed stale file", "path", entry.RelativePath)
		result.StaleFiles++
	}

	// Still present but changed since it was indexed.
	for absPath, info := range diskFiles {
		entry, exists := indexedSet[absPath]
		if !exists {
			continue // already handled as missing
		}
		if info.ModTime().Equal(entry.ModTime) {
			continue
		}
		fileIndex.OnFileChanged(absPath, index.ChangeModified)
		symbolIndex.InvalidateFile(absPath)
		result.ModifiedFiles++
		logger.Info("sync: re-indexed modified file", "path", entry.RelativePath)
		if err := indexFileContent(entry.Path, entry.RelativePath, entry.Language, contentIndex); err != nil {
			logger.Debug("sync: content skipped", "path", entry.RelativePath, "error", err)
		}
	}

	result.Duration = time.Since(start)
	return result
}
