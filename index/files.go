package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"codeintel/ignore"
	"codeintel/language"
)

// defaultSearchLimit caps search results when the caller does not provide
// a limit.
const defaultSearchLimit = 50

// indexState is the FileIndex lifecycle: NotIndexed until the first full
// workspace scan completes, Indexing while a scan runs, Indexed afterwards.
type indexState int

const (
	stateNotIndexed indexState = iota
	stateIndexing
	stateIndexed
)

// FileIndex owns the set of indexable files under a workspace root. It keys
// entries by absolute canonical path and answers fuzzy filename search.
// All methods are safe for concurrent use; queries before the first scan
// completes return empty results rather than failing.
type FileIndex struct {
	mu          sync.RWMutex
	files       map[string]*FileEntry // key: absolute canonical path
	sortedPaths []string              // sorted keys; the stable enumeration order for searches
	state       indexState
	rootDir     string
	matcher     *ignore.Matcher
}

// NewFileIndex creates an empty file index. The matcher supplies the
// exclusion rules applied during scans and change notifications.
func NewFileIndex(matcher *ignore.Matcher) *FileIndex {
	return &FileIndex{
		files:       make(map[string]*FileEntry),
		sortedPaths: make([]string, 0),
		matcher:     matcher,
	}
}

// normalizePath converts any input path to the absolute canonical form used
// as the index key.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// IsIndexed reports whether the first full workspace scan has completed.
func (fi *FileIndex) IsIndexed() bool {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return fi.state == stateIndexed
}

// Root returns the workspace root of the last scan.
func (fi *FileIndex) Root() string {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return fi.rootDir
}

// FileCount returns the number of indexed files.
func (fi *FileIndex) FileCount() int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return len(fi.files)
}

// TotalSizeBytes returns the total size of all indexed files.
func (fi *FileIndex) TotalSizeBytes() int64 {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	var total int64
	for _, file := range fi.files {
		total += file.SizeBytes
	}
	return total
}

// LanguageCounts returns a language -> file count map over the index.
func (fi *FileIndex) LanguageCounts() map[string]int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	counts := make(map[string]int)
	for _, file := range fi.files {
		counts[file.Language]++
	}
	return counts
}

// GetFileInfo returns a copy of the entry for path, or nil if the path is
// not indexed. The input is normalized the same way entries are keyed.
func (fi *FileIndex) GetFileInfo(path string) *FileEntry {
	key := normalizePath(path)

	fi.mu.RLock()
	defer fi.mu.RUnlock()

	entry, ok := fi.files[key]
	if !ok {
		return nil
	}
	copied := *entry
	return &copied
}

// SearchFiles returns up to limit entries whose file name fuzzily matches
// query, ordered by descending score with ties kept in enumeration order.
// An empty or whitespace query returns no results; use ListAllFiles to
// enumerate the whole index.
func (fi *FileIndex) SearchFiles(query string, limit int) []FileEntry {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	fi.mu.RLock()
	results := make([]FileEntry, 0)
	for _, path := range fi.sortedPaths {
		entry, ok := fi.files[path]
		if !ok {
			continue
		}
		score := ScoreFileName(query, filepath.Base(entry.Path))
		if score <= 0 {
			continue
		}
		copied := *entry
		copied.Score = score
		results = append(results, copied)
	}
	fi.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ListAllFiles returns copies of every indexed entry in enumeration order,
// scores zeroed. This is the explicit "everything" operation; SearchFiles
// deliberately returns nothing for an empty query.
func (fi *FileIndex) ListAllFiles() []FileEntry {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	results := make([]FileEntry, 0, len(fi.sortedPaths))
	for _, path := range fi.sortedPaths {
		if entry, ok := fi.files[path]; ok {
			copied := *entry
			copied.Score = 0
			results = append(results, copied)
		}
	}
	return results
}

// SearchByGlob returns entries whose relative path matches the doublestar
// pattern, in enumeration order. Backslashes in the pattern are normalized
// so Windows-style input still matches the slash-separated relative paths.
func (fi *FileIndex) SearchByGlob(pattern string, limit int) ([]FileEntry, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	pattern = strings.ReplaceAll(pattern, "\\", "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	fi.mu.RLock()
	defer fi.mu.RUnlock()

	var results []FileEntry
	for _, path := range fi.sortedPaths {
		entry, ok := fi.files[path]
		if !ok {
			continue
		}
		matched, err := doublestar.Match(pattern, filepath.ToSlash(entry.RelativePath))
		if err != nil {
			return nil, fmt.Errorf("matching glob pattern: %w", err)
		}
		if !matched {
			continue
		}
		results = append(results, *entry)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// OnFileChanged applies one change notification. Created and Modified re-stat
// the file and re-insert it subject to the exclusion rules; a file that has
// become non-indexable is left untouched. Deleted removes the entry
// unconditionally, so a deletion arriving after a stale modification for the
// same path still wins.
func (fi *FileIndex) OnFileChanged(path string, kind ChangeKind) {
	key := normalizePath(path)

	if kind == ChangeDeleted {
		fi.remove(key)
		return
	}

	if fi.matcher != nil && fi.matcher.ShouldIgnore(key) {
		return
	}

	info, err := os.Stat(key)
	if err != nil || info.IsDir() {
		return
	}
	if fi.matcher != nil && fi.matcher.IsFileTooLarge(info.Size()) {
		return
	}

	fi.mu.RLock()
	root := fi.rootDir
	fi.mu.RUnlock()

	fi.insert(buildEntry(key, root, info))
}

// buildEntry assembles a FileEntry from stat results.
func buildEntry(absPath string, rootDir string, info os.FileInfo) *FileEntry {
	relPath := absPath
	if rootDir != "" {
		if rel, err := filepath.Rel(rootDir, absPath); err == nil {
			relPath = filepath.ToSlash(rel)
		}
	}
	return &FileEntry{
		Path:         absPath,
		RelativePath: relPath,
		Language:     language.Detect(absPath),
		SizeBytes:    info.Size(),
		ModTime:      info.ModTime(),
	}
}

// insert adds or replaces an entry. The update is atomic with respect to
// readers of that key; searches in flight may see a mix of old and new
// entries across different keys.
func (fi *FileIndex) insert(entry *FileEntry) {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	_, exists := fi.files[entry.Path]
	fi.files[entry.Path] = entry

	if !exists {
		idx := sort.SearchStrings(fi.sortedPaths, entry.Path)
		fi.sortedPaths = append(fi.sortedPaths, "")
		copy(fi.sortedPaths[idx+1:], fi.sortedPaths[idx:])
		fi.sortedPaths[idx] = entry.Path
	}
}

func (fi *FileIndex) remove(key string) {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	if _, exists := fi.files[key]; !exists {
		return
	}
	delete(fi.files, key)

	idx := sort.SearchStrings(fi.sortedPaths, key)
	if idx < len(fi.sortedPaths) && fi.sortedPaths[idx] == key {
		fi.sortedPaths = append(fi.sortedPaths[:idx], fi.sortedPaths[idx+1:]...)
	}
}

// Clear removes all entries and resets the index to NotIndexed.
func (fi *FileIndex) Clear() {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	fi.files = make(map[string]*FileEntry)
	fi.sortedPaths = make([]string, 0)
	fi.state = stateNotIndexed
}
