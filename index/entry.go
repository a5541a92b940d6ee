package index

import (
	"errors"
	"time"
)

// ErrDirectoryNotFound is returned by IndexWorkspace when the workspace root
// does not exist. It is the only error the index surfaces to callers; every
// per-file failure degrades to skipping that file.
var ErrDirectoryNotFound = errors.New("workspace root directory not found")

// FileEntry is the indexed metadata record for one workspace file.
// Entries are owned exclusively by the FileIndex; query results carry copies,
// never live references into the index map.
type FileEntry struct {
	Path         string    // Absolute, canonical file path (unique key)
	RelativePath string    // Path relative to the workspace root (forward slashes)
	Language     string    // Detected language identifier
	SizeBytes    int64     // Size snapshot at index time
	ModTime      time.Time // Last-modified snapshot at index time
	Score        float64   // Relevance, set only on search results
}

// ChangeKind classifies a file-change notification.
type ChangeKind int

const (
	ChangeCreated ChangeKind = iota
	ChangeModified
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeModified:
		return "modified"
	case ChangeDeleted:
		return "deleted"
	}
	return "unknown"
}

// SymbolReference is one usage site of a symbol. Produced only as a query
// result, never stored.
type SymbolReference struct {
	FilePath     string // Absolute path of the file containing the usage
	Line         int    // Zero-based line of the occurrence
	Column       int    // Zero-based column of the occurrence
	LineContent  string // Trimmed source line text
	IsDefinition bool   // True for the site matching the definition's file and line
}
