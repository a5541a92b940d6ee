package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides whether a path takes part in indexing. It combines the
// built-in exclusion rules (directory names, binary extensions, lock files,
// size ceiling), the workspace .gitignore, and custom CLI patterns.
// Thread-safe: Reload acquires a write lock, the Should* methods a read lock.
type Matcher struct {
	mu               sync.RWMutex
	rootDir          string
	gitIgnore        gitignore.GitIgnore
	customPatterns   []string
	maxFileSizeBytes int64
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir          string
	CustomPatterns   []string
	MaxFileSizeBytes int64
}

// NewMatcher creates a matcher rooted at options.RootDir.
func NewMatcher(options MatcherOptions) *Matcher {
	m := &Matcher{
		rootDir:          options.RootDir,
		customPatterns:   options.CustomPatterns,
		maxFileSizeBytes: options.MaxFileSizeBytes,
	}

	if m.maxFileSizeBytes <= 0 {
		m.maxFileSizeBytes = DefaultMaxFileSizeBytes
	}

	m.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)

	return m
}

// ShouldIgnore returns true if the given file path is excluded from indexing.
// The path may be absolute or relative to the root directory.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if matchesBuiltinRules(relativePath) {
		return true
	}

	// gitignore matching needs to know whether the path is a directory
	isDir := false
	if info, err := os.Stat(absolutePath); err == nil {
		isDir = info.IsDir()
	}

	// Relative() matches against the rules without requiring the file to exist
	if m.gitIgnore != nil {
		match := m.gitIgnore.Relative(relativePath, isDir)
		if match != nil && match.Ignore() {
			return true
		}
	}

	return m.matchesCustomPatterns(relativePath)
}

// ShouldIgnoreDir returns true if a directory should be pruned from the walk.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	dirName := strings.ToLower(filepath.Base(absolutePath))

	for _, excluded := range ExcludedDirNames {
		if dirName == excluded {
			return true
		}
	}

	// Fall through to the full check for gitignore and custom patterns
	return m.ShouldIgnore(absolutePath)
}

// IsFileTooLarge returns true if the file exceeds the indexing size ceiling.
func (m *Matcher) IsFileTooLarge(fileSize int64) bool {
	return fileSize > m.maxFileSizeBytes
}

// MaxFileSizeBytes returns the configured size ceiling.
func (m *Matcher) MaxFileSizeBytes() int64 {
	return m.maxFileSizeBytes
}

// matchesBuiltinRules checks the fixed exclusion rules: excluded directory
// names anywhere in the path, excluded extensions, and excluded file names.
func matchesBuiltinRules(relativePath string) bool {
	lowerPath := strings.ToLower(relativePath)

	parts := strings.Split(lowerPath, "/")
	for _, part := range parts[:len(parts)-1] {
		for _, excluded := range ExcludedDirNames {
			if part == excluded {
				return true
			}
		}
	}

	baseName := parts[len(parts)-1]
	for _, name := range ExcludedFileNames {
		if baseName == name {
			return true
		}
	}

	for _, ext := range ExcludedExtensions {
		if strings.HasSuffix(baseName, ext) {
			return true
		}
	}

	// Minified bundles and source maps
	if strings.HasSuffix(baseName, ".min.js") || strings.HasSuffix(baseName, ".min.css") || strings.HasSuffix(baseName, ".map") {
		return true
	}

	return false
}

// matchesCustomPatterns checks user-provided CLI exclude patterns against the
// relative path and the basename.
func (m *Matcher) matchesCustomPatterns(relativePath string) bool {
	for _, pattern := range m.customPatterns {
		matched, err := filepath.Match(pattern, relativePath)
		if err == nil && matched {
			return true
		}

		baseName := filepath.Base(relativePath)
		matched, err = filepath.Match(pattern, baseName)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Reload re-reads the .gitignore file from disk. Called when the watcher
// sees the file change.
func (m *Matcher) Reload() {
	newGitIgnore := loadIgnoreFile(filepath.Join(m.rootDir, ".gitignore"), m.rootDir)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = newGitIgnore
}

// loadIgnoreFile reads an ignore file and builds a GitIgnore matcher from it.
// Opens via io.Reader so the handle is released promptly on Windows.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
