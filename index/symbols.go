package index

import (
	"context"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"codeintel/parser"
)

// SymbolIndex answers symbol queries over the files known to a FileIndex.
// Parsing is lazy: a file's symbols are extracted on first demand and cached
// until InvalidateFile drops them. The cache holds derived, recomputable data
// only; dropping it entirely costs a re-parse on the next query, nothing more.
//
// Construct one per workspace with NewSymbolIndex; there is no package-level
// state, so independent workspaces can coexist.
type SymbolIndex struct {
	mu    sync.RWMutex
	cache map[string][]parser.Symbol // key: absolute canonical path
	files *FileIndex
}

// NewSymbolIndex creates a symbol index over the given file index.
func NewSymbolIndex(files *FileIndex) *SymbolIndex {
	return &SymbolIndex{
		cache: make(map[string][]parser.Symbol),
		files: files,
	}
}

// GetSymbols returns the symbols declared in the file at path, parsing and
// caching on first access. Returns an empty list when the file is unknown to
// the file index or unreadable; symbol lookups never fail, they degrade.
func (si *SymbolIndex) GetSymbols(ctx context.Context, path string) []parser.Symbol {
	key := normalizePath(path)

	si.mu.RLock()
	cached, ok := si.cache[key]
	si.mu.RUnlock()
	if ok {
		return cloneSymbols(cached)
	}

	entry := si.files.GetFileInfo(key)
	if entry == nil {
		return nil
	}

	content, err := readFileWithRetry(key)
	if err != nil {
		return nil // vanished or locked; the next query retries
	}

	symbols := parser.Extract(key, string(content), entry.Language)

	si.mu.Lock()
	si.cache[key] = symbols
	si.mu.Unlock()

	return cloneSymbols(symbols)
}

// SearchSymbols returns up to limit symbols whose name fuzzily matches query,
// ordered by descending score. An empty kind matches all kinds. Returns
// nothing until the file index has completed its first scan.
func (si *SymbolIndex) SearchSymbols(ctx context.Context, query string, limit int, kind parser.Kind) []parser.Symbol {
	if !si.files.IsIndexed() {
		return nil
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}

	var results []parser.Symbol
	for _, sym := range si.aggregate(ctx) {
		if kind != "" && sym.Kind != kind {
			continue
		}
		score := ScoreSymbolName(query, sym.Name)
		if score <= 0 {
			continue
		}
		sym.Score = score
		results = append(results, sym)
	}

	sortSymbolsByScore(results)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// GetSymbol returns the first symbol whose fully qualified name equals fqn,
// or nil. Files are considered in enumeration order, so the result is stable
// across calls.
func (si *SymbolIndex) GetSymbol(ctx context.Context, fqn string) *parser.Symbol {
	if fqn == "" {
		return nil
	}
	for _, sym := range si.aggregate(ctx) {
		if sym.FullyQualifiedName == fqn {
			found := sym
			return &found
		}
	}
	return nil
}

// FindReferences resolves fqn to its definition and scans every indexed file
// for word-bounded occurrences of the symbol's simple name. The occurrence at
// the definition's file and line is flagged IsDefinition. Returns nothing if
// the symbol is unknown.
func (si *SymbolIndex) FindReferences(ctx context.Context, fqn string) []SymbolReference {
	def := si.GetSymbol(ctx, fqn)
	if def == nil {
		return nil
	}

	files := si.files.ListAllFiles()
	perFile := make(map[string][]SymbolReference, len(files))
	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for _, file := range files {
		path := file.Path
		group.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			refs := scanFileForReferences(path, def)
			if len(refs) > 0 {
				mu.Lock()
				perFile[path] = refs
				mu.Unlock()
			}
			return nil
		})
	}
	group.Wait()

	// Flatten in enumeration order for deterministic output.
	var results []SymbolReference
	for _, file := range files {
		results = append(results, perFile[file.Path]...)
	}
	return results
}

// InvalidateFile drops the cached symbols for path. The next GetSymbols call
// re-reads the file and re-parses. Change notifications must reach both this
// cache and the FileIndex; they are independent.
func (si *SymbolIndex) InvalidateFile(path string) {
	key := normalizePath(path)

	si.mu.Lock()
	delete(si.cache, key)
	si.mu.Unlock()
}

// InvalidateAll drops the whole cache.
func (si *SymbolIndex) InvalidateAll() {
	si.mu.Lock()
	si.cache = make(map[string][]parser.Symbol)
	si.mu.Unlock()
}

// CachedFileCount returns how many files currently have cached symbols.
func (si *SymbolIndex) CachedFileCount() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.cache)
}

// aggregate parses every indexed file (bounded parallelism, one worker per
// CPU) and returns all symbols flattened in file enumeration order. Each file
// is independent; a failed parse contributes nothing.
func (si *SymbolIndex) aggregate(ctx context.Context) []parser.Symbol {
	files := si.files.ListAllFiles()
	perFile := make(map[string][]parser.Symbol, len(files))
	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for _, file := range files {
		path := file.Path
		group.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			symbols := si.GetSymbols(gctx, path)
			if len(symbols) > 0 {
				mu.Lock()
				perFile[path] = symbols
				mu.Unlock()
			}
			return nil
		})
	}
	group.Wait()

	var all []parser.Symbol
	for _, file := range files {
		all = append(all, perFile[file.Path]...)
	}
	return all
}

// scanFileForReferences finds word-bounded occurrences of the definition's
// simple name in one file.
func scanFileForReferences(path string, def *parser.Symbol) []SymbolReference {
	content, err := readFileWithRetry(path)
	if err != nil {
		return nil
	}

	name := def.Name
	var refs []SymbolReference

	lines := strings.Split(string(content), "\n")
	for lineIdx, line := range lines {
		start := 0
		for {
			idx := strings.Index(line[start:], name)
			if idx < 0 {
				break
			}
			col := start + idx
			if isWordBounded(line, col, len(name)) {
				refs = append(refs, SymbolReference{
					FilePath:     path,
					Line:         lineIdx,
					Column:       col,
					LineContent:  strings.TrimSpace(line),
					IsDefinition: path == def.FilePath && lineIdx == def.Line,
				})
			}
			start = col + len(name)
		}
	}
	return refs
}

// isWordBounded reports whether line[col:col+length] is delimited by
// non-identifier characters (or the string edges) on both sides. This is what
// keeps a search for "Add" from matching inside "AddAll".
func isWordBounded(line string, col int, length int) bool {
	if col > 0 && isWordChar(line[col-1]) {
		return false
	}
	end := col + length
	if end < len(line) && isWordChar(line[end]) {
		return false
	}
	return true
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// sortSymbolsByScore orders by descending score; ties fall back to file path
// then line so repeated queries return identical orderings.
func sortSymbolsByScore(symbols []parser.Symbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].Score != symbols[j].Score {
			return symbols[i].Score > symbols[j].Score
		}
		if symbols[i].FilePath != symbols[j].FilePath {
			return symbols[i].FilePath < symbols[j].FilePath
		}
		return symbols[i].Line < symbols[j].Line
	})
}

func cloneSymbols(symbols []parser.Symbol) []parser.Symbol {
	if symbols == nil {
		return nil
	}
	out := make([]parser.Symbol, len(symbols))
	copy(out, symbols)
	return out
}

// readFileWithRetry reads a file, retrying once after a short delay if the
// first attempt fails (editors briefly lock files on Windows while saving).
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
