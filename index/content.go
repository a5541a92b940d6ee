package index

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
)

// ContentIndex provides full-text search over file contents using an
// in-memory Bleve index. It complements the symbol index: symbols answer
// "where is this declared", content search answers "where does this text
// appear with ranking".
type ContentIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	// contents keeps raw text for line-level result extraction, keyed like
	// the file index by absolute canonical path.
	contents map[string]storedFile
}

type storedFile struct {
	relativePath string
	content      string
}

// contentDocument is the document shape stored in Bleve.
type contentDocument struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Language string `json:"language"`
}

// NewContentIndex creates an empty in-memory content index.
func NewContentIndex() (*ContentIndex, error) {
	bleveIndex, err := bleve.NewMemOnly(buildContentMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}

	return &ContentIndex{
		index:    bleveIndex,
		contents: make(map[string]storedFile),
	}, nil
}

// buildContentMapping creates the Bleve mapping for code content.
func buildContentMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	contentField := bleve.NewTextFieldMapping()
	contentField.Store = false // raw text lives in contents, not in Bleve
	contentField.IncludeInAll = true
	docMapping.AddFieldMappingsAt("content", contentField)

	pathField := bleve.NewTextFieldMapping()
	pathField.Store = true
	pathField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("path", pathField)

	langField := bleve.NewKeywordFieldMapping()
	langField.Store = true
	langField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("language", langField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexFile adds or updates a file's content.
func (ci *ContentIndex) IndexFile(absolutePath string, relativePath string, content string, lang string) error {
	key := normalizePath(absolutePath)

	ci.mu.Lock()
	defer ci.mu.Unlock()

	ci.contents[key] = storedFile{relativePath: relativePath, content: content}

	doc := contentDocument{Content: content, Path: relativePath, Language: lang}
	if err := ci.index.Index(key, doc); err != nil {
		return fmt.Errorf("indexing content of %s: %w", relativePath, err)
	}
	return nil
}

// RemoveFile removes a file's content from the index.
func (ci *ContentIndex) RemoveFile(absolutePath string) error {
	key := normalizePath(absolutePath)

	ci.mu.Lock()
	defer ci.mu.Unlock()

	delete(ci.contents, key)
	if err := ci.index.Delete(key); err != nil {
		return fmt.Errorf("removing %s from content index: %w", key, err)
	}
	return nil
}

// LineMatch is a single matched line with optional surrounding context.
type LineMatch struct {
	LineNumber    int // 1-based, for display
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

// ContentSearchResult groups the matches within one file.
type ContentSearchResult struct {
	RelativePath string
	Matches      []LineMatch
}

// ContentSearchOptions configures a content search.
type ContentSearchOptions struct {
	Query        string
	FileGlob     string // doublestar pattern over relative paths
	MaxResults   int
	ContextLines int
}

// Search performs a ranked full-text search across all indexed content.
// Query forms: plain text (word-level match), "quoted" (exact phrase),
// /regex/ (regular expression).
func (ci *ContentIndex) Search(options ContentSearchOptions) ([]ContentSearchResult, int, error) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	if options.MaxResults <= 0 {
		options.MaxResults = 50
	}
	if options.ContextLines < 0 {
		options.ContextLines = 0
	}

	searchRequest := bleve.NewSearchRequest(buildContentQuery(options.Query))
	searchRequest.Size = options.MaxResults * 5 // results get filtered and grouped by file
	searchRequest.Fields = []string{"path", "language"}

	searchResults, err := ci.index.Search(searchRequest)
	if err != nil {
		return nil, 0, fmt.Errorf("searching content index: %w", err)
	}

	var results []ContentSearchResult
	totalMatches := 0

	for _, hit := range searchResults.Hits {
		stored, ok := ci.contents[hit.ID]
		if !ok {
			continue
		}

		if options.FileGlob != "" {
			pattern := strings.ReplaceAll(options.FileGlob, "\\", "/")
			matched, matchErr := doublestar.Match(pattern, stored.relativePath)
			if matchErr != nil || !matched {
				continue
			}
		}

		lineMatches := findMatchingLines(stored.content, options.Query, options.ContextLines)
		if len(lineMatches) == 0 {
			continue
		}
		totalMatches += len(lineMatches)

		results = append(results, ContentSearchResult{
			RelativePath: stored.relativePath,
			Matches:      lineMatches,
		})
		if len(results) >= options.MaxResults {
			break
		}
	}

	return results, totalMatches, nil
}

// buildContentQuery parses the query string into a Bleve query.
func buildContentQuery(queryString string) query.Query {
	queryString = strings.TrimSpace(queryString)

	if strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") && len(queryString) > 2 {
		return bleve.NewRegexpQuery(queryString[1 : len(queryString)-1])
	}
	if strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"") && len(queryString) > 2 {
		return bleve.NewMatchPhraseQuery(queryString[1 : len(queryString)-1])
	}
	return bleve.NewMatchQuery(queryString)
}

// findMatchingLines locates the query term line by line and attaches context.
func findMatchingLines(content string, queryString string, contextLines int) []LineMatch {
	lines := strings.Split(content, "\n")
	term := strings.ToLower(stripQuerySyntax(queryString))

	var matches []LineMatch
	for lineIdx, line := range lines {
		if !strings.Contains(strings.ToLower(line), term) {
			continue
		}

		match := LineMatch{
			LineNumber: lineIdx + 1,
			LineText:   line,
		}

		if contextLines > 0 {
			startCtx := lineIdx - contextLines
			if startCtx < 0 {
				startCtx = 0
			}
			match.ContextBefore = append(match.ContextBefore, lines[startCtx:lineIdx]...)

			endCtx := lineIdx + contextLines + 1
			if endCtx > len(lines) {
				endCtx = len(lines)
			}
			match.ContextAfter = append(match.ContextAfter, lines[lineIdx+1:endCtx]...)
		}

		matches = append(matches, match)
	}
	return matches
}

// stripQuerySyntax removes phrase quotes or regex delimiters so line-level
// matching sees the raw term.
func stripQuerySyntax(queryString string) string {
	queryString = strings.TrimSpace(queryString)
	if len(queryString) > 2 {
		if (strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/")) ||
			(strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"")) {
			return queryString[1 : len(queryString)-1]
		}
	}
	return queryString
}

// GetFileContent returns the raw content of an indexed file.
func (ci *ContentIndex) GetFileContent(absolutePath string) (string, bool) {
	key := normalizePath(absolutePath)

	ci.mu.RLock()
	defer ci.mu.RUnlock()

	stored, ok := ci.contents[key]
	return stored.content, ok
}

// DocumentCount returns the number of documents currently indexed.
func (ci *ContentIndex) DocumentCount() uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	count, _ := ci.index.DocCount()
	return count
}

// Clear drops all documents and recreates the index.
func (ci *ContentIndex) Clear() error {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	if err := ci.index.Close(); err != nil {
		return fmt.Errorf("closing old content index: %w", err)
	}

	newIndex, err := bleve.NewMemOnly(buildContentMapping())
	if err != nil {
		return fmt.Errorf("recreating content index: %w", err)
	}

	ci.index = newIndex
	ci.contents = make(map[string]storedFile)
	return nil
}

// Close releases the Bleve index.
func (ci *ContentIndex) Close() error {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	return ci.index.Close()
}
