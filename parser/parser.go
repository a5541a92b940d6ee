// Package parser extracts symbols from source files using per-language
// pattern matching. It is a textual approximation, not a compiler front end:
// there is no brace or indentation scope tracking, so members are attributed
// to the nearest type declared on an earlier line. Members interleaved with
// look-alike text in comments, or declared on the same line as a type, can be
// mis-attributed. Callers accept this in exchange for parsing any file in
// microseconds without a grammar.
package parser

import (
	"sort"
	"strings"

	"codeintel/language"
)

// Extract returns the symbols declared in content. Dispatch is by language
// identifier; unsupported languages yield an empty list. Extraction never
// panics out: a failure mid-file returns whatever symbols were already found.
func Extract(path string, content string, lang string) (symbols []Symbol) {
	defer func() {
		if r := recover(); r != nil {
			// Keep the partial result; a single odd file must not
			// take down a whole-index aggregation.
		}
	}()

	switch lang {
	case language.CSharp:
		symbols = extractCSharp(path, content)
	case language.TypeScript, language.JavaScript:
		symbols = extractTypeScript(path, content)
	case language.Python:
		symbols = extractPython(path, content)
	case language.Go:
		symbols = extractGo(path, content)
	default:
		return nil
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Line < symbols[j].Line
	})
	return symbols
}

// lineIndex converts byte offsets in a file to zero-based line/column pairs.
type lineIndex struct {
	starts []int // byte offset of each line start
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// position returns the zero-based (line, column) for a byte offset.
func (li *lineIndex) position(offset int) (int, int) {
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return line, offset - li.starts[line]
}

// lineAt returns the trimmed source text of a zero-based line.
func lineAt(lines []string, line int) string {
	if line < 0 || line >= len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line])
}

// docCommentAbove returns the trimmed text of a comment on the line directly
// above, if it starts with one of the given prefixes.
func docCommentAbove(lines []string, line int, prefixes ...string) string {
	text := lineAt(lines, line-1)
	for _, prefix := range prefixes {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return ""
}

// containerAt returns the candidate with the greatest line number strictly
// below memberLine, or nil. Candidates must be in ascending line order.
// This is the nearest-preceding-declaration heuristic: purely line-based,
// with no awareness of scopes closing.
func containerAt(candidates []Symbol, memberLine int) *Symbol {
	var found *Symbol
	for i := range candidates {
		if candidates[i].Line < memberLine {
			found = &candidates[i]
		} else {
			break
		}
	}
	return found
}

// qualify joins non-empty name parts with dots.
func qualify(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
