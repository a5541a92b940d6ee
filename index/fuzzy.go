package index

import (
	"strings"
	"unicode"
)

// ScoreFileName rates how well query matches a file name, in [0, 1].
// Tiers: exact match (case-insensitive) 1.0, substring 0.9, otherwise a
// subsequence match scored by contiguity, separator-boundary alignment, and
// target brevity. A query that is not a subsequence of the name scores 0.
func ScoreFileName(query string, fileName string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	target := strings.ToLower(fileName)

	if target == q {
		return 1.0
	}
	if strings.Contains(target, q) {
		return 0.9
	}

	longestRun, boundaryHits, ok := matchSubsequence(q, target, isPathBoundary(target))
	if !ok {
		return 0
	}

	queryLen := float64(len([]rune(q)))
	lengthFactor := 1.0 - minFloat(float64(len([]rune(target)))/100.0, 1.0)
	return 0.3 +
		0.4*(float64(longestRun)/queryLen) +
		0.2*(float64(boundaryHits)/queryLen) +
		0.1*lengthFactor
}

// ScoreSymbolName rates how well query matches a symbol name, in [0, 1].
// Tiers: exact 1.0, prefix 0.95, substring 0.85, otherwise a subsequence
// match that rewards contiguity and camelCase boundary alignment.
func ScoreSymbolName(query string, symbolName string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	target := strings.ToLower(symbolName)

	if target == q {
		return 1.0
	}
	if strings.HasPrefix(target, q) {
		return 0.95
	}
	if strings.Contains(target, q) {
		return 0.85
	}

	// camelCase detection needs the original casing of the symbol name.
	original := []rune(symbolName)
	boundary := func(pos int) bool {
		if pos <= 0 || pos >= len(original) {
			return false
		}
		return unicode.IsUpper(original[pos]) && unicode.IsLower(original[pos-1])
	}

	longestRun, boundaryHits, ok := matchSubsequence(q, target, boundary)
	if !ok {
		return 0
	}

	queryLen := float64(len([]rune(q)))
	lengthFactor := 1.0 - minFloat(float64(len(original))/50.0, 1.0)
	return 0.3 +
		0.4*(float64(longestRun)/queryLen) +
		0.2*(float64(boundaryHits)/queryLen) +
		0.1*lengthFactor
}

// matchSubsequence walks target advancing a cursor over query whenever the
// runes match. It reports the longest run of consecutive matches and how many
// matches landed on a boundary position. The match is all-or-nothing: if the
// cursor does not reach the end of query, ok is false.
func matchSubsequence(query string, target string, isBoundary func(pos int) bool) (longestRun int, boundaryHits int, ok bool) {
	queryRunes := []rune(query)
	targetRunes := []rune(target)

	queryPos := 0
	currentRun := 0
	lastMatchPos := -2

	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] != queryRunes[queryPos] {
			continue
		}

		if targetPos == lastMatchPos+1 {
			currentRun++
		} else {
			currentRun = 1
		}
		if currentRun > longestRun {
			longestRun = currentRun
		}

		if isBoundary(targetPos) {
			boundaryHits++
		}

		lastMatchPos = targetPos
		queryPos++
	}

	return longestRun, boundaryHits, queryPos == len(queryRunes)
}

// isPathBoundary reports whether a position in a lower-cased file name sits
// at the start or immediately after a path/word separator.
func isPathBoundary(target string) func(pos int) bool {
	runes := []rune(target)
	return func(pos int) bool {
		if pos == 0 {
			return true
		}
		if pos >= len(runes) {
			return false
		}
		switch runes[pos-1] {
		case '/', '\\', '_', '-', '.':
			return true
		}
		return false
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
