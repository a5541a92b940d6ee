package tools

import (
	"fmt"
	"strings"
	"time"

	"codeintel/index"
	"codeintel/parser"
)

// FormatFileEntries formats file search results as human-readable text.
// Entries with a non-zero score include it, so ranked fuzzy results and
// plain glob listings share one formatter.
func FormatFileEntries(entries []index.FileEntry, nameOnly bool) string {
	if len(entries) == 0 {
		return "No files matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d files:\n\n", len(entries)))

	for _, entry := range entries {
		if nameOnly {
			builder.WriteString(entry.RelativePath)
			builder.WriteString("\n")
			continue
		}
		builder.WriteString(fmt.Sprintf("  %s  (%s, %s)",
			entry.RelativePath,
			entry.Language,
			formatFileSize(entry.SizeBytes),
		))
		if entry.Score > 0 {
			builder.WriteString(fmt.Sprintf("  score=%.2f", entry.Score))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// FormatSymbols formats symbol search results, one symbol per line.
func FormatSymbols(symbols []parser.Symbol) string {
	if len(symbols) == 0 {
		return "No symbols matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d symbols:\n\n", len(symbols)))

	for _, sym := range symbols {
		builder.WriteString(fmt.Sprintf("  %s  (%s)  %s:%d",
			sym.FullyQualifiedName,
			sym.Kind,
			sym.FilePath,
			sym.Line+1,
		))
		if sym.Signature != "" {
			builder.WriteString(fmt.Sprintf("\n      %s", sym.Signature))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// FormatOutline renders a file's symbols as an indented outline. Symbols
// are already in line order; container members are indented one level.
func FormatOutline(filePath string, symbols []parser.Symbol) string {
	if len(symbols) == 0 {
		return fmt.Sprintf("No symbols found in %s.", filePath)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s ──\n", filePath))

	for _, sym := range symbols {
		indent := "  "
		if sym.ContainerName != "" {
			indent = "    "
		}
		builder.WriteString(fmt.Sprintf("%s%d: %s (%s)\n", indent, sym.Line+1, sym.Name, sym.Kind))
	}

	return builder.String()
}

// FormatReferences formats find-references results grouped in file order,
// marking the definition line.
func FormatReferences(fqn string, refs []index.SymbolReference) string {
	if len(refs) == 0 {
		return fmt.Sprintf("No references found for %s.", fqn)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d references to %s:\n\n", len(refs), fqn))

	lastFile := ""
	for _, ref := range refs {
		if ref.FilePath != lastFile {
			if lastFile != "" {
				builder.WriteString("\n")
			}
			builder.WriteString(fmt.Sprintf("── %s ──\n", ref.FilePath))
			lastFile = ref.FilePath
		}
		marker := " "
		if ref.IsDefinition {
			marker = "*"
		}
		builder.WriteString(fmt.Sprintf("%s %d: %s\n", marker, ref.Line+1, ref.LineContent))
	}

	return builder.String()
}

// FormatContentResults formats content search results grouped by file with
// line numbers and optional context.
func FormatContentResults(results []index.ContentSearchResult, totalMatches int) string {
	if len(results) == 0 {
		return "No matches found."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d matches in %d files:\n\n", totalMatches, len(results)))

	for i, result := range results {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("── %s ──\n", result.RelativePath))

		for _, match := range result.Matches {
			for _, ctxLine := range match.ContextBefore {
				builder.WriteString(fmt.Sprintf("  %s\n", ctxLine))
			}
			builder.WriteString(fmt.Sprintf("  %d: %s\n", match.LineNumber, match.LineText))
			for _, ctxLine := range match.ContextAfter {
				builder.WriteString(fmt.Sprintf("  %s\n", ctxLine))
			}
		}
	}

	return builder.String()
}

// FormatFileContent formats a file's content with a header and numbered
// lines, similar to the built-in Read tool.
func FormatFileContent(filePath string, content string) string {
	lines := strings.Split(content, "\n")
	lineCount := len(lines)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (%d lines) ──\n", filePath, lineCount))

	width := len(fmt.Sprintf("%d", lineCount))
	for i, line := range lines {
		builder.WriteString(fmt.Sprintf("%*d│ %s\n", width, i+1, line))
	}

	return builder.String()
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
