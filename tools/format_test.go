package tools

import (
	"strings"
	"testing"
	"time"

	"codeintel/index"
	"codeintel/parser"
)

// --- formatFileSize ---

func Test_FormatFileSize_Bytes(t *testing.T) {
	got := formatFileSize(500)
	if got != "500 B" {
		t.Errorf("expected '500 B', got '%s'", got)
	}
}

func Test_FormatFileSize_Kilobytes(t *testing.T) {
	got := formatFileSize(2048)
	if got != "2.0 KB" {
		t.Errorf("expected '2.0 KB', got '%s'", got)
	}
}

func Test_FormatFileSize_Megabytes(t *testing.T) {
	got := formatFileSize(3 * 1024 * 1024)
	if got != "3.0 MB" {
		t.Errorf("expected '3.0 MB', got '%s'", got)
	}
}

// --- formatDuration ---

func Test_FormatDuration(t *testing.T) {
	if got := formatDuration(42 * time.Second); got != "42s" {
		t.Errorf("expected '42s', got '%s'", got)
	}
	if got := formatDuration(95 * time.Second); got != "1m35s" {
		t.Errorf("expected '1m35s', got '%s'", got)
	}
	if got := formatDuration(2*time.Hour + 5*time.Minute); got != "2h5m" {
		t.Errorf("expected '2h5m', got '%s'", got)
	}
}

// --- FormatFileEntries ---

func Test_FormatFileEntries_Empty(t *testing.T) {
	got := FormatFileEntries(nil, false)
	if got != "No files matched." {
		t.Errorf("expected 'No files matched.', got '%s'", got)
	}
}

func Test_FormatFileEntries_WithMetadata(t *testing.T) {
	entries := []index.FileEntry{
		{
			RelativePath: "src/app.go",
			Language:     "go",
			SizeBytes:    2048,
			Score:        0.9,
		},
	}

	got := FormatFileEntries(entries, false)

	if !strings.Contains(got, "src/app.go") {
		t.Errorf("expected file path, got:\n%s", got)
	}
	if !strings.Contains(got, "go") {
		t.Errorf("expected language, got:\n%s", got)
	}
	if !strings.Contains(got, "2.0 KB") {
		t.Errorf("expected formatted size, got:\n%s", got)
	}
	if !strings.Contains(got, "score=0.90") {
		t.Errorf("expected score, got:\n%s", got)
	}
}

func Test_FormatFileEntries_NameOnly(t *testing.T) {
	entries := []index.FileEntry{
		{RelativePath: "src/app.go", Language: "go", SizeBytes: 2048},
	}

	got := FormatFileEntries(entries, true)

	if !strings.Contains(got, "src/app.go") {
		t.Errorf("expected file path, got:\n%s", got)
	}
	if strings.Contains(got, "2.0 KB") {
		t.Errorf("nameOnly should not include metadata, got:\n%s", got)
	}
}

// --- FormatSymbols ---

func Test_FormatSymbols_Empty(t *testing.T) {
	got := FormatSymbols(nil)
	if got != "No symbols matched." {
		t.Errorf("expected 'No symbols matched.', got '%s'", got)
	}
}

func Test_FormatSymbols_WithSignature(t *testing.T) {
	symbols := []parser.Symbol{
		{
			Name:               "Login",
			FullyQualifiedName: "AuthService.Login",
			Kind:               parser.KindMethod,
			FilePath:           "/ws/src/Auth.cs",
			Line:               4,
			Signature:          "public bool Login(string user, string password)",
		},
	}

	got := FormatSymbols(symbols)

	if !strings.Contains(got, "AuthService.Login") {
		t.Errorf("expected fully qualified name, got:\n%s", got)
	}
	if !strings.Contains(got, "(method)") {
		t.Errorf("expected kind, got:\n%s", got)
	}
	if !strings.Contains(got, "Auth.cs:5") {
		t.Errorf("expected 1-based display line, got:\n%s", got)
	}
	if !strings.Contains(got, "public bool Login") {
		t.Errorf("expected signature, got:\n%s", got)
	}
}

// --- FormatReferences ---

func Test_FormatReferences_MarksDefinition(t *testing.T) {
	refs := []index.SymbolReference{
		{FilePath: "/ws/calc.cs", Line: 2, LineContent: "public int Add(int a, int b)", IsDefinition: true},
		{FilePath: "/ws/app.cs", Line: 5, LineContent: "var sum = c.Add(1, 2);"},
	}

	got := FormatReferences("Calculator.Add", refs)

	if !strings.Contains(got, "2 references to Calculator.Add") {
		t.Errorf("expected header, got:\n%s", got)
	}
	if !strings.Contains(got, "* 3: public int Add") {
		t.Errorf("expected definition marker on 1-based line, got:\n%s", got)
	}
	if !strings.Contains(got, "  6: var sum") {
		t.Errorf("expected unmarked usage line, got:\n%s", got)
	}
}

// --- FormatContentResults ---

func Test_FormatContentResults_NoMatches(t *testing.T) {
	got := FormatContentResults(nil, 0)
	if got != "No matches found." {
		t.Errorf("expected 'No matches found.', got '%s'", got)
	}
}

func Test_FormatContentResults_WithContext(t *testing.T) {
	results := []index.ContentSearchResult{
		{
			RelativePath: "main.go",
			Matches: []index.LineMatch{
				{
					LineNumber:    5,
					LineText:      `fmt.Println("hello")`,
					ContextBefore: []string{"func main() {"},
					ContextAfter:  []string{"}"},
				},
			},
		},
	}

	got := FormatContentResults(results, 1)

	if !strings.Contains(got, "1 matches in 1 files") {
		t.Errorf("expected header with match/file counts, got:\n%s", got)
	}
	if !strings.Contains(got, `5: fmt.Println("hello")`) {
		t.Errorf("expected matching line with line number, got:\n%s", got)
	}
	if !strings.Contains(got, "func main() {") {
		t.Errorf("expected context before, got:\n%s", got)
	}
}

// --- FormatFileContent ---

func Test_FormatFileContent_NumbersLines(t *testing.T) {
	content := "line one\nline two\nline three"
	got := FormatFileContent("notes.txt", content)

	if !strings.Contains(got, "notes.txt (3 lines)") {
		t.Errorf("expected header with line count, got:\n%s", got)
	}
	if !strings.Contains(got, "1│ line one") {
		t.Errorf("expected numbered first line, got:\n%s", got)
	}
	if !strings.Contains(got, "3│ line three") {
		t.Errorf("expected numbered last line, got:\n%s", got)
	}
}

// --- FormatOutline ---

func Test_FormatOutline_IndentsMembers(t *testing.T) {
	symbols := []parser.Symbol{
		{Name: "Calculator", Kind: parser.KindClass, Line: 0},
		{Name: "Add", Kind: parser.KindMethod, Line: 2, ContainerName: "Calculator"},
	}

	got := FormatOutline("calc.cs", symbols)

	if !strings.Contains(got, "  1: Calculator (class)") {
		t.Errorf("expected top-level entry, got:\n%s", got)
	}
	if !strings.Contains(got, "    3: Add (method)") {
		t.Errorf("expected indented member entry, got:\n%s", got)
	}
}
