package parser

import (
	"testing"

	"codeintel/language"
)

func findSymbol(t *testing.T, symbols []Symbol, name string) Symbol {
	t.Helper()
	for _, s := range symbols {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("symbol %q not found in %d extracted symbols", name, len(symbols))
	return Symbol{}
}

func findSymbolKind(symbols []Symbol, name string, kind Kind) *Symbol {
	for i, s := range symbols {
		if s.Name == name && s.Kind == kind {
			return &symbols[i]
		}
	}
	return nil
}

func Test_Extract_UnsupportedLanguageReturnsEmpty(t *testing.T) {
	symbols := Extract("notes.txt", "AuthService Login whatever", language.PlainText)
	if len(symbols) != 0 {
		t.Errorf("expected no symbols for plaintext, got %d", len(symbols))
	}
}

func Test_Extract_EmptyContent(t *testing.T) {
	symbols := Extract("empty.cs", "", language.CSharp)
	if len(symbols) != 0 {
		t.Errorf("expected no symbols for empty file, got %d", len(symbols))
	}
}

func Test_Extract_SortedByLine(t *testing.T) {
	content := "package main\n\nfunc zebra() {}\n\ntype Apple struct{}\n\nfunc aardvark() {}\n"
	symbols := Extract("main.go", content, language.Go)
	for i := 1; i < len(symbols); i++ {
		if symbols[i].Line < symbols[i-1].Line {
			t.Fatalf("symbols not sorted by line: %d before %d", symbols[i-1].Line, symbols[i].Line)
		}
	}
}

func Test_LineIndex_Position(t *testing.T) {
	li := newLineIndex("abc\ndef\nghi")

	cases := []struct {
		offset, line, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{4, 1, 0},
		{6, 1, 2},
		{8, 2, 0},
	}
	for _, c := range cases {
		line, col := li.position(c.offset)
		if line != c.line || col != c.col {
			t.Errorf("position(%d) = (%d,%d), want (%d,%d)", c.offset, line, col, c.line, c.col)
		}
	}
}

func Test_ContainerAt_NearestPreceding(t *testing.T) {
	candidates := []Symbol{
		{Name: "First", Line: 2},
		{Name: "Second", Line: 10},
	}

	if got := containerAt(candidates, 5); got == nil || got.Name != "First" {
		t.Errorf("expected First for line 5, got %v", got)
	}
	if got := containerAt(candidates, 12); got == nil || got.Name != "Second" {
		t.Errorf("expected Second for line 12, got %v", got)
	}
	if got := containerAt(candidates, 1); got != nil {
		t.Errorf("expected no container before the first candidate, got %v", got)
	}
	// A member on the same line as a type has no preceding type; behavior for
	// that layout is undefined by design, but it must not pick the same line.
	if got := containerAt(candidates, 2); got != nil {
		t.Errorf("expected no container at the declaration line itself, got %v", got)
	}
}
