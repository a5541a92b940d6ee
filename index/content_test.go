package index

import (
	"testing"
)

func newTestContentIndex(t *testing.T) *ContentIndex {
	t.Helper()
	ci, err := NewContentIndex()
	if err != nil {
		t.Fatalf("NewContentIndex: %v", err)
	}
	t.Cleanup(func() { ci.Close() })
	return ci
}

func indexSampleFiles(t *testing.T, ci *ContentIndex) {
	t.Helper()
	samples := []struct {
		abs, rel, content, lang string
	}{
		{"/ws/src/auth.go", "src/auth.go", "package auth\n\n// Login validates credentials.\nfunc Login(user string) error {\n\treturn nil\n}\n", "go"},
		{"/ws/src/session.go", "src/session.go", "package auth\n\nfunc NewSession(user string) *Session {\n\treturn &Session{user: user}\n}\n", "go"},
		{"/ws/docs/readme.md", "docs/readme.md", "# Readme\n\nCall Login before anything else.\n", "plaintext"},
	}
	for _, s := range samples {
		if err := ci.IndexFile(s.abs, s.rel, s.content, s.lang); err != nil {
			t.Fatalf("IndexFile %s: %v", s.rel, err)
		}
	}
}

func Test_ContentIndex_IndexAndSearch(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	if ci.DocumentCount() != 3 {
		t.Errorf("expected 3 documents, got %d", ci.DocumentCount())
	}

	results, total, err := ci.Search(ContentSearchOptions{Query: "Login"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected matches in 2 files, got %d", len(results))
	}
	if total < 2 {
		t.Errorf("expected at least 2 total line matches, got %d", total)
	}
}

func Test_ContentIndex_Search_FileGlob(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	results, _, err := ci.Search(ContentSearchOptions{Query: "Login", FileGlob: "src/**"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range results {
		if r.RelativePath == "docs/readme.md" {
			t.Error("glob src/** must exclude docs/readme.md")
		}
	}
	if len(results) != 1 {
		t.Errorf("expected 1 file under src/ to match, got %d", len(results))
	}
}

func Test_ContentIndex_Search_PhraseQuery(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	results, _, err := ci.Search(ContentSearchOptions{Query: `"validates credentials"`})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].RelativePath != "src/auth.go" {
		t.Fatalf("expected the phrase to match only src/auth.go, got %+v", results)
	}
}

func Test_ContentIndex_Search_ContextLines(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	results, _, err := ci.Search(ContentSearchOptions{Query: "Login", FileGlob: "src/**", ContextLines: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || len(results[0].Matches) == 0 {
		t.Fatal("expected at least one match")
	}
	m := results[0].Matches[0]
	if len(m.ContextBefore) == 0 && len(m.ContextAfter) == 0 {
		t.Error("expected surrounding context lines to be attached")
	}
}

func Test_ContentIndex_RemoveFile(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	if err := ci.RemoveFile("/ws/src/auth.go"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if ci.DocumentCount() != 2 {
		t.Errorf("expected 2 documents after removal, got %d", ci.DocumentCount())
	}
	if _, ok := ci.GetFileContent("/ws/src/auth.go"); ok {
		t.Error("expected stored content to be dropped with the document")
	}
}

func Test_ContentIndex_GetFileContent(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	content, ok := ci.GetFileContent("/ws/docs/readme.md")
	if !ok {
		t.Fatal("expected stored content for readme.md")
	}
	if content == "" {
		t.Error("expected non-empty content")
	}

	if _, ok := ci.GetFileContent("/ws/nope.txt"); ok {
		t.Error("expected miss for a file that was never indexed")
	}
}

func Test_ContentIndex_ReindexReplacesContent(t *testing.T) {
	ci := newTestContentIndex(t)

	if err := ci.IndexFile("/ws/a.go", "a.go", "package alpha\n", "go"); err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	if err := ci.IndexFile("/ws/a.go", "a.go", "package beta\n", "go"); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	if ci.DocumentCount() != 1 {
		t.Errorf("expected reindex to replace, not duplicate; got %d documents", ci.DocumentCount())
	}
	results, _, err := ci.Search(ContentSearchOptions{Query: "alpha"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Error("expected the old content to be unsearchable after reindex")
	}
}

func Test_ContentIndex_Clear(t *testing.T) {
	ci := newTestContentIndex(t)
	indexSampleFiles(t, ci)

	if err := ci.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if ci.DocumentCount() != 0 {
		t.Errorf("expected empty index after Clear, got %d documents", ci.DocumentCount())
	}

	// Index remains usable after Clear.
	if err := ci.IndexFile("/ws/b.go", "b.go", "package b\n", "go"); err != nil {
		t.Fatalf("IndexFile after Clear: %v", err)
	}
	if ci.DocumentCount() != 1 {
		t.Errorf("expected 1 document after re-adding, got %d", ci.DocumentCount())
	}
}
