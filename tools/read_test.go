package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"codeintel/index"
)

func newReadHandler(t *testing.T, files map[string]string) (*ReadHandler, string) {
	t.Helper()
	fi, root := newToolWorkspace(t, files)

	ci, err := index.NewContentIndex()
	if err != nil {
		t.Fatalf("NewContentIndex: %v", err)
	}
	t.Cleanup(func() { ci.Close() })

	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := ci.IndexFile(abs, rel, content, "go"); err != nil {
			t.Fatalf("IndexFile %s: %v", rel, err)
		}
	}

	return &ReadHandler{FileIndex: fi, ContentIndex: ci, Logger: discardLogger()}, root
}

func Test_ReadHandler_EmptyPath(t *testing.T) {
	h, _ := newReadHandler(t, map[string]string{"main.go": "package main"})

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty filePath")
	}
}

func Test_ReadHandler_NotFound(t *testing.T) {
	h, _ := newReadHandler(t, map[string]string{"main.go": "package main"})

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: "missing.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for unknown file")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "File not found in index") {
		t.Errorf("expected not-found message, got:\n%s", text)
	}
}

func Test_ReadHandler_ReturnsNumberedContent(t *testing.T) {
	h, _ := newReadHandler(t, map[string]string{
		"src/main.go": "package main\n\nfunc main() {}\n",
	})

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: "src/main.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "src/main.go") {
		t.Errorf("expected header with path, got:\n%s", text)
	}
	if !strings.Contains(text, "1│ package main") {
		t.Errorf("expected numbered first line, got:\n%s", text)
	}
}
