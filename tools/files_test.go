package tools

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codeintel/ignore"
	"codeintel/index"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newToolWorkspace builds a scanned FileIndex over a temp directory
// populated with the given relative path -> content files.
func newToolWorkspace(t *testing.T, files map[string]string) (*index.FileIndex, string) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	fi := index.NewFileIndex(ignore.NewMatcher(ignore.MatcherOptions{RootDir: root}))
	if err := fi.IndexWorkspace(context.Background(), root); err != nil {
		t.Fatalf("IndexWorkspace: %v", err)
	}
	return fi, root
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected non-empty result content")
	}
	return result.Content[0].(*mcp.TextContent).Text
}

func Test_FilesHandler_FuzzySearch(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{
		"src/Auth.cs": "public class AuthService {}",
		"src/main.go": "package main",
	})
	h := &FilesHandler{FileIndex: fi, Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Query: "auth"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "src/Auth.cs") {
		t.Errorf("expected result to contain src/Auth.cs, got:\n%s", text)
	}
	if strings.Contains(text, "main.go") {
		t.Errorf("expected result to NOT contain main.go, got:\n%s", text)
	}
}

func Test_FilesHandler_EmptyQueryListsAll(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{
		"a.go": "package a",
		"b.go": "package b",
	})
	h := &FilesHandler{FileIndex: fi, Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "a.go") || !strings.Contains(text, "b.go") {
		t.Errorf("expected all files in listing, got:\n%s", text)
	}
}

func Test_FilesHandler_NoResults(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{"main.go": "package main"})
	h := &FilesHandler{FileIndex: fi, Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Query: "zzz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success (no error), got error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "No files matched") {
		t.Errorf("expected 'No files matched', got:\n%s", text)
	}
}
