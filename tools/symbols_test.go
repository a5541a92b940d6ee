package tools

import (
	"context"
	"strings"
	"testing"

	"codeintel/index"
)

const authSample = `namespace Acme.Auth
{
    public class AuthService
    {
        public bool Login(string user, string password)
        {
            return true;
        }
    }
}
`

func Test_SymbolsHandler_EmptyQuery(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{"a.cs": authSample})
	h := &SymbolsHandler{SymbolIndex: index.NewSymbolIndex(fi), Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, SymbolsArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty query")
	}
}

func Test_SymbolsHandler_FindsMethod(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{"src/Auth.cs": authSample})
	h := &SymbolsHandler{SymbolIndex: index.NewSymbolIndex(fi), Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, SymbolsArgs{Query: "login"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "AuthService.Login") {
		t.Errorf("expected fully qualified match, got:\n%s", text)
	}
	if !strings.Contains(text, "(method)") {
		t.Errorf("expected method kind, got:\n%s", text)
	}
}

func Test_SymbolsHandler_KindFilter(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{"src/Auth.cs": authSample})
	h := &SymbolsHandler{SymbolIndex: index.NewSymbolIndex(fi), Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, SymbolsArgs{Query: "auth", Kind: "class"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "AuthService") {
		t.Errorf("expected class match under kind filter, got:\n%s", text)
	}
	if strings.Contains(text, "(method)") {
		t.Errorf("kind filter leaked methods, got:\n%s", text)
	}
}

func Test_RefsHandler_UnknownSymbol(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{"src/Auth.cs": authSample})
	h := &RefsHandler{SymbolIndex: index.NewSymbolIndex(fi), Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, RefsArgs{Symbol: "Nope.Never"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for unknown symbol")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Symbol not found") {
		t.Errorf("expected 'Symbol not found', got:\n%s", text)
	}
}

func Test_RefsHandler_FindsReferences(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{
		"src/Auth.cs": authSample,
		"src/App.cs": `public class App
{
    public void Run(AuthService auth)
    {
        auth.Login("user", "pass");
    }
}
`,
	})
	h := &RefsHandler{SymbolIndex: index.NewSymbolIndex(fi), Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, RefsArgs{Symbol: "Acme.Auth.AuthService.Login"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "App.cs") {
		t.Errorf("expected the call site file, got:\n%s", text)
	}
	if !strings.Contains(text, "*") {
		t.Errorf("expected a definition marker, got:\n%s", text)
	}
}

func Test_OutlineHandler_ListsFileSymbols(t *testing.T) {
	fi, _ := newToolWorkspace(t, map[string]string{"src/Auth.cs": authSample})
	h := &OutlineHandler{
		FileIndex:   fi,
		SymbolIndex: index.NewSymbolIndex(fi),
		Logger:      discardLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, OutlineArgs{FilePath: "src/Auth.cs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "AuthService (class)") {
		t.Errorf("expected class in outline, got:\n%s", text)
	}
	if !strings.Contains(text, "Login (method)") {
		t.Errorf("expected method in outline, got:\n%s", text)
	}
}
