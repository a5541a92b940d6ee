package language

import (
	"path/filepath"
	"strings"
)

// Language identifiers used throughout the index. Detection never returns a
// value outside this file, and the symbol parser dispatches on these strings.
const (
	CSharp     = "csharp"
	TypeScript = "typescript"
	JavaScript = "javascript"
	Python     = "python"
	Go         = "go"
	PlainText  = "plaintext"
)

// extensionToLanguage maps file extensions (without dot) to language identifiers.
var extensionToLanguage = map[string]string{
	// Go
	"go": Go,
	// JavaScript / TypeScript
	"js": JavaScript, "jsx": JavaScript, "mjs": JavaScript, "cjs": JavaScript,
	"ts": TypeScript, "tsx": TypeScript, "mts": TypeScript, "cts": TypeScript,
	// Python
	"py": Python, "pyi": Python, "pyw": Python,
	// C#
	"cs": CSharp, "csx": CSharp,
	// Rust
	"rs": "rust",
	// Java / Kotlin
	"java": "java", "kt": "kotlin", "kts": "kotlin",
	// C / C++
	"c": "c", "h": "c",
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp", "hpp": "cpp", "hxx": "cpp",
	// Swift
	"swift": "swift",
	// Ruby
	"rb": "ruby", "erb": "ruby",
	// PHP
	"php": "php",
	// Shell
	"sh": "shell", "bash": "shell", "zsh": "shell", "fish": "shell",
	"ps1": "powershell", "psm1": "powershell", "psd1": "powershell",
	// Web
	"html": "html", "htm": "html",
	"css": "css", "scss": "scss", "sass": "sass", "less": "less",
	// Data / Config
	"json": "json", "jsonc": "json",
	"yaml": "yaml", "yml": "yaml",
	"toml": "toml",
	"xml": "xml", "xsl": "xml", "xslt": "xml",
	"ini": "ini",
	// Markup
	"md": "markdown", "mdx": "markdown",
	"rst": "restructuredtext",
	// SQL
	"sql": "sql",
	// GraphQL
	"graphql": "graphql", "gql": "graphql",
	// Protocol Buffers
	"proto": "protobuf",
	// Terraform
	"tf": "terraform", "tfvars": "terraform",
	// Lua
	"lua": "lua",
	// Scala
	"scala": "scala",
	// Elixir / Erlang
	"ex": "elixir", "exs": "elixir",
	"erl": "erlang", "hrl": "erlang",
	// Haskell
	"hs": "haskell",
	// Zig
	"zig": "zig",
	// Vue / Svelte
	"vue": "vue", "svelte": "svelte",
	// Misc
	"txt": PlainText,
	"csv": "csv",
	"bat": "batch", "cmd": "batch",
}

// Detect returns the language identifier for a file path based on its
// extension. Files with no recognized extension fall back to "plaintext".
func Detect(filePath string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if ext == "" {
		// Filename-based detection for extension-less files
		base := strings.ToLower(filepath.Base(filePath))
		switch base {
		case "makefile", "gnumakefile":
			return "makefile"
		case "dockerfile":
			return "dockerfile"
		case "gemfile", "rakefile":
			return "ruby"
		}
		return PlainText
	}

	if lang, ok := extensionToLanguage[ext]; ok {
		return lang
	}
	return PlainText
}
