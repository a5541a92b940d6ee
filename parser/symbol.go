package parser

// Kind classifies an extracted symbol, following the LSP symbol categories.
type Kind string

const (
	KindFile          Kind = "file"
	KindNamespace     Kind = "namespace"
	KindClass         Kind = "class"
	KindInterface     Kind = "interface"
	KindStruct        Kind = "struct"
	KindEnum          Kind = "enum"
	KindMethod        Kind = "method"
	KindProperty      Kind = "property"
	KindField         Kind = "field"
	KindConstructor   Kind = "constructor"
	KindEnumMember    Kind = "enummember"
	KindEvent         Kind = "event"
	KindVariable      Kind = "variable"
	KindConstant      Kind = "constant"
	KindTypeParameter Kind = "typeparameter"
)

// Symbol is one extracted declaration. It is a value computed from file
// content; it holds no reference back to the index that produced it.
type Symbol struct {
	Name               string  // Simple name (e.g. "Login")
	FullyQualifiedName string  // Dotted container chain (e.g. "Auth.AuthService.Login")
	Kind               Kind    // Symbol category
	FilePath           string  // Absolute path of the defining file
	Line               int     // Zero-based line of the declaration
	Column             int     // Zero-based column of the name
	Signature          string  // Rendered declaration line, trimmed
	Documentation      string  // Adjacent doc comment, if any
	ContainerName      string  // Simple name of the immediately enclosing symbol
	Score              float64 // Relevance, set only on search results
}
