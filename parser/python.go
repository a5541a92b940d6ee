package parser

import (
	"regexp"
	"strings"
)

var (
	pyClassRe    = regexp.MustCompile(`(?m)^[ \t]*class[ \t]+([A-Za-z_]\w*)`)
	pyDefRe      = regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?def[ \t]+([A-Za-z_]\w*)`)
	pyConstantRe = regexp.MustCompile(`(?m)^([A-Z_][A-Z0-9_]*)[ \t]*=`)
)

func extractPython(path string, content string) []Symbol {
	li := newLineIndex(content)
	lines := strings.Split(content, "\n")

	var classes []Symbol
	for _, m := range pyClassRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		classes = append(classes, Symbol{
			Name:               name,
			FullyQualifiedName: name,
			Kind:               KindClass,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "#"),
		})
	}

	symbols := append([]Symbol{}, classes...)

	// Functions are attributed to the nearest class declared above them.
	// Module-level functions that follow a class are therefore mis-filed
	// under it; that is the documented line-order heuristic.
	for _, m := range pyDefRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		sym := Symbol{
			Name:               name,
			FullyQualifiedName: name,
			Kind:               KindMethod,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "#"),
		}
		if owner := containerAt(classes, line); owner != nil {
			sym.ContainerName = owner.Name
			sym.FullyQualifiedName = qualify(owner.FullyQualifiedName, name)
		}
		if name == "__init__" {
			sym.Kind = KindConstructor
		}
		symbols = append(symbols, sym)
	}

	// Module-level UPPER_CASE assignments are conventionally constants.
	for _, m := range pyConstantRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: name,
			Kind:               KindConstant,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
		})
	}

	return symbols
}
