package parser

import (
	"regexp"
	"strings"
)

var (
	tsNamespaceRe = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:declare[ \t]+)?(?:namespace|module)[ \t]+([A-Za-z_][\w.]*)`)
	tsTypeRe      = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:default[ \t]+)?(?:declare[ \t]+)?(?:abstract[ \t]+)?(class|interface|enum)[ \t]+([A-Za-z_]\w*)`)
	tsFunctionRe  = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:default[ \t]+)?(?:declare[ \t]+)?(?:async[ \t]+)?function[ \t]*\*?[ \t]*([A-Za-z_]\w*)`)
	tsArrowRe     = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:const|let|var)[ \t]+([A-Za-z_]\w*)[^=\n]*=[ \t]*(?:async[ \t]+)?(?:\([^)\n]*\)|[A-Za-z_]\w*)[ \t]*=>`)
	tsMemberRe    = regexp.MustCompile(`(?m)^[ \t]+(?:(?:public|private|protected|static|readonly|async|abstract|override|get|set)[ \t]+)*([A-Za-z_]\w*)[ \t]*\([^)\n]*\)[ \t]*(?::[^\n{]*)?\{`)
	tsPropertyRe  = regexp.MustCompile(`(?m)^[ \t]+(?:(?:public|private|protected|static|readonly)[ \t]+)+([A-Za-z_]\w*)[ \t]*[?!]?[ \t]*[:=]`)
	tsVariableRe  = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(const|let|var)[ \t]+([A-Za-z_]\w*)`)
)

var tsTypeKinds = map[string]Kind{
	"class":     KindClass,
	"interface": KindInterface,
	"enum":      KindEnum,
}

// tsNonMemberNames are identifiers that the member pattern would otherwise
// mistake for method declarations.
var tsNonMemberNames = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "new": true, "typeof": true, "function": true, "do": true,
}

func extractTypeScript(path string, content string) []Symbol {
	li := newLineIndex(content)
	lines := strings.Split(content, "\n")

	var namespaces []Symbol
	for _, m := range tsNamespaceRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		namespaces = append(namespaces, Symbol{
			Name:               name,
			FullyQualifiedName: name,
			Kind:               KindNamespace,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
		})
	}
	namespaceFor := func(line int) string {
		if ns := containerAt(namespaces, line); ns != nil {
			return ns.Name
		}
		return ""
	}

	var types []Symbol
	for _, m := range tsTypeRe.FindAllStringSubmatchIndex(content, -1) {
		keyword := content[m[2]:m[3]]
		name := content[m[4]:m[5]]
		line, col := li.position(m[4])
		ns := namespaceFor(line)
		types = append(types, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(ns, name),
			Kind:               tsTypeKinds[keyword],
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "//"),
			ContainerName:      ns,
		})
	}

	symbols := append([]Symbol{}, namespaces...)
	symbols = append(symbols, types...)

	claimedLines := make(map[int]bool)

	for _, m := range tsFunctionRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(namespaceFor(line), name),
			Kind:               KindMethod,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "//"),
			ContainerName:      namespaceFor(line),
		})
		claimedLines[line] = true
	}

	for _, m := range tsArrowRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(namespaceFor(line), name),
			Kind:               KindMethod,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "//"),
			ContainerName:      namespaceFor(line),
		})
		claimedLines[line] = true
	}

	// Indented call-shaped declarations inside a class body. Attribution uses
	// the nearest type declared above, which mis-files top-level code that
	// happens to be indented; accepted.
	for _, m := range tsMemberRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		if tsNonMemberNames[name] {
			continue
		}
		line, col := li.position(m[2])
		if claimedLines[line] {
			continue
		}
		owner := containerAt(types, line)
		if owner == nil {
			continue
		}
		kind := KindMethod
		if name == "constructor" {
			kind = KindConstructor
		}
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(owner.FullyQualifiedName, name),
			Kind:               kind,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "//"),
			ContainerName:      owner.Name,
		})
		claimedLines[line] = true
	}

	// Modifier-prefixed class fields. Requiring at least one modifier keeps
	// object-literal keys from matching.
	for _, m := range tsPropertyRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		line, col := li.position(m[2])
		if claimedLines[line] {
			continue
		}
		owner := containerAt(types, line)
		if owner == nil {
			continue
		}
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(owner.FullyQualifiedName, name),
			Kind:               KindProperty,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			ContainerName:      owner.Name,
		})
		claimedLines[line] = true
	}

	for _, m := range tsVariableRe.FindAllStringSubmatchIndex(content, -1) {
		keyword := content[m[2]:m[3]]
		name := content[m[4]:m[5]]
		line, col := li.position(m[4])
		if claimedLines[line] {
			continue // already reported as an arrow function
		}
		kind := KindVariable
		if keyword == "const" {
			kind = KindConstant
		}
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(namespaceFor(line), name),
			Kind:               kind,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			ContainerName:      namespaceFor(line),
		})
	}

	return symbols
}
