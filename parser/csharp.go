package parser

import (
	"regexp"
	"strings"
)

var (
	csNamespaceRe = regexp.MustCompile(`(?m)^[ \t]*namespace[ \t]+([A-Za-z_][\w.]*)`)
	csTypeRe      = regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|protected|internal|static|sealed|abstract|partial)[ \t]+)*(class|interface|struct|enum|record)[ \t]+([A-Za-z_]\w*)`)
	csMethodRe    = regexp.MustCompile(`(?m)^[ \t]*(?:public|private|protected|internal)[ \t]+(?:(?:static|virtual|override|async|sealed|abstract|partial|extern|new|unsafe)[ \t]+)*[\w<>\[\],.? \t]+?[ \t]+([A-Za-z_]\w*)[ \t]*\(`)
	csCtorRe      = regexp.MustCompile(`(?m)^[ \t]*(?:public|private|protected|internal)[ \t]+([A-Za-z_]\w*)[ \t]*\(`)
	csPropertyRe  = regexp.MustCompile(`(?m)^[ \t]*(?:public|private|protected|internal)[ \t]+(?:(?:static|virtual|override|required)[ \t]+)*[\w<>\[\],.? \t]+?[ \t]+([A-Za-z_]\w*)[ \t]*\{[ \t]*(?:get|set|init)`)
	csFieldRe     = regexp.MustCompile(`(?m)^[ \t]*(?:public|private|protected|internal)[ \t]+(?:(?:static|readonly)[ \t]+)*(const[ \t]+)?[\w<>\[\],.?]+[ \t]+([A-Za-z_]\w*)[ \t]*[=;]`)
	csEventRe     = regexp.MustCompile(`(?m)^[ \t]*(?:public|private|protected|internal)[ \t]+(?:static[ \t]+)?event[ \t]+[\w<>.]+[ \t]+([A-Za-z_]\w*)`)
)

var csTypeKinds = map[string]Kind{
	"class":     KindClass,
	"interface": KindInterface,
	"struct":    KindStruct,
	"enum":      KindEnum,
	"record":    KindClass,
}

func extractCSharp(path string, content string) []Symbol {
	li := newLineIndex(content)
	lines := strings.Split(content, "\n")

	// Namespaces establish the container context for everything below them.
	var namespaces []Symbol
	for _, m := range csNamespaceRe.FindAllStringSubmatchIndex(content, -1) {
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
	for _, m := range csTypeRe.FindAllStringSubmatchIndex(content, -1) {
		keyword := content[m[2]:m[3]]
		name := content[m[4]:m[5]]
		line, col := li.position(m[4])
		ns := namespaceFor(line)
		types = append(types, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(ns, name),
			Kind:               csTypeKinds[keyword],
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "///"),
			ContainerName:      ns,
		})
	}

	symbols := append([]Symbol{}, namespaces...)
	symbols = append(symbols, types...)

	member := func(name string, kind Kind, nameOffset int) Symbol {
		line, col := li.position(nameOffset)
		sym := Symbol{
			Name:          name,
			Kind:          kind,
			FilePath:      path,
			Line:          line,
			Column:        col,
			Signature:     lineAt(lines, line),
			Documentation: docCommentAbove(lines, line, "///"),
		}
		if owner := containerAt(types, line); owner != nil {
			sym.ContainerName = owner.Name
			sym.FullyQualifiedName = qualify(owner.FullyQualifiedName, name)
		} else {
			sym.FullyQualifiedName = qualify(namespaceFor(line), name)
		}
		return sym
	}

	seen := make(map[int]bool) // name offsets already claimed, to dedup overlapping patterns

	for _, m := range csMethodRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		symbols = append(symbols, member(name, KindMethod, m[2]))
		seen[m[2]] = true
	}

	// Constructors have no return type, so the method pattern misses them:
	// a single identifier after the access modifier that names the enclosing
	// type is a constructor.
	for _, m := range csCtorRe.FindAllStringSubmatchIndex(content, -1) {
		if seen[m[2]] {
			continue
		}
		name := content[m[2]:m[3]]
		line, _ := li.position(m[2])
		owner := containerAt(types, line)
		if owner == nil || owner.Name != name {
			continue
		}
		symbols = append(symbols, member(name, KindConstructor, m[2]))
		seen[m[2]] = true
	}

	for _, m := range csPropertyRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		symbols = append(symbols, member(name, KindProperty, m[2]))
		seen[m[2]] = true
	}

	for _, m := range csEventRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		symbols = append(symbols, member(name, KindEvent, m[2]))
		seen[m[2]] = true
	}

	for _, m := range csFieldRe.FindAllStringSubmatchIndex(content, -1) {
		if seen[m[4]] {
			continue
		}
		name := content[m[4]:m[5]]
		kind := KindField
		if m[2] >= 0 { // const modifier present
			kind = KindConstant
		}
		symbols = append(symbols, member(name, kind, m[4]))
	}

	return symbols
}
