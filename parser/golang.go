package parser

import (
	"regexp"
	"strings"
)

var (
	goPackageRe = regexp.MustCompile(`(?m)^package[ \t]+(\w+)`)
	goTypeRe    = regexp.MustCompile(`(?m)^type[ \t]+([A-Za-z_]\w*)[ \t]+(struct|interface|func|\S+)`)
	goFuncRe    = regexp.MustCompile(`(?m)^func[ \t]+(?:\([ \t]*\w+[ \t]+\*?([A-Za-z_]\w*)[ \t]*\)[ \t]+)?([A-Za-z_]\w*)[ \t]*\(`)
	goConstRe   = regexp.MustCompile(`(?m)^(const|var)[ \t]+([A-Za-z_]\w*)`)
)

func extractGo(path string, content string) []Symbol {
	li := newLineIndex(content)
	lines := strings.Split(content, "\n")

	pkg := ""
	pkgLine := -1
	if m := goPackageRe.FindStringSubmatchIndex(content); m != nil {
		pkg = content[m[2]:m[3]]
		pkgLine, _ = li.position(m[2])
	}

	var symbols []Symbol
	if pkg != "" {
		line := pkgLine
		symbols = append(symbols, Symbol{
			Name:               pkg,
			FullyQualifiedName: pkg,
			Kind:               KindNamespace,
			FilePath:           path,
			Line:               line,
			Signature:          lineAt(lines, line),
		})
	}

	var types []Symbol
	for _, m := range goTypeRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		underlying := content[m[4]:m[5]]
		line, col := li.position(m[2])
		kind := KindClass // named type over a non-composite underlying type
		switch underlying {
		case "struct":
			kind = KindStruct
		case "interface":
			kind = KindInterface
		}
		types = append(types, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(pkg, name),
			Kind:               kind,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "//"),
			ContainerName:      pkg,
		})
	}
	symbols = append(symbols, types...)

	for _, m := range goFuncRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[4]:m[5]]
		line, col := li.position(m[4])
		sym := Symbol{
			Name:          name,
			Kind:          KindMethod,
			FilePath:      path,
			Line:          line,
			Column:        col,
			Signature:     lineAt(lines, line),
			Documentation: docCommentAbove(lines, line, "//"),
		}
		if m[2] >= 0 { // method with receiver
			receiver := content[m[2]:m[3]]
			sym.ContainerName = receiver
			sym.FullyQualifiedName = qualify(pkg, receiver, name)
		} else {
			sym.ContainerName = pkg
			sym.FullyQualifiedName = qualify(pkg, name)
		}
		symbols = append(symbols, sym)
	}

	for _, m := range goConstRe.FindAllStringSubmatchIndex(content, -1) {
		keyword := content[m[2]:m[3]]
		name := content[m[4]:m[5]]
		line, col := li.position(m[4])
		kind := KindVariable
		if keyword == "const" {
			kind = KindConstant
		}
		symbols = append(symbols, Symbol{
			Name:               name,
			FullyQualifiedName: qualify(pkg, name),
			Kind:               kind,
			FilePath:           path,
			Line:               line,
			Column:             col,
			Signature:          lineAt(lines, line),
			Documentation:      docCommentAbove(lines, line, "//"),
			ContainerName:      pkg,
		})
	}

	return symbols
}
