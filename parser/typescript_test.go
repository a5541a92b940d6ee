package parser

import (
	"testing"

	"codeintel/language"
)

const typescriptSample = `import { Request } from "express";

export const MAX_RETRIES = 5;
let counter = 0;

// Formats a display name.
export function formatName(first: string, last: string): string {
  return first + " " + last;
}

export const fetchUser = async (id: string) => {
  return null;
};

export interface UserRecord {
  id: string;
}

export enum Role {
  Admin,
  Member,
}

export class UserService {
  private cache: Map<string, UserRecord>;

  constructor(private readonly db: Database) {
  }

  async findUser(id: string): Promise<UserRecord> {
    return this.cache.get(id);
  }

  clearCache() {
    this.cache.clear();
  }
}
`

func Test_ExtractTypeScript_TopLevelFunction(t *testing.T) {
	symbols := Extract("users.ts", typescriptSample, language.TypeScript)

	fn := findSymbol(t, symbols, "formatName")
	if fn.Kind != KindMethod {
		t.Errorf("expected method kind, got %s", fn.Kind)
	}
	if fn.ContainerName != "" {
		t.Errorf("top-level function should have no container, got %s", fn.ContainerName)
	}
	if fn.Documentation != "Formats a display name." {
		t.Errorf("expected doc comment, got %q", fn.Documentation)
	}
}

func Test_ExtractTypeScript_ArrowFunction(t *testing.T) {
	symbols := Extract("users.ts", typescriptSample, language.TypeScript)

	fn := findSymbol(t, symbols, "fetchUser")
	if fn.Kind != KindMethod {
		t.Errorf("arrow function should be a method, got %s", fn.Kind)
	}
	// Must not also appear as a constant
	if findSymbolKind(symbols, "fetchUser", KindConstant) != nil {
		t.Error("arrow function reported twice (method and constant)")
	}
}

func Test_ExtractTypeScript_Variables(t *testing.T) {
	symbols := Extract("users.ts", typescriptSample, language.TypeScript)

	if findSymbol(t, symbols, "MAX_RETRIES").Kind != KindConstant {
		t.Error("expected MAX_RETRIES to be a constant")
	}
	if findSymbol(t, symbols, "counter").Kind != KindVariable {
		t.Error("expected counter to be a variable")
	}
}

func Test_ExtractTypeScript_ClassMembers(t *testing.T) {
	symbols := Extract("users.ts", typescriptSample, language.TypeScript)

	method := findSymbol(t, symbols, "findUser")
	if method.ContainerName != "UserService" {
		t.Errorf("expected container UserService, got %s", method.ContainerName)
	}
	if method.FullyQualifiedName != "UserService.findUser" {
		t.Errorf("expected UserService.findUser, got %s", method.FullyQualifiedName)
	}

	prop := findSymbol(t, symbols, "cache")
	if prop.Kind != KindProperty || prop.ContainerName != "UserService" {
		t.Errorf("expected cache property on UserService, got kind=%s container=%s", prop.Kind, prop.ContainerName)
	}

	ctor := findSymbolKind(symbols, "constructor", KindConstructor)
	if ctor == nil {
		t.Fatal("expected constructor symbol")
	}
	if ctor.ContainerName != "UserService" {
		t.Errorf("expected constructor container UserService, got %s", ctor.ContainerName)
	}
}

func Test_ExtractTypeScript_InterfaceAndEnum(t *testing.T) {
	symbols := Extract("users.ts", typescriptSample, language.TypeScript)

	if findSymbol(t, symbols, "UserRecord").Kind != KindInterface {
		t.Error("expected UserRecord to be an interface")
	}
	if findSymbol(t, symbols, "Role").Kind != KindEnum {
		t.Error("expected Role to be an enum")
	}
}

func Test_ExtractTypeScript_ControlFlowNotMistakenForMethods(t *testing.T) {
	content := "export class Filter {\n  apply(xs: number[]) {\n    if (xs.length) {\n      for (const x of xs) {\n      }\n    }\n  }\n}\n"
	symbols := Extract("filter.ts", content, language.TypeScript)

	for _, s := range symbols {
		if s.Name == "if" || s.Name == "for" {
			t.Errorf("control keyword %q extracted as a symbol", s.Name)
		}
	}
}

func Test_ExtractTypeScript_Namespace(t *testing.T) {
	content := "namespace Validation {\n  export function isValid(s: string) {\n    return true;\n  }\n}\n"
	symbols := Extract("validation.ts", content, language.TypeScript)

	ns := findSymbol(t, symbols, "Validation")
	if ns.Kind != KindNamespace {
		t.Errorf("expected namespace kind, got %s", ns.Kind)
	}
	fn := findSymbol(t, symbols, "isValid")
	if fn.FullyQualifiedName != "Validation.isValid" {
		t.Errorf("expected Validation.isValid, got %s", fn.FullyQualifiedName)
	}
}

func Test_ExtractTypeScript_JavaScriptUsesSameExtractor(t *testing.T) {
	symbols := Extract("app.js", "function boot() {}\n", language.JavaScript)

	if findSymbol(t, symbols, "boot").Kind != KindMethod {
		t.Error("expected boot function from JavaScript source")
	}
}
