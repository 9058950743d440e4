// Package importgraph extracts raw import statements from source files,
// resolves them to repo-relative paths, and builds a directed graph over the
// result for PageRank (spec.md §4.3).
package importgraph

import (
	"strings"

	"github.com/Demwunz/topo/internal/model"
)

// ExtractImports pulls raw, unresolved import tokens out of content for the
// given language. Each language's rule mirrors that ecosystem's import
// syntax closely enough to catch the common cases without a full parser.
func ExtractImports(content string, lang model.Language) []string {
	switch lang {
	case model.LangRust:
		return extractRustImports(content)
	case model.LangPython:
		return extractPythonImports(content)
	case model.LangJavaScript, model.LangTypeScript:
		return extractJSImports(content)
	case model.LangGo:
		return extractGoImports(content)
	case model.LangJava, model.LangKotlin:
		return extractJavaImports(content)
	case model.LangC, model.LangCpp:
		return extractCIncludes(content)
	case model.LangRuby:
		return extractRubyImports(content)
	case model.LangSwift:
		return extractSwiftImports(content)
	case model.LangElixir:
		return extractElixirImports(content)
	case model.LangPHP:
		return extractPHPImports(content)
	case model.LangScala:
		return extractScalaImports(content)
	case model.LangR:
		return extractRImports(content)
	case model.LangShell:
		return extractShellImports(content)
	default:
		return nil
	}
}

func extractRustImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "use "); ok {
			if path, ok := strings.CutPrefix(rest, "crate::"); ok {
				path = strings.TrimSpace(strings.TrimSuffix(path, ";"))
				module, _, _ := strings.Cut(path, "::")
				if module != "" && module != "{" {
					imports = append(imports, module)
				}
			}
		} else if rest, ok := strings.CutPrefix(trimmed, "mod "); ok {
			module := strings.TrimSpace(strings.TrimSuffix(rest, ";"))
			if module != "" && !strings.HasPrefix(module, "{") {
				imports = append(imports, module)
			}
		}
	}
	return imports
}

func extractPythonImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
			if module := firstField(rest); module != "" {
				imports = append(imports, module)
			}
		} else if rest, ok := strings.CutPrefix(trimmed, "from "); ok {
			if module := firstField(rest); module != "" {
				imports = append(imports, module)
			}
		}
	}
	return imports
}

func extractJSImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") {
			if idx := strings.Index(trimmed, "from "); idx >= 0 {
				pathPart := strings.TrimSpace(trimmed[idx+5:])
				path := strings.Trim(pathPart, "'\";")
				if path != "" {
					imports = append(imports, path)
				}
			}
		}
		if idx := strings.Index(trimmed, "require("); idx >= 0 {
			after := trimmed[idx+8:]
			after = strings.TrimLeft(after, "'\"")
			path, _, _ := strings.Cut(after, "'")
			path2, _, _ := strings.Cut(path, "\"")
			if path2 != "" {
				imports = append(imports, path2)
			}
		}
	}
	return imports
}

func extractGoImports(content string) []string {
	var imports []string
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "import (" {
			inBlock = true
			continue
		}
		if inBlock && trimmed == ")" {
			inBlock = false
			continue
		}
		if inBlock {
			path := strings.Trim(trimmed, "\"")
			if path != "" {
				imports = append(imports, path)
			}
		} else if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
			path := strings.Trim(strings.TrimSpace(rest), "\"")
			if path != "" && path != "(" {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

func extractJavaImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
			rest = strings.TrimPrefix(rest, "static ")
			path := strings.TrimSpace(strings.TrimSuffix(rest, ";"))
			if path != "" {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

func extractCIncludes(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "#include"); ok {
			rest = strings.TrimSpace(rest)
			if strings.HasPrefix(rest, "\"") {
				rest = strings.TrimPrefix(rest, "\"")
				path, _, _ := strings.Cut(rest, "\"")
				if path != "" {
					imports = append(imports, path)
				}
			}
		}
	}
	return imports
}

func extractRubyImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, "require ")
		if !ok {
			rest, ok = strings.CutPrefix(trimmed, "require_relative ")
		}
		if ok {
			path := strings.Trim(strings.TrimSpace(rest), "'\"")
			if path != "" {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

var swiftImportKinds = map[string]bool{
	"class": true, "struct": true, "enum": true, "protocol": true,
	"func": true, "var": true, "typealias": true,
}

func extractSwiftImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		lineToCheck := strings.TrimPrefix(trimmed, "@testable ")
		if rest, ok := strings.CutPrefix(lineToCheck, "import "); ok {
			tokens := strings.Fields(rest)
			if len(tokens) == 0 {
				continue
			}
			first := tokens[0]
			module := first
			if swiftImportKinds[first] && len(tokens) > 1 {
				module = tokens[1]
			}
			if module != "" {
				moduleName, _, _ := strings.Cut(module, ".")
				imports = append(imports, moduleName)
			}
		}
	}
	return imports
}

func extractElixirImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range []string{"alias ", "import ", "use ", "require "} {
			if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
				module := cutAny(rest, ",{ ")
				if module != "" && module[0] >= 'A' && module[0] <= 'Z' {
					imports = append(imports, module)
				}
			}
		}
	}
	return imports
}

func extractPHPImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "use "); ok {
			path := cutAny(rest, "; ")
			if path != "" && strings.Contains(path, "\\") {
				imports = append(imports, path)
			}
			continue
		}
		for _, prefix := range []string{"require ", "require_once ", "include ", "include_once "} {
			if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
				path := strings.TrimSpace(rest)
				path = strings.TrimSuffix(path, ";")
				path = strings.Trim(strings.TrimSpace(path), "'\"")
				if path != "" {
					imports = append(imports, path)
				}
			}
		}
	}
	return imports
}

func extractScalaImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
			path := cutAny(rest, "{ ")
			path = strings.TrimSuffix(path, ".")
			if path != "" {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

func extractRImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range []string{"library(", "require("} {
			if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
				pkg := strings.TrimSuffix(rest, ")")
				pkg = strings.Trim(pkg, "'\"")
				if pkg != "" {
					imports = append(imports, pkg)
				}
			}
		}
		if rest, ok := strings.CutPrefix(trimmed, "source("); ok {
			path := strings.TrimSuffix(rest, ")")
			path = strings.Trim(path, "'\"")
			if path != "" {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

func extractShellImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, "source ")
		if !ok {
			rest, ok = strings.CutPrefix(trimmed, ". ")
		}
		if ok {
			path := strings.Trim(strings.TrimSpace(rest), "\"'")
			if path != "" && !strings.HasPrefix(path, "$") {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// cutAny splits s at the first rune found in cutset and returns the prefix.
func cutAny(s, cutset string) string {
	idx := strings.IndexAny(s, cutset)
	if idx < 0 {
		return s
	}
	return s[:idx]
}
