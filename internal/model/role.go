package model

import "strings"

// buildFilenames is the exact §6 whitelist for role=Build.
var buildFilenames = map[string]bool{
	"Makefile": true, "makefile": true, "GNUmakefile": true,
	"Cargo.toml": true, "Cargo.lock": true,
	"package.json": true, "package-lock.json": true, "yarn.lock": true, "pnpm-lock.yaml": true,
	"build.rs": true, "build.gradle": true, "build.gradle.kts": true,
	"pom.xml": true, "CMakeLists.txt": true,
	"Dockerfile": true, "docker-compose.yml": true, "docker-compose.yaml": true,
	"Rakefile": true, "Gemfile": true,
	"Justfile": true, "justfile": true,
	"go.mod": true, "go.sum": true,
	"setup.py": true, "setup.cfg": true, "pyproject.toml": true, "Pipfile": true,
	"flake.nix": true,
}

var configExtensions = map[string]bool{
	"yaml": true, "yml": true, "toml": true, "json": true, "ini": true, "cfg": true, "env": true,
}

var configFilenames = map[string]bool{
	".gitignore": true, ".gitattributes": true, ".editorconfig": true,
	".prettierrc": true, ".eslintrc": true, ".babelrc": true,
	"tsconfig.json": true, "rustfmt.toml": true, "clippy.toml": true,
	".rustfmt.toml": true, ".clippy.toml": true, "deny.toml": true,
}

// RoleFromPath classifies a file's role, priority-ordered:
// Generated > Test > Documentation(dir) > Build > Config > Documentation(ext) > Implementation > Other.
func RoleFromPath(p string) FileRole {
	fileName := p
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		fileName = p[idx+1:]
	}
	ext := ""
	if idx := strings.LastIndexByte(fileName, '.'); idx > 0 {
		ext = fileName[idx+1:]
	}

	if pathContainsComponent(p, "vendor") || pathContainsComponent(p, "node_modules") || pathContainsComponent(p, "generated") {
		return RoleGenerated
	}
	if isGeneratedFilename(fileName) {
		return RoleGenerated
	}

	if pathContainsComponent(p, "tests") || pathContainsComponent(p, "__tests__") || pathContainsComponent(p, "spec") {
		return RoleTest
	}
	if isTestFilename(fileName) {
		return RoleTest
	}

	if pathContainsComponent(p, "docs") {
		return RoleDocumentation
	}

	if buildFilenames[fileName] {
		return RoleBuild
	}

	if configExtensions[ext] || configFilenames[fileName] || strings.HasPrefix(strings.ToLower(fileName), ".env") {
		return RoleConfig
	}

	if ext == "md" || ext == "mdx" || ext == "rst" {
		return RoleDocumentation
	}

	lang := LanguageFromExtension(ext)
	if lang.IsProgrammingLanguage() || lang == LangHTML || lang == LangCSS {
		return RoleImplementation
	}

	return RoleOther
}

func pathContainsComponent(p, component string) bool {
	for _, c := range strings.Split(p, "/") {
		if c == component {
			return true
		}
	}
	return false
}

func isTestFilename(fileName string) bool {
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, "_test.go"),
		strings.HasSuffix(lower, "_test.rs"),
		strings.HasSuffix(lower, "_spec.rs"),
		strings.HasSuffix(lower, "_spec.rb"),
		strings.HasSuffix(lower, "_test.py"),
		strings.HasSuffix(lower, ".test.js"),
		strings.HasSuffix(lower, ".test.ts"),
		strings.HasSuffix(lower, ".test.tsx"),
		strings.HasSuffix(lower, ".test.jsx"),
		strings.HasSuffix(lower, ".spec.js"),
		strings.HasSuffix(lower, ".spec.ts"),
		strings.HasSuffix(lower, ".spec.tsx"),
		strings.HasSuffix(lower, ".spec.jsx"):
		return true
	}
	if strings.HasPrefix(lower, "test_") && (strings.HasSuffix(lower, ".py") || strings.HasSuffix(lower, ".rb")) {
		return true
	}
	return false
}

func isGeneratedFilename(fileName string) bool {
	lower := strings.ToLower(fileName)
	return strings.Contains(lower, ".generated.") || strings.HasSuffix(lower, ".pb.go") || strings.HasSuffix(lower, ".g.dart")
}
