package importgraph

import (
	"path"
	"strings"

	"github.com/Demwunz/topo/internal/model"
)

// vendoredDirs are excluded from the graph entirely: external dependencies
// checked into the repo should not dominate the structural signal.
var vendoredDirs = map[string]bool{"vendor": true, "node_modules": true, "third_party": true}

// RepoIndex holds two lookup strategies for resolving raw imports to repo
// files: stem (file name without extension) and dir (immediate parent
// directory name). Most languages use stem; Go uses dir, since Go imports
// name packages (directories), not files.
type RepoIndex struct {
	Stem map[string][]string
	Dir  map[string][]string
}

// BuildFileIndex builds the stem and directory indexes from a repo's paths.
func BuildFileIndex(paths []string) RepoIndex {
	idx := RepoIndex{Stem: map[string][]string{}, Dir: map[string][]string{}}

	for _, p := range paths {
		base := path.Base(p)
		ext := path.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		dir := path.Dir(p)
		parentName := path.Base(dir)

		if stem != "" {
			stemLower := strings.ToLower(stem)
			idx.Stem[stemLower] = append(idx.Stem[stemLower], p)

			if stem == "mod" || stem == "index" || stem == "__init__" {
				if parentName != "" && parentName != "." {
					parentLower := strings.ToLower(parentName)
					idx.Stem[parentLower] = append(idx.Stem[parentLower], p)
				}
			}
		}

		if parentName != "" && parentName != "." {
			parentLower := strings.ToLower(parentName)
			idx.Dir[parentLower] = append(idx.Dir[parentLower], p)
		}
	}

	return idx
}

// ResolveImport resolves a single raw import to candidate repo paths,
// filtering out self-imports. Returns nil for external/unresolved imports.
func ResolveImport(rawImport, importingFile string, lang model.Language, idx RepoIndex) []string {
	var candidates []string
	switch lang {
	case model.LangRust:
		candidates = resolveRust(rawImport, idx.Stem)
	case model.LangJavaScript, model.LangTypeScript:
		candidates = resolveJS(rawImport, importingFile, idx.Stem)
	case model.LangPython:
		candidates = resolvePython(rawImport, importingFile, idx.Stem)
	case model.LangGo:
		candidates = resolveGo(rawImport, idx)
	case model.LangJava, model.LangKotlin:
		candidates = resolveJava(rawImport, idx.Stem)
	case model.LangC, model.LangCpp:
		candidates = resolveCInclude(rawImport, importingFile, idx.Stem)
	case model.LangRuby:
		candidates = resolveRuby(rawImport, importingFile, idx.Stem)
	case model.LangSwift:
		candidates = resolveSwift(rawImport, idx.Stem)
	case model.LangElixir:
		candidates = resolveElixir(rawImport, idx.Stem)
	case model.LangPHP:
		candidates = resolvePHP(rawImport, importingFile, idx.Stem)
	case model.LangScala:
		candidates = resolveScala(rawImport, idx.Stem)
	case model.LangR:
		candidates = resolveR(rawImport, importingFile, idx.Stem)
	case model.LangShell:
		candidates = resolveShell(rawImport, importingFile, idx.Stem)
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != importingFile {
			out = append(out, c)
		}
	}
	return out
}

func isVendored(p string) bool {
	for _, c := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if vendoredDirs[c] {
			return true
		}
	}
	return false
}

// BuildImportGraph builds a Graph from per-file raw imports, excluding
// vendored paths (see vendoredDirs) from both the file index and the graph
// itself.
func BuildImportGraph(fileImports []FileImports, allPaths []string) *Graph {
	nonVendored := make([]string, 0, len(allPaths))
	for _, p := range allPaths {
		if !isVendored(p) {
			nonVendored = append(nonVendored, p)
		}
	}

	idx := BuildFileIndex(nonVendored)
	g := NewGraph()

	for _, p := range nonVendored {
		g.AddNode(p)
	}

	for _, fi := range fileImports {
		if isVendored(fi.Path) {
			continue
		}
		for _, raw := range fi.RawImports {
			for _, target := range ResolveImport(raw, fi.Path, fi.Language, idx) {
				g.AddEdge(fi.Path, target)
			}
		}
	}

	return g
}

// FileImports is one file's raw, unresolved imports plus enough context to
// resolve them.
type FileImports struct {
	Path       string
	Language   model.Language
	RawImports []string
}

func resolveRust(module string, stem map[string][]string) []string {
	return stem[strings.ToLower(module)]
}

func resolveJS(importPath, importingFile string, stem map[string][]string) []string {
	if strings.HasPrefix(importPath, ".") {
		base := path.Dir(importingFile)
		resolved := path.Join(base, importPath)
		resolvedExt := path.Ext(resolved)
		resolvedStem := strings.TrimSuffix(path.Base(resolved), resolvedExt)
		if resolvedStem == "" {
			return nil
		}
		candidates := stem[strings.ToLower(resolvedStem)]

		var near []string
		for _, c := range candidates {
			cNoExt := strings.TrimSuffix(c, path.Ext(c))
			if cNoExt == resolved || strings.HasPrefix(c, resolved) {
				near = append(near, c)
			}
		}
		if len(near) == 0 {
			return candidates
		}
		return near
	}

	parts := strings.Split(importPath, "/")
	segment := parts[len(parts)-1]
	return stem[strings.ToLower(segment)]
}

func resolvePython(importPath, importingFile string, stem map[string][]string) []string {
	if strings.HasPrefix(importPath, ".") {
		module := strings.TrimLeft(importPath, ".")
		if module == "" {
			parent := path.Base(path.Dir(importingFile))
			return stem[strings.ToLower(parent)]
		}
		parts := strings.Split(module, ".")
		last := parts[len(parts)-1]
		return stem[strings.ToLower(last)]
	}

	parts := strings.Split(importPath, ".")
	if len(parts) == 0 {
		return nil
	}
	last := parts[len(parts)-1]
	first := parts[0]
	for _, segment := range []string{last, first} {
		if candidates := stem[strings.ToLower(segment)]; len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

// resolveGo disambiguates Go's directory-named packages: the last import
// segment must match a directory name, narrowed by the penultimate segment
// when more than one directory shares that name (e.g. two "v1" packages).
func resolveGo(importPath string, idx RepoIndex) []string {
	segments := rsplitN(importPath, "/", 3)
	if len(segments) == 0 || segments[0] == "" {
		return nil
	}
	last := segments[0]
	lastLower := strings.ToLower(last)

	dirCandidates := idx.Dir[lastLower]
	if len(dirCandidates) > 0 {
		if len(segments) > 1 {
			penLower := strings.ToLower(segments[1])
			var narrowed []string
			for _, p := range dirCandidates {
				grandparent := path.Base(path.Dir(path.Dir(p)))
				if strings.ToLower(grandparent) == penLower {
					narrowed = append(narrowed, p)
				}
			}
			if len(narrowed) > 0 {
				return narrowed
			}
		}
		return dirCandidates
	}

	return idx.Stem[lastLower]
}

// rsplitN splits s by sep from the right, at most n pieces, returned in the
// same order as Rust's rsplitn (first piece is the rightmost).
func rsplitN(s, sep string, n int) []string {
	parts := strings.Split(s, sep)
	if len(parts) <= n {
		reverse(parts)
		return parts
	}
	head := strings.Join(parts[:len(parts)-n+1], sep)
	tail := parts[len(parts)-n+1:]
	out := append([]string{head}, tail...)
	reverse(out)
	return out
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func resolveJava(importPath string, stem map[string][]string) []string {
	p := strings.TrimSuffix(importPath, ".*")
	parts := strings.Split(p, ".")
	segment := parts[len(parts)-1]
	return stem[strings.ToLower(segment)]
}

func resolveCInclude(includePath, importingFile string, stem map[string][]string) []string {
	base := path.Dir(importingFile)
	resolved := path.Join(base, includePath)

	for _, files := range stem {
		for _, f := range files {
			if f == resolved {
				return []string{f}
			}
		}
	}

	ext := path.Ext(includePath)
	s := strings.TrimSuffix(path.Base(includePath), ext)
	return stem[strings.ToLower(s)]
}

func resolveRuby(importPath, importingFile string, stem map[string][]string) []string {
	parts := strings.Split(importPath, "/")
	segment := parts[len(parts)-1]
	stemLower := strings.ToLower(segment)

	if strings.Contains(importPath, "/") || strings.HasPrefix(importPath, ".") {
		base := path.Dir(importingFile)
		resolved := path.Join(base, importPath)

		candidates := stem[stemLower]
		var near []string
		for _, c := range candidates {
			cNoExt := strings.TrimSuffix(c, path.Ext(c))
			if cNoExt == resolved {
				near = append(near, c)
			}
		}
		if len(near) > 0 {
			return near
		}
	}

	return stem[stemLower]
}

func resolveSwift(module string, stem map[string][]string) []string {
	return stem[strings.ToLower(module)]
}

func resolveElixir(modulePath string, stem map[string][]string) []string {
	parts := strings.Split(modulePath, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if candidates := stem[strings.ToLower(parts[i])]; len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

func resolvePHP(importPath, importingFile string, stem map[string][]string) []string {
	if strings.Contains(importPath, "\\") {
		parts := strings.Split(importPath, "\\")
		segment := parts[len(parts)-1]
		return stem[strings.ToLower(segment)]
	}

	base := path.Dir(importingFile)
	resolved := path.Join(base, importPath)

	for _, files := range stem {
		for _, f := range files {
			if f == resolved {
				return []string{f}
			}
		}
	}

	ext := path.Ext(importPath)
	s := strings.TrimSuffix(path.Base(importPath), ext)
	return stem[strings.ToLower(s)]
}

func resolveScala(importPath string, stem map[string][]string) []string {
	parts := strings.Split(importPath, ".")
	segment := parts[len(parts)-1]
	return stem[strings.ToLower(segment)]
}

func resolveR(importPath, importingFile string, stem map[string][]string) []string {
	if strings.Contains(importPath, "/") || strings.Contains(importPath, ".") {
		base := path.Dir(importingFile)
		resolved := path.Join(base, importPath)

		for _, files := range stem {
			for _, f := range files {
				if f == resolved {
					return []string{f}
				}
			}
		}

		ext := path.Ext(importPath)
		s := strings.TrimSuffix(path.Base(importPath), ext)
		return stem[strings.ToLower(s)]
	}
	return stem[strings.ToLower(importPath)]
}

func resolveShell(importPath, importingFile string, stem map[string][]string) []string {
	base := path.Dir(importingFile)
	resolved := path.Join(base, importPath)

	for _, files := range stem {
		for _, f := range files {
			if f == resolved {
				return []string{f}
			}
		}
	}

	ext := path.Ext(importPath)
	s := strings.TrimSuffix(path.Base(importPath), ext)
	return stem[strings.ToLower(s)]
}
