// Package model holds the data types shared by every core component:
// Scanner, Chunker, IndexBuilder, Store, and the scorers. None of these
// types carry behavior beyond small invariant helpers — the algorithms that
// build and consume them live in their owning packages.
package model

import (
	"path"
	"strings"
)

// Language is a closed enum of the languages the scanner and chunker
// recognize by file extension.
type Language string

const (
	LangRust       Language = "rust"
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangRuby       Language = "ruby"
	LangC          Language = "c"
	LangCpp        Language = "cpp"
	LangShell      Language = "shell"
	LangMarkdown   Language = "markdown"
	LangYAML       Language = "yaml"
	LangTOML       Language = "toml"
	LangJSON       Language = "json"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangHaskell    Language = "haskell"
	LangElixir     Language = "elixir"
	LangLua        Language = "lua"
	LangPHP        Language = "php"
	LangR          Language = "r"
	LangOther      Language = "other"
)

// LanguageFromExtension maps a bare extension (no leading dot, original
// case) to a Language, mirroring the original implementation's match table.
func LanguageFromExtension(ext string) Language {
	switch ext {
	case "rs":
		return LangRust
	case "go":
		return LangGo
	case "py", "pyi":
		return LangPython
	case "js", "mjs", "cjs":
		return LangJavaScript
	case "ts", "tsx", "mts", "cts":
		return LangTypeScript
	case "java":
		return LangJava
	case "rb":
		return LangRuby
	case "c", "h":
		return LangC
	case "cpp", "cc", "cxx", "hpp", "hh", "hxx":
		return LangCpp
	case "sh", "bash", "zsh":
		return LangShell
	case "md", "mdx":
		return LangMarkdown
	case "yml", "yaml":
		return LangYAML
	case "toml":
		return LangTOML
	case "json":
		return LangJSON
	case "html", "htm":
		return LangHTML
	case "css", "scss", "sass", "less":
		return LangCSS
	case "swift":
		return LangSwift
	case "kt", "kts":
		return LangKotlin
	case "scala", "sc":
		return LangScala
	case "hs":
		return LangHaskell
	case "ex", "exs":
		return LangElixir
	case "lua":
		return LangLua
	case "php":
		return LangPHP
	case "r", "R":
		return LangR
	default:
		return LangOther
	}
}

// LanguageFromPath detects language from a repo-relative, slash-separated path.
func LanguageFromPath(p string) Language {
	ext := path.Ext(p)
	if ext == "" {
		return LangOther
	}
	return LanguageFromExtension(strings.TrimPrefix(ext, "."))
}

// IsProgrammingLanguage reports whether l is source code as opposed to a
// markup/config/data format.
func (l Language) IsProgrammingLanguage() bool {
	switch l {
	case LangRust, LangGo, LangPython, LangJavaScript, LangTypeScript, LangJava,
		LangRuby, LangC, LangCpp, LangShell, LangSwift, LangKotlin, LangScala,
		LangHaskell, LangElixir, LangLua, LangPHP, LangR:
		return true
	default:
		return false
	}
}

// FileRole classifies a file's purpose within the repository.
type FileRole string

const (
	RoleImplementation FileRole = "impl"
	RoleTest           FileRole = "test"
	RoleConfig         FileRole = "config"
	RoleDocumentation  FileRole = "docs"
	RoleGenerated      FileRole = "generated"
	RoleBuild          FileRole = "build"
	RoleOther          FileRole = "other"
)

// FileInfo is one scanned file's metadata (spec.md §3).
type FileInfo struct {
	Path     string   // repo-relative, forward-slash normalized, never absolute, never contains ".."
	Size     uint64   // bytes
	Language Language
	Role     FileRole
	SHA256   [32]byte
}

// EstimatedTokens is the rough size/4 heuristic used throughout scoring.
func (f FileInfo) EstimatedTokens() uint64 {
	return f.Size / 4
}

// Bundle is a scan result: a content-addressed fingerprint over the sorted
// file list, the repo root, and the scan timestamp.
type Bundle struct {
	Fingerprint string
	Root        string
	Files       []FileInfo // sorted by Path, byte-lexicographic
	ScannedAt   int64      // unix seconds
}

func (b Bundle) IsEmpty() bool { return len(b.Files) == 0 }

func (b Bundle) TotalTokens() uint64 {
	var total uint64
	for _, f := range b.Files {
		total += f.EstimatedTokens()
	}
	return total
}

// ChunkKind is the syntactic category of a Chunk.
type ChunkKind string

const (
	ChunkFunction ChunkKind = "function"
	ChunkType     ChunkKind = "type"
	ChunkImpl     ChunkKind = "impl"
	ChunkImport   ChunkKind = "import"
	ChunkOther    ChunkKind = "other"
)

// Chunk is a syntactic unit extracted by the Chunker. Per the core
// specification's deliberate redesign, it never retains source text —
// scoring only needs the name, and copying node text would allocate tens of
// thousands of strings on large repos for no scoring benefit.
type Chunk struct {
	Kind      ChunkKind
	Name      string // may be empty for unnamed imports
	StartLine uint32 // 1-based, inclusive
	EndLine   uint32 // 1-based, inclusive
}

// TermFreqs holds per-field term counts for one term in one file.
type TermFreqs struct {
	Filename uint32
	Symbols  uint32
	Body     uint32
}

// FileEntry is one file's contribution to the DeepIndex.
type FileEntry struct {
	SHA256           [32]byte
	Chunks           []Chunk
	TermFrequencies  map[string]TermFreqs
	DocLength        uint32 // number of body tokens; must equal sum of TermFreqs.Body
	RawImports       []string // raw, unresolved import tokens extracted at build time
}

// DeepIndex is the persisted, corpus-wide index (spec.md §3/§4.9).
type DeepIndex struct {
	Version         uint32
	Files           map[string]FileEntry // path -> entry
	AvgDocLength    float64
	TotalDocs       uint32
	DocFrequencies  map[string]uint32 // term -> number of files containing it
	PageRankScores  map[string]float64 // path -> normalized PageRank score, (0,1]
}

// SignalBreakdown exposes every signal that contributed to a ScoredFile's
// final score, for explainability.
type SignalBreakdown struct {
	BM25F      float64
	Heuristic  float64
	PageRank   *float64
	GitRecency *float64
}

// ScoredFile is one file's relevance result for a query.
type ScoredFile struct {
	Path     string
	Score    float64
	Signals  SignalBreakdown
	Tokens   uint64
	Language Language
	Role     FileRole
}

// TokenBudget bounds the final output by bytes and/or tokens.
type TokenBudget struct {
	MaxBytes  *uint64
	MaxTokens *uint64
}

// Enforce walks a score-sorted (descending) list and keeps a running total,
// halting on the first file that would violate a cap — unless the result is
// still empty, in which case that first file is kept anyway (spec.md §4.8,
// invariant 5, scenario S6).
func (b TokenBudget) Enforce(files []ScoredFile) []ScoredFile {
	result := make([]ScoredFile, 0, len(files))
	var totalBytes, totalTokens uint64

	for _, f := range files {
		fileBytes := f.Tokens * 4
		fileTokens := f.Tokens

		if b.MaxBytes != nil && totalBytes+fileBytes > *b.MaxBytes && len(result) != 0 {
			break
		}
		if b.MaxTokens != nil && totalTokens+fileTokens > *b.MaxTokens && len(result) != 0 {
			break
		}

		totalBytes += fileBytes
		totalTokens += fileTokens
		result = append(result, f)
	}

	return result
}
