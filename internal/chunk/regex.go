package chunk

import (
	"strings"
	"unicode"

	"github.com/Demwunz/topo/internal/model"
)

// modifierPrefixes are per-language leading keywords stripped before keyword
// matching: visibility, async/static, decorators and the like. Stripping is
// repeated until none apply, so "pub async fn" reduces to "fn".
var modifierPrefixes = map[model.Language][]string{
	model.LangRust:       {"pub(crate) ", "pub ", "async ", "unsafe ", "const "},
	model.LangGo:         {},
	model.LangPython:     {"async "},
	model.LangJavaScript: {"export default ", "export ", "async ", "static "},
	model.LangTypeScript: {"export default ", "export ", "async ", "static ", "public ", "private ", "protected ", "abstract ", "readonly "},
	model.LangJava:       {"public ", "private ", "protected ", "static ", "final ", "abstract ", "synchronized ", "default "},
	model.LangKotlin:     {"public ", "private ", "internal ", "protected ", "open ", "override ", "abstract ", "suspend ", "inline "},
	model.LangRuby:       {},
	model.LangC:          {"static ", "inline ", "extern ", "const "},
	model.LangCpp:        {"static ", "inline ", "virtual ", "extern ", "const ", "explicit ", "template "},
	model.LangSwift:      {"public ", "private ", "internal ", "fileprivate ", "open ", "final ", "static ", "override "},
	model.LangScala:      {"private ", "protected ", "final ", "sealed ", "abstract ", "override ", "case "},
	model.LangPHP:        {"public ", "private ", "protected ", "static ", "abstract ", "final "},
	model.LangElixir:     {},
	model.LangR:          {},
	model.LangShell:      {},
}

// keywordRules maps a stripped line's leading keyword to the Chunk kind it
// introduces, per language. Keys are matched as plain line prefixes; most end
// in a space, while "#include" and R's "library(" style keys do not.
var keywordRules = map[model.Language][]struct {
	prefix string
	kind   model.ChunkKind
}{
	model.LangRust: {
		{"fn ", model.ChunkFunction},
		{"struct ", model.ChunkType},
		{"enum ", model.ChunkType},
		{"trait ", model.ChunkType},
		{"type ", model.ChunkType},
		{"impl ", model.ChunkImpl},
		{"use ", model.ChunkImport},
		{"mod ", model.ChunkImport},
	},
	model.LangGo: {
		{"func ", model.ChunkFunction},
		{"type ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangPython: {
		{"def ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"import ", model.ChunkImport},
		{"from ", model.ChunkImport},
	},
	model.LangJavaScript: {
		{"function ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangTypeScript: {
		{"function ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"interface ", model.ChunkType},
		{"type ", model.ChunkType},
		{"enum ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangJava: {
		{"class ", model.ChunkType},
		{"interface ", model.ChunkType},
		{"enum ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangKotlin: {
		{"fun ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"interface ", model.ChunkType},
		{"object ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangRuby: {
		{"def ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"module ", model.ChunkType},
		{"require ", model.ChunkImport},
		{"require_relative ", model.ChunkImport},
	},
	model.LangC: {
		{"struct ", model.ChunkType},
		{"enum ", model.ChunkType},
		{"typedef ", model.ChunkType},
		{"#include", model.ChunkImport},
	},
	model.LangCpp: {
		{"struct ", model.ChunkType},
		{"class ", model.ChunkType},
		{"enum ", model.ChunkType},
		{"namespace ", model.ChunkType},
		{"typedef ", model.ChunkType},
		{"template ", model.ChunkType},
		{"#include", model.ChunkImport},
	},
	model.LangSwift: {
		{"func ", model.ChunkFunction},
		{"struct ", model.ChunkType},
		{"class ", model.ChunkType},
		{"enum ", model.ChunkType},
		{"protocol ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangScala: {
		{"def ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"trait ", model.ChunkType},
		{"object ", model.ChunkType},
		{"import ", model.ChunkImport},
	},
	model.LangPHP: {
		{"function ", model.ChunkFunction},
		{"class ", model.ChunkType},
		{"interface ", model.ChunkType},
		{"trait ", model.ChunkType},
		{"namespace ", model.ChunkImport},
		{"use ", model.ChunkImport},
		{"require ", model.ChunkImport},
		{"require_once ", model.ChunkImport},
		{"include ", model.ChunkImport},
		{"include_once ", model.ChunkImport},
	},
	model.LangElixir: {
		{"def ", model.ChunkFunction},
		{"defmodule ", model.ChunkType},
		{"defstruct ", model.ChunkType},
		{"alias ", model.ChunkImport},
		{"import ", model.ChunkImport},
		{"use ", model.ChunkImport},
		{"require ", model.ChunkImport},
	},
	model.LangR: {
		{"library(", model.ChunkImport},
		{"require(", model.ChunkImport},
		{"source(", model.ChunkImport},
	},
	model.LangShell: {
		{"function ", model.ChunkFunction},
		{"source ", model.ChunkImport},
	},
}

// javaStatementPrefixes are statement-starting line prefixes that precede a
// parenthesis without naming a method or constructor call — ported from
// regex_chunker.rs's extract_java exclusion list so "return foo();",
// "new Foo(x);", "super(args);" and "this(args);" are never mistaken for
// method definitions.
var javaStatementPrefixes = []string{
	"if ", "for ", "while ", "switch ", "return ", "new ", "super(", "this(",
}

// isCommentLine applies the comment rule: "//" always; "#" too, except for
// C/C++ where a leading "#" starts a preprocessor directive (not a comment).
func isCommentLine(trimmed string, lang model.Language) bool {
	if strings.HasPrefix(trimmed, "//") {
		return true
	}
	if strings.HasPrefix(trimmed, "#") {
		if lang == model.LangC || lang == model.LangCpp {
			return false
		}
		return true
	}
	return false
}

func stripModifiers(line string, lang model.Language) string {
	prefixes := modifierPrefixes[lang]
	if len(prefixes) == 0 {
		return line
	}
	for {
		stripped := false
		for _, p := range prefixes {
			if rest, ok := strings.CutPrefix(line, p); ok {
				line = rest
				stripped = true
			}
		}
		if !stripped {
			return line
		}
	}
}

// identifierAfterKeyword extracts the name token right after a keyword
// prefix: letters/digits/underscore run, stopping at the first delimiter.
func identifierAfterKeyword(rest string) string {
	rest = strings.TrimLeft(rest, " \t*&")
	var b strings.Builder
	for _, r := range rest {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		break
	}
	return b.String()
}

// regexSupported reports whether the regex backend recognizes lang (it has
// an entry in keywordRules); everything else yields no chunks.
func regexSupported(lang model.Language) bool {
	_, ok := keywordRules[lang]
	return ok
}

// methodLikeLine recognizes a Java/C/C++ method/function definition: a
// "ReturnType name(" shape, requiring at least two space-separated tokens
// before the "(" (so a bare call like "calculate(a, b);" is rejected, the
// same rsplit_once(' ') requirement extract_java_method_name makes), after
// excluding statement lines that have no return type at all.
func methodLikeLine(trimmed string) (name string, ok bool) {
	parenIdx := strings.Index(trimmed, "(")
	if parenIdx <= 0 {
		return "", false
	}
	for _, prefix := range javaStatementPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return "", false
		}
	}

	before := strings.TrimSpace(trimmed[:parenIdx])
	fields := strings.Fields(before)
	if len(fields) < 2 {
		return "", false
	}
	last := fields[len(fields)-1]
	if last == "" || !unicode.IsLetter(rune(last[0])) {
		return "", false
	}
	for _, r := range last {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", false
		}
	}
	return last, true
}

// Regex extracts Chunks from content using per-language keyword prefix
// matching, one chunk per recognized line (start == end). It never fails:
// an unsupported language or a file with no recognizable lines yields an
// empty slice.
func Regex(content string, lang model.Language) []model.Chunk {
	if !regexSupported(lang) {
		return nil
	}

	lines := strings.Split(content, "\n")
	var chunks []model.Chunk

	rules := keywordRules[lang]
	useMethodHeuristic := lang == model.LangJava || lang == model.LangC || lang == model.LangCpp

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || isCommentLine(trimmed, lang) {
			continue
		}

		stripped := stripModifiers(trimmed, lang)
		lineNo := uint32(i + 1)

		matched := false
		for _, rule := range rules {
			if rest, ok := strings.CutPrefix(stripped, rule.prefix); ok {
				name := identifierAfterKeyword(rest)
				chunks = append(chunks, model.Chunk{
					Kind:      rule.kind,
					Name:      name,
					StartLine: lineNo,
					EndLine:   lineNo,
				})
				matched = true
				break
			}
		}

		if !matched && useMethodHeuristic {
			if name, ok := methodLikeLine(stripped); ok {
				chunks = append(chunks, model.Chunk{
					Kind:      model.ChunkFunction,
					Name:      name,
					StartLine: lineNo,
					EndLine:   lineNo,
				})
			}
		}
	}

	return chunks
}
