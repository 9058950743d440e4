// Package tokenize implements the pure, deterministic tokenizer used by the
// IndexBuilder and the BM25F scorer (spec.md §4.5).
package tokenize

import "strings"

// stopWords is a small list of articles, prepositions, and auxiliaries
// removed after lowercasing, per spec.md §4.5.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"in": true, "on": true, "at": true, "of": true, "to": true, "for": true,
	"by": true, "with": true, "from": true, "as": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"and": true, "or": true, "but": true,
}

// Content tokenizes file body text: splits on non-alphanumeric/underscore
// boundaries, then on '_', then by camelCase rule, drops tokens shorter
// than 2 characters, lowercases, and removes stop words.
func Content(s string) []string {
	var out []string
	for _, word := range splitFunc(s, func(r rune) bool {
		return !isAlnum(r) && r != '_'
	}) {
		for _, sub := range strings.Split(word, "_") {
			out = append(out, splitCamelCase(sub)...)
		}
	}
	return finish(out)
}

// Path tokenizes a repo-relative path: splits on '/', '.', '-', '_', then
// camelCase, same min-length/lowercase/stopword rules as Content.
func Path(p string) []string {
	var out []string
	for _, word := range splitFunc(p, func(r rune) bool {
		return r == '/' || r == '.' || r == '-' || r == '_'
	}) {
		out = append(out, splitCamelCase(word)...)
	}
	return finish(out)
}

// Identifier tokenizes a single function/type name: split on '_', then
// camelCase, same min-length/lowercase/stopword rules.
func Identifier(name string) []string {
	var out []string
	for _, word := range strings.Split(name, "_") {
		out = append(out, splitCamelCase(word)...)
	}
	return finish(out)
}

func finish(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		lw := strings.ToLower(w)
		if stopWords[lw] {
			continue
		}
		out = append(out, lw)
	}
	return out
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r > 127) // treat non-ASCII as word characters, matching Rust's is_alphanumeric for common cases
}

func splitFunc(s string, isSep func(rune) bool) []string {
	var words []string
	var cur strings.Builder
	for _, r := range s {
		if isSep(r) {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// splitCamelCase implements the original's exact byte-level boundary rule:
// a lowercase→uppercase boundary, and an uppercase-run→lowercase-tail
// acronym boundary (parseHTTPResponse -> parse, HTTP, Response).
func splitCamelCase(s string) []string {
	var parts []string
	b := []byte(s)
	if len(b) == 0 {
		return parts
	}

	start := 0
	for i := 1; i < len(b); i++ {
		prevUpper := isASCIIUpper(b[i-1])
		currUpper := isASCIIUpper(b[i])
		currLower := isASCIILower(b[i])

		splitCamel := !prevUpper && currUpper
		splitAcronym := prevUpper && currLower && i >= 2 && isASCIIUpper(b[i-2])

		if splitCamel {
			parts = append(parts, s[start:i])
			start = i
		} else if splitAcronym {
			if start < i-1 {
				parts = append(parts, s[start:i-1])
			}
			start = i - 1
		}
	}

	if start < len(s) {
		parts = append(parts, s[start:])
	}

	return parts
}

func isASCIIUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isASCIILower(b byte) bool { return b >= 'a' && b <= 'z' }
