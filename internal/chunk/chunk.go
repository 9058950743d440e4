// Package chunk splits source file content into syntactic units (functions,
// types, impl blocks, imports) for the indexer's symbols field, via two
// interchangeable backends: a tree-sitter AST backend for languages with a
// bound grammar, and a fast line-oriented regex backend for everything else
// (§4.2).
package chunk

import "github.com/Demwunz/topo/internal/model"

// Composite tries the AST backend first; if it returns no chunks at all
// (unsupported language, parse failure, or a query with zero matches), it
// falls back to Regex. A partial AST result (e.g. functions found but no
// imports) is never supplemented by regex output — "empty" means the whole
// slice, not a missing category.
func Composite(content string, lang model.Language) []model.Chunk {
	if chunks := AST(content, lang); len(chunks) > 0 {
		return chunks
	}
	return Regex(content, lang)
}

// Default is the indexer's default chunker: regex only, favoring fast bulk
// indexing over AST precision. AST enrichment is opt-in, invoked directly
// via Composite or AST for on-demand detail.
func Default(content string, lang model.Language) []model.Chunk {
	return Regex(content, lang)
}
