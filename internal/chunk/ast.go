package chunk

import (
	"sync"

	"github.com/Demwunz/topo/internal/model"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsc "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tsphp "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tsruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tsrust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammarEntry bundles a bound grammar with its pre-compiled capture query
// and the capture indices for each standardized tag, resolved once at
// startup rather than re-looked-up on every parse.
type grammarEntry struct {
	language    *sitter.Language
	query       *sitter.Query
	functionIdx uint32
	typeIdx     uint32
	implIdx     uint32
	importIdx   uint32
	nameIdx     uint32
	hasFunction bool
	hasType     bool
	hasImpl     bool
	hasImport   bool
	hasName     bool
}

var (
	grammarsOnce sync.Once
	grammars     map[model.Language]*grammarEntry
)

func languageFor(lang model.Language) *sitter.Language {
	switch lang {
	case model.LangRust:
		return sitter.NewLanguage(tsrust.Language())
	case model.LangPython:
		return sitter.NewLanguage(tspython.Language())
	case model.LangTypeScript:
		return sitter.NewLanguage(tstypescript.LanguageTypescript())
	case model.LangJava:
		return sitter.NewLanguage(tsjava.Language())
	case model.LangRuby:
		return sitter.NewLanguage(tsruby.Language())
	case model.LangC:
		return sitter.NewLanguage(tsc.Language())
	case model.LangPHP:
		return sitter.NewLanguage(tsphp.LanguagePHP())
	default:
		return nil
	}
}

func initGrammars() {
	grammars = make(map[model.Language]*grammarEntry, len(astQueries))
	for lang, querySrc := range astQueries {
		ts := languageFor(lang)
		if ts == nil {
			continue
		}
		query, queryErr := sitter.NewQuery(ts, querySrc)
		if queryErr != nil {
			continue
		}

		entry := &grammarEntry{language: ts, query: query}
		names := query.CaptureNames()
		for i, name := range names {
			idx := uint32(i)
			switch name {
			case "function":
				entry.functionIdx, entry.hasFunction = idx, true
			case "type":
				entry.typeIdx, entry.hasType = idx, true
			case "impl":
				entry.implIdx, entry.hasImpl = idx, true
			case "import":
				entry.importIdx, entry.hasImport = idx, true
			case "name":
				entry.nameIdx, entry.hasName = idx, true
			}
		}
		grammars[lang] = entry
	}
}

// AST parses content with the matching bound tree-sitter grammar and runs
// the language's capture query, producing one Chunk per @function/@type/
// @impl/@import match (§4.2). Returns nil when the grammar is missing, the
// parse fails, or the query yields no matches — the caller falls back to
// Regex in every such case. Chunk.content is left empty: scoring only
// consumes the name, and copying node text would be a large, unnecessary
// allocation on big repos.
func AST(content string, lang model.Language) []model.Chunk {
	grammarsOnce.Do(initGrammars)

	entry, ok := grammars[lang]
	if !ok {
		return nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(entry.language); err != nil {
		return nil
	}

	source := []byte(content)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(entry.query, tree.RootNode(), source)
	var chunks []model.Chunk

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var outer *sitter.Node
		var nameNode *sitter.Node
		kind := model.ChunkOther
		foundKind := false

		for _, capture := range match.Captures {
			switch {
			case entry.hasName && capture.Index == entry.nameIdx:
				n := capture.Node
				nameNode = &n
			case entry.hasFunction && capture.Index == entry.functionIdx:
				n := capture.Node
				outer = &n
				kind = model.ChunkFunction
				foundKind = true
			case entry.hasType && capture.Index == entry.typeIdx:
				n := capture.Node
				outer = &n
				kind = model.ChunkType
				foundKind = true
			case entry.hasImpl && capture.Index == entry.implIdx:
				n := capture.Node
				outer = &n
				kind = model.ChunkImpl
				foundKind = true
			case entry.hasImport && capture.Index == entry.importIdx:
				n := capture.Node
				outer = &n
				kind = model.ChunkImport
				foundKind = true
			}
		}

		if outer == nil || !foundKind {
			continue
		}

		name := ""
		if nameNode != nil {
			name = string(source[nameNode.StartByte():nameNode.EndByte()])
		}

		chunks = append(chunks, model.Chunk{
			Kind:      kind,
			Name:      name,
			StartLine: uint32(outer.StartPosition().Row) + 1,
			EndLine:   uint32(outer.EndPosition().Row) + 1,
		})
	}

	return chunks
}
