package languageServer

import (
	"context"
	"sort"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
)

const completionSigils = "!.#"

var definitionSymbolKinds = map[parser.DefinitionKind]SymbolKind{
	parser.DefinitionLabel:    SymbolKindFunction,
	parser.DefinitionConstant: SymbolKindConstant,
	parser.DefinitionAddress:  SymbolKindVariable,
	parser.DefinitionMacro:    SymbolKindMethod,
}

var definitionCompletionKinds = map[parser.DefinitionKind]CompletionItemKind{
	parser.DefinitionLabel:    CompletionItemKindFunction,
	parser.DefinitionConstant: CompletionItemKindConstant,
	parser.DefinitionAddress:  CompletionItemKindVariable,
	parser.DefinitionMacro:    CompletionItemKindMethod,
}

// documentSymbols lists the definitions of the document in source order.
func documentSymbols(ast *parser.AST) []DocumentSymbol {
	symbols := []DocumentSymbol{}
	for _, st := range ast.Statements {
		if st.Type != parser.StatementDefinition {
			continue
		}
		first := ast.TextRangeOf(ast.Tokens[st.Start].Range)
		last := ast.TextRangeOf(ast.Tokens[st.Start+st.Count-1].Range)
		symbols = append(symbols, DocumentSymbol{
			Name:           ast.StatementName(st),
			Detail:         st.Kind.String(),
			Kind:           definitionSymbolKinds[st.Kind],
			Range:          parser.TextRange{Start: first.Start, End: last.End},
			SelectionRange: ast.TextRangeOf(ast.Tokens[st.Name].Range),
		})
	}
	return symbols
}

func (h *handler) documentSymbolRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentSymbolParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	symbols := []DocumentSymbol{}
	if ast := h.currentAST(decodedParams.TextDocument.URI); ast != nil {
		symbols = documentSymbols(ast)
	}
	conn.Reply(context.Background(), req.ID, symbols)
}

// linePrefix returns the text of line in front of char, counted in UTF-16
// units.
func linePrefix(text string, line, char int) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	units := 0
	for i, ch := range lines[line] {
		if units >= char {
			return lines[line][:i]
		}
		units++
		if ch >= 0x10000 {
			units++
		}
	}
	return lines[line]
}

// completionWord returns the word being typed at the end of prefix, including
// a directive sigil in front of it.
func completionWord(prefix string) string {
	start := len(prefix)
	for start > 0 && isWordByte(prefix[start-1]) {
		start--
	}
	if start > 0 && strings.IndexByte(completionSigils, prefix[start-1]) >= 0 {
		start--
	}
	return prefix[start:]
}

func isWordByte(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// completions suggests keywords and defined symbols starting with word.
func completions(ast *parser.AST, word string) []CompletionItem {
	dialect := ast.Dialect
	items := []CompletionItem{}
	if word == "" {
		return items
	}

	seen := map[string]bool{}
	add := func(label string, kind CompletionItemKind, detail string) {
		if seen[label] {
			return
		}
		seen[label] = true
		items = append(items, CompletionItem{Label: label, Kind: kind, Detail: detail})
	}

	for _, keyword := range grammar.FuzzySearch(word) {
		add(keyword, CompletionItemKindKeyword, "directive")
	}
	// FuzzySearch has no LLVM catalog
	if dialect == grammar.DialectLLVM && word[0] == '.' {
		for _, directive := range grammar.CatalogFor(dialect).Directives {
			if keyword := "." + directive; strings.HasPrefix(keyword, word) {
				add(keyword, CompletionItemKindKeyword, "directive")
			}
		}
	}

	if strings.IndexByte(completionSigils, word[0]) < 0 {
		for _, mnemonic := range grammar.Mnemonics(dialect) {
			if strings.HasPrefix(mnemonic, strings.ToLower(word)) {
				add(mnemonic, CompletionItemKindKeyword, "instruction")
			}
		}
	}

	for name, index := range ast.Definitions {
		if strings.HasPrefix(name, word) && name != word {
			kind := ast.Statements[index].Kind
			add(name, definitionCompletionKinds[kind], kind.String())
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Label < items[j].Label
	})
	return items
}

func (h *handler) completionRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	uri := decodedParams.TextDocument.URI
	pos := decodedParams.Position

	h.mu.Lock()
	doc, ok := h.documents[string(uri)]
	text := ""
	if ok {
		text = doc.item.Text
	}
	h.mu.Unlock()

	list := CompletionList{Items: []CompletionItem{}}
	if !ok {
		conn.Reply(context.Background(), req.ID, list)
		return
	}

	ast := h.currentAST(uri)
	if ast == nil {
		conn.Reply(context.Background(), req.ID, list)
		return
	}
	word := completionWord(linePrefix(text, pos.Line, pos.Char))
	replace := parser.TextRange{
		Start: parser.TextPosition{Line: pos.Line, Char: pos.Char - len(word)},
		End:   pos,
	}
	list.Items = completions(ast, word)
	for i := range list.Items {
		list.Items[i].TextEdit = &TextEdit{Range: replace, NewText: list.Items[i].Label}
	}
	conn.Reply(context.Background(), req.ID, list)
}
