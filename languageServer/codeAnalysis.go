package languageServer

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
)

// statementAt returns the statement whose token run holds token i.
func statementAt(ast *parser.AST, i int) (parser.Statement, bool) {
	statements := ast.Statements
	j := sort.Search(len(statements), func(j int) bool {
		return statements[j].Start+statements[j].Count > i
	})
	if j == len(statements) || statements[j].Start > i {
		return parser.Statement{}, false
	}
	return statements[j], true
}

// evaluateHover returns the markdown shown for the token under pos.
func evaluateHover(ast *parser.AST, pos parser.TextPosition) (string, parser.TextRange, bool) {
	i := ast.TokenAt(pos)
	if i < 0 {
		return "", parser.TextRange{}, false
	}
	tok := ast.Tokens[i]
	text := ast.Text(tok)
	r := ast.TextRangeOf(tok.Range)

	switch tok.Type {
	case parser.TokenIdentifier, parser.TokenReference:
		name, j, ok := ast.SymbolAt(pos)
		if !ok {
			return "", r, false
		}
		r = ast.TextRangeOf(ast.Tokens[j].Range)

		if grammar.IsMnemonic(ast.Dialect, name) {
			return describeMnemonic(name), r, true
		}
		st, ok := ast.ResolveReference(name)
		if !ok {
			return fmt.Sprintf(hoverInfoFormats.symbolReference, name), r, true
		}
		return describeDefinition(ast, st), r, true

	case parser.TokenMacro:
		name := strings.TrimLeft(text, "!.#")
		if grammar.IsDirective(ast.Dialect, name) {
			return fmt.Sprintf(hoverInfoFormats.directive, text, ast.Dialect), r, true
		}
		return "", r, false

	case parser.TokenPreprocessor:
		fields := strings.Fields(text)
		return fmt.Sprintf(hoverInfoFormats.preprocessor, fields[0]), r, true

	case parser.TokenNumber:
		value, ok := numberValue(text)
		if !ok {
			return "", r, false
		}
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, text, value, value, value), r, true

	case parser.TokenString:
		if st, ok := statementAt(ast, i); ok && st.Type == parser.StatementInclude && st.Name == i {
			return fmt.Sprintf(hoverInfoFormats.includeStatement, text), r, true
		}
	}

	return "", r, false
}

func describeDefinition(ast *parser.AST, st parser.Statement) string {
	format := hoverInfoFormats.labelDefinition
	switch st.Kind {
	case parser.DefinitionConstant:
		format = hoverInfoFormats.constantDefinition
	case parser.DefinitionAddress:
		format = hoverInfoFormats.addressDefinition
	case parser.DefinitionMacro:
		format = hoverInfoFormats.macroDefinition
	}
	line := ast.Tokens[st.Name].Range.Row + 1
	return fmt.Sprintf(format, ast.StatementName(st), line, strings.TrimSpace(ast.LineText(st.Name)))
}

func describeMnemonic(name string) string {
	key := strings.ToLower(name)
	if description, ok := instructionDescriptions[key]; ok {
		return fmt.Sprintf(hoverInfoFormats.mnemonic, strings.ToUpper(key), description)
	}
	if len(key) == 4 {
		if format, ok := bitInstructionDescriptions[key[:3]]; ok {
			return fmt.Sprintf(hoverInfoFormats.mnemonic, strings.ToUpper(key), fmt.Sprintf(format, key[3]))
		}
	}
	return fmt.Sprintf(hoverInfoFormats.mnemonic, strings.ToUpper(key), "Instruction.")
}

// numberValue evaluates a numeric literal written with its sigil.
func numberValue(text string) (int64, bool) {
	base := 10
	switch {
	case strings.HasPrefix(text, "$"):
		base = 16
		text = text[1:]
	case strings.HasPrefix(text, "%"):
		base = 2
		text = text[1:]
	}
	value, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// includeTarget resolves the path of an include statement against the uri of
// the including document.
func includeTarget(documentURI DocumentUri, name string) (DocumentUri, bool) {
	u, err := url.Parse(string(documentURI))
	if err != nil || name == "" {
		return "", false
	}
	if path.IsAbs(name) {
		u.Path = name
	} else {
		u.Path = path.Join(path.Dir(u.Path), name)
	}
	return DocumentUri(u.String()), true
}

func (h *handler) hoverRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	ast := h.currentAST(decodedParams.TextDocument.URI)
	if ast == nil {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}
	text, r, ok := evaluateHover(ast, decodedParams.Position)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	conn.Reply(context.Background(), req.ID, Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: text,
		},
		Range: &r,
	})
}

// findDefinition locates the definition of the symbol or include under pos.
func findDefinition(ast *parser.AST, uri DocumentUri, pos parser.TextPosition) (Location, bool) {
	i := ast.TokenAt(pos)
	if i < 0 {
		return Location{}, false
	}

	if ast.Tokens[i].Type == parser.TokenString {
		st, ok := statementAt(ast, i)
		if !ok || st.Type != parser.StatementInclude || st.Name != i {
			return Location{}, false
		}
		target, ok := includeTarget(uri, ast.TokenText(i))
		if !ok {
			return Location{}, false
		}
		return Location{URI: target}, true
	}

	name, _, ok := ast.SymbolAt(pos)
	if !ok {
		return Location{}, false
	}
	st, ok := ast.ResolveReference(name)
	if !ok {
		return Location{}, false
	}
	return Location{URI: uri, Range: ast.TextRangeOf(ast.Tokens[st.Name].Range)}, true
}

func (h *handler) definitionRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	uri := decodedParams.TextDocument.URI
	ast := h.currentAST(uri)
	if ast == nil {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}
	location, ok := findDefinition(ast, uri, decodedParams.Position)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}
	conn.Reply(context.Background(), req.ID, location)
}

// findReferences lists every occurrence of the symbol under pos. KickAssembler
// multi-labels are spelled with and without their '!' so both are collected.
func findReferences(ast *parser.AST, uri DocumentUri, pos parser.TextPosition, includeDeclaration bool) []Location {
	locations := []Location{}
	name, _, ok := ast.SymbolAt(pos)
	if !ok {
		return locations
	}

	names := []string{name}
	if ast.Dialect == grammar.DialectKick {
		base := strings.TrimPrefix(name, "!")
		if _, ok := ast.Lookup("!" + base); ok {
			names = []string{base, "!" + base}
		}
	}

	declarations := map[int]bool{}
	indices := []int{}
	for _, n := range names {
		if st, ok := ast.Lookup(n); ok {
			declarations[st.Name] = true
		}
		indices = append(indices, ast.Occurrences(n)...)
	}
	sort.Ints(indices)

	for _, i := range indices {
		if !includeDeclaration && declarations[i] {
			continue
		}
		locations = append(locations, Location{URI: uri, Range: ast.TextRangeOf(ast.Tokens[i].Range)})
	}
	return locations
}

func (h *handler) referencesRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := ReferenceParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	uri := decodedParams.TextDocument.URI
	locations := []Location{}
	if ast := h.currentAST(uri); ast != nil {
		locations = findReferences(ast, uri, decodedParams.Position, decodedParams.Context.IncludeDeclaration)
	}
	conn.Reply(context.Background(), req.ID, locations)
}
