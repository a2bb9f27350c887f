package languageServer

import (
	"context"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
)

// indices into semanticTokenTypes
const (
	semanticComment = iota
	semanticMacro
	semanticVariable
	semanticKeyword
	semanticString
	semanticNumber
	semanticOperator
	semanticFunction
)

var semanticTokenTypes = []string{"comment", "macro", "variable", "keyword", "string", "number", "operator", "function"}

var semanticTokenModifiers = []string{"declaration"}

const modifierDeclaration = 1 << 0

func semanticType(ast *parser.AST, i int) (uint32, bool) {
	tok := ast.Tokens[i]
	switch tok.Type {
	case parser.TokenComment:
		return semanticComment, true
	case parser.TokenPreprocessor, parser.TokenMacro:
		return semanticMacro, true
	case parser.TokenString:
		return semanticString, true
	case parser.TokenNumber:
		return semanticNumber, true
	case parser.TokenReference, parser.TokenOperator:
		return semanticOperator, true
	case parser.TokenIdentifier:
		name := ast.Text(tok)
		if grammar.IsMnemonic(ast.Dialect, name) {
			return semanticKeyword, true
		}
		if st, ok := ast.ResolveReference(name); ok && st.Kind == parser.DefinitionMacro {
			return semanticFunction, true
		}
		return semanticVariable, true
	}
	return 0, false
}

// firstLineLength is the UTF-16 length of the part of a token on its first
// line. Editors cannot show a semantic token across lines.
func firstLineLength(ast *parser.AST, tok parser.Token) int {
	text := ast.Text(tok)
	if end := strings.IndexAny(text, "\r\n"); end >= 0 {
		text = text[:end]
	}
	units := 0
	for _, ch := range text {
		units++
		if ch >= 0x10000 {
			units++
		}
	}
	return units
}

// encodeSemanticTokens produces the relative five integer encoding of every
// token except line breaks.
func encodeSemanticTokens(ast *parser.AST) []uint32 {
	declared := map[int]bool{}
	for _, st := range ast.Statements {
		if st.Type == parser.StatementDefinition {
			declared[st.Name] = true
		}
	}

	data := []uint32{}
	prevLine, prevChar := 0, 0
	for i, tok := range ast.Tokens {
		typ, ok := semanticType(ast, i)
		if !ok {
			continue
		}
		length := firstLineLength(ast, tok)
		if length == 0 {
			continue
		}

		line, char := tok.Range.Row, tok.Range.Col
		deltaStart := char
		if line == prevLine {
			deltaStart = char - prevChar
		}
		modifiers := uint32(0)
		if declared[i] {
			modifiers |= modifierDeclaration
		}

		data = append(data, uint32(line-prevLine), uint32(deltaStart), uint32(length), typ, modifiers)
		prevLine, prevChar = line, char
	}
	return data
}

func (h *handler) semanticTokensRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := SemanticTokensParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	result := SemanticTokens{Data: []uint32{}}
	if ast := h.currentAST(decodedParams.TextDocument.URI); ast != nil {
		result.Data = encodeSemanticTokens(ast)
	}
	conn.Reply(context.Background(), req.ID, result)
}
