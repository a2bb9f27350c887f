package parser_test

import (
	"context"
	"testing"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
)

func TestTokenAt(t *testing.T) {
	ast := parser.Parse(context.Background(), "loop: lda #1\n  jmp loop\n", "test.a", grammar.DialectAcme)

	cases := []struct {
		pos  parser.TextPosition
		text string
	}{
		{parser.TextPosition{Line: 0, Char: 0}, "loop"},
		{parser.TextPosition{Line: 0, Char: 3}, "loop"},
		{parser.TextPosition{Line: 0, Char: 4}, ""},
		{parser.TextPosition{Line: 0, Char: 7}, "lda"},
		{parser.TextPosition{Line: 0, Char: 11}, "1"},
		{parser.TextPosition{Line: 1, Char: 1}, ""},
		{parser.TextPosition{Line: 1, Char: 7}, "loop"},
		{parser.TextPosition{Line: 5, Char: 0}, ""},
	}

	for _, c := range cases {
		text := ""
		if i := ast.TokenAt(c.pos); i >= 0 {
			text = ast.TokenText(i)
		}
		if text != c.text {
			t.Errorf("Expected token at %d:%d to be \"%s\", got \"%s\"", c.pos.Line, c.pos.Char, c.text, text)
		}
	}
}

func TestSymbolAtStepsOverReferenceSigil(t *testing.T) {
	ast := parser.Parse(context.Background(), "!macro draw {\n}\n+draw\n", "test.a", grammar.DialectAcme)

	name, index, ok := ast.SymbolAt(parser.TextPosition{Line: 2, Char: 0})
	if !ok || name != "draw" {
		t.Fatalf("Expected symbol draw, got \"%s\" (%v)", name, ok)
	}
	if ast.Tokens[index].Type != parser.TokenIdentifier {
		t.Errorf("Expected an identifier token, got %s", ast.Tokens[index].Type)
	}

	st, ok := ast.ResolveReference(name)
	if !ok || st.Kind != parser.DefinitionMacro {
		t.Errorf("Expected draw to resolve to a macro definition")
	}

	if _, _, ok := ast.SymbolAt(parser.TextPosition{Line: 0, Char: 1}); ok {
		t.Errorf("Expected no symbol on a directive keyword")
	}
}

func TestOccurrencesAndLineText(t *testing.T) {
	ast := parser.Parse(context.Background(), "x = 1\r\n  lda x\n  ldx y\n  sta x", "test.a", grammar.DialectAcme)

	occurrences := ast.Occurrences("x")
	if len(occurrences) != 3 {
		t.Fatalf("Expected 3 occurrences of x, got %d", len(occurrences))
	}

	if line := ast.LineText(occurrences[0]); line != "x = 1" {
		t.Errorf("Expected line \"x = 1\", got \"%s\"", line)
	}
	if line := ast.LineText(occurrences[2]); line != "  sta x" {
		t.Errorf("Expected line \"  sta x\", got \"%s\"", line)
	}
}
