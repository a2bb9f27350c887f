package languageServer

import (
	"context"
	"testing"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
)

const acmeSource = "start lda #$10\n  jmp start\n!src \"lib.a\"\n"

func pos(line, char int) parser.TextPosition {
	return parser.TextPosition{Line: line, Char: char}
}

func TestEvaluateHover(t *testing.T) {
	ast := parser.Parse(context.Background(), acmeSource, "main.a", grammar.DialectAcme)

	cases := []struct {
		position parser.TextPosition
		expected string
	}{
		{pos(1, 7), "Label `start`\n\nDefined on line 1:\n\n```\nstart lda #$10\n```"},
		{pos(0, 12), "Integer Literal `$10`\n\n`16` | `$10` | `%10000`"},
		{pos(0, 7), "`LDA` Load Accumulator with Memory.\n\n`A = M`"},
		{pos(2, 0), "Directive `!src` (acme)"},
		{pos(2, 7), "Includes `lib.a`"},
	}

	for _, c := range cases {
		text, _, ok := evaluateHover(ast, c.position)
		if !ok {
			t.Errorf("Expected a hover at %v", c.position)
			continue
		}
		if text != c.expected {
			t.Errorf("Expected %q, got %q", c.expected, text)
		}
	}

	if _, _, ok := evaluateHover(ast, pos(1, 0)); ok {
		t.Errorf("Expected no hover on leading whitespace")
	}
}

func TestDescribeBitInstruction(t *testing.T) {
	expected := "`BBR3` Branch on Bit 3 Reset. (65C02)"
	if text := describeMnemonic("bbr3"); text != expected {
		t.Errorf("Expected %q, got %q", expected, text)
	}
}

func TestFindDefinition(t *testing.T) {
	uri := DocumentUri("file:///home/c64/src/main.a")
	ast := parser.Parse(context.Background(), acmeSource, string(uri), grammar.DialectAcme)

	location, ok := findDefinition(ast, uri, pos(1, 8))
	if !ok {
		t.Fatalf("Expected a definition for start")
	}
	expected := parser.TextRange{Start: pos(0, 0), End: pos(0, 5)}
	if location.URI != uri || location.Range != expected {
		t.Errorf("Expected %v in %s, got %v in %s", expected, uri, location.Range, location.URI)
	}

	location, ok = findDefinition(ast, uri, pos(2, 7))
	if !ok {
		t.Fatalf("Expected the include to resolve")
	}
	if location.URI != "file:///home/c64/src/lib.a" {
		t.Errorf("Expected file:///home/c64/src/lib.a, got %s", location.URI)
	}

	if _, ok := findDefinition(ast, uri, pos(0, 7)); ok {
		t.Errorf("Expected no definition for a mnemonic")
	}
}

func TestFindReferencesOfMultiLabel(t *testing.T) {
	uri := DocumentUri("file:///main.kick")
	ast := parser.Parse(context.Background(), "!loop: dex\n  bne !loop-\n", string(uri), grammar.DialectKick)

	locations := findReferences(ast, uri, pos(1, 8), true)
	expected := []parser.TextRange{
		{Start: pos(0, 0), End: pos(0, 5)},
		{Start: pos(1, 7), End: pos(1, 11)},
	}
	if len(locations) != len(expected) {
		t.Fatalf("Expected %d references, got %d", len(expected), len(locations))
	}
	for i, r := range expected {
		if locations[i].Range != r {
			t.Errorf("Expected reference %d at %v, got %v", i, r, locations[i].Range)
		}
	}

	if locations := findReferences(ast, uri, pos(1, 8), false); len(locations) != 1 {
		t.Errorf("Expected 1 reference without the declaration, got %d", len(locations))
	}
}

func TestDocumentSymbols(t *testing.T) {
	source := "CHROUT = $ffd2\nstart jsr CHROUT\n!macro wait\n"
	ast := parser.Parse(context.Background(), source, "main.a", grammar.DialectAcme)

	expected := []DocumentSymbol{
		{Name: "CHROUT", Detail: "Constant", Kind: SymbolKindConstant,
			Range: parser.TextRange{Start: pos(0, 0), End: pos(0, 14)}, SelectionRange: parser.TextRange{Start: pos(0, 0), End: pos(0, 6)}},
		{Name: "start", Detail: "Label", Kind: SymbolKindFunction,
			Range: parser.TextRange{Start: pos(1, 0), End: pos(1, 16)}, SelectionRange: parser.TextRange{Start: pos(1, 0), End: pos(1, 5)}},
		{Name: "wait", Detail: "Macro", Kind: SymbolKindMethod,
			Range: parser.TextRange{Start: pos(2, 0), End: pos(2, 11)}, SelectionRange: parser.TextRange{Start: pos(2, 7), End: pos(2, 11)}},
	}

	symbols := documentSymbols(ast)
	if len(symbols) != len(expected) {
		t.Fatalf("Expected %d symbols, got %d", len(expected), len(symbols))
	}
	for i, e := range expected {
		if symbols[i] != e {
			t.Errorf("Expected %+v, got %+v", e, symbols[i])
		}
	}
}
