package parser

import (
	"context"
	"unicode"

	"github.com/c64tools/asmlens/grammar"
)

// lineState tracks whether a token has been emitted on the current physical
// line. The meaning of a leading '+' or '!' depends on it.
type lineState int

const (
	lineStart lineState = iota
	midLine
)

// builder owns the AST while a parse is in progress and groups the emitted
// tokens into per-line runs for the classifier.
type builder struct {
	ast     *AST
	dialect grammar.Dialect
	state   lineState

	runStart int
	runCount int

	unterminated []Range // string literals that reached the end of the input
	redefined    []redefinition
}

type redefinition struct {
	name     string
	previous int // statement index
	current  int
}

// Parse tokenizes src under the given dialect and classifies every line into
// the returned symbol index. It never fails: characters it does not recognise
// are skipped. When ctx is cancelled the scan stops at once and the returned
// AST is marked Partial.
func Parse(ctx context.Context, src, filename string, dialect grammar.Dialect) *AST {
	if ctx == nil {
		ctx = context.Background()
	}

	b := &builder{
		ast: &AST{
			Filename:    filename,
			Source:      src,
			Dialect:     dialect,
			Tokens:      []Token{},
			Statements:  []Statement{},
			Definitions: map[string]int{},
			References:  []int{},
		},
		dialect: dialect,
	}

	b.scan(ctx, newCursor(src))

	if b.ast.Partial {
		b.ast.Diagnostics = append(b.ast.Diagnostics, Infos.ParseCancelled(filename))
		return b.ast
	}

	b.flush()
	b.reportDiagnostics()
	return b.ast
}

func (b *builder) scan(ctx context.Context, c *cursor) {
	done := ctx.Done()
	d := b.dialect

	for !c.eof() {
		select {
		case <-done:
			b.ast.Partial = true
			return
		default:
		}

		ch := c.peek()
		ch2 := c.peekNext()

		switch {
		case ch == '\r' || ch == '\n':
			m := c.mark()
			c.nextline()
			b.emit(TokenLineBreak, c.rangeFrom(m))

		case ch == '*' && ch2 == '=':
			// program counter assignment, shown as a comment
			b.emit(TokenComment, scanToLineEnd(c))

		case ch == ';' || (ch == '/' && ch2 == '/'):
			b.emit(TokenComment, scanToLineEnd(c))

		case ch == '#' && (ch2 == '<' || ch2 == '>'):
			// low/high byte operator
			c.next()
			c.next()

		case ch == '#' && d == grammar.DialectKick:
			b.emit(TokenPreprocessor, scanToLineEnd(c))

		case ch == '+' && ch2 == '+' && d == grammar.DialectAcme:
			// anonymous label
			c.next()
			c.next()

		case b.isIdentifierLead(ch, ch2):
			b.scanIdentifier(c, ch, ch2)

		case b.isDirectiveLead(ch):
			m := c.mark()
			c.next()
			for isSymbolChar(d, c.peek()) {
				c.next()
			}
			b.emit(TokenMacro, c.rangeFrom(m))

		case ch == '\'' || ch == '"':
			b.scanString(c, ch)

		case isDecimal(ch):
			m := c.mark()
			for isDecimal(c.peek()) {
				c.next()
			}
			b.emit(TokenNumber, c.rangeFrom(m))

		case ch == '$' && isHex(ch2):
			// the sigil is part of the literal
			m := c.mark()
			c.next()
			for isHex(c.peek()) {
				c.next()
			}
			b.emit(TokenNumber, c.rangeFrom(m))

		case ch == '%' && isBinary(ch2):
			m := c.mark()
			c.next()
			for isBinary(c.peek()) {
				c.next()
			}
			b.emit(TokenNumber, c.rangeFrom(m))

		case ch == '=':
			m := c.mark()
			c.next()
			b.emit(TokenOperator, c.rangeFrom(m))

		default:
			c.next()
		}
	}
}

func scanToLineEnd(c *cursor) Range {
	m := c.mark()
	for !c.eof() && c.peek() != '\r' && c.peek() != '\n' {
		c.next()
	}
	return c.rangeFrom(m)
}

func (b *builder) isIdentifierLead(ch, ch2 rune) bool {
	d := b.dialect
	switch {
	case ch == '.' && (d == grammar.DialectAcme || d == grammar.DialectTmpx):
		return true
	case ch == '!' && d == grammar.DialectKick:
		return true
	case ch == '_' || unicode.IsLetter(ch):
		return true
	case ch == '+' && isSymbolChar(d, ch2):
		return true
	case ch == '#' && d == grammar.DialectTmpx && isSymbolChar(d, ch2):
		return true
	}
	return false
}

func (b *builder) isDirectiveLead(ch rune) bool {
	switch b.dialect {
	case grammar.DialectAcme:
		return ch == '!'
	case grammar.DialectKick, grammar.DialectLLVM:
		return ch == '.'
	case grammar.DialectTmpx:
		return ch == '#'
	}
	return false
}

// scanIdentifier reads an identifier, splitting off the sigil of a reference
// ('+macro' at line start, '#name' in TMPx, '!label' mid-line in KickAssembler)
// into its own Reference token.
func (b *builder) scanIdentifier(c *cursor, ch, ch2 rune) {
	d := b.dialect
	leadConsumed := false

	switch {
	case ch == '+' && isSymbolChar(d, ch2):
		if b.state == lineStart {
			b.emitReference(c)
		} else {
			// binary '+' in front of an operand
			c.next()
		}
		leadConsumed = true
	case ch == '#' && d == grammar.DialectTmpx:
		b.emitReference(c)
		leadConsumed = true
	case ch == '!' && d == grammar.DialectKick && isSymbolChar(d, ch2) && b.state == midLine:
		b.emitReference(c)
		leadConsumed = true
	}

	m := c.mark()
	if !leadConsumed {
		c.next()
	}
	for isSymbolChar(d, c.peek()) {
		c.next()
	}
	r := c.rangeFrom(m)

	typ := TokenIdentifier
	if d == grammar.DialectTmpx && ch == '.' {
		text := b.ast.Source[r.Offset:r.End()]
		if grammar.IsDirective(d, text[1:]) {
			typ = TokenMacro
		}
	}
	b.emit(typ, r)
}

func (b *builder) emitReference(c *cursor) {
	m := c.mark()
	c.next()
	b.emit(TokenReference, c.rangeFrom(m))
}

// scanString reads a quoted literal. The token covers the content only; an
// unterminated literal runs to the end of the input. Empty literals emit no
// token.
func (b *builder) scanString(c *cursor, quote rune) {
	c.next()
	m := c.mark()
	for !c.eof() && c.peek() != quote {
		if ch := c.peek(); ch == '\r' || ch == '\n' {
			c.nextline()
		} else {
			c.next()
		}
	}
	r := c.rangeFrom(m)

	if c.eof() {
		b.unterminated = append(b.unterminated, r)
	} else {
		c.next()
	}

	if r.Length > 0 {
		b.emit(TokenString, r)
	}
}

// emit appends a token and feeds the line accumulator.
func (b *builder) emit(typ TokenType, r Range) {
	tok := Token{Type: typ, Range: r}
	if b.state == lineStart && typ != TokenLineBreak {
		tok.First = true
	}
	b.ast.Tokens = append(b.ast.Tokens, tok)
	index := len(b.ast.Tokens) - 1

	switch typ {
	case TokenLineBreak:
		b.flush()
		b.state = lineStart
	case TokenComment:
		b.flush()
		b.classify(index, 1)
		b.state = midLine
	default:
		if b.runCount == 0 {
			b.runStart = index
		}
		b.runCount++
		b.state = midLine
	}
}

// flush hands the open token run to the classifier.
func (b *builder) flush() {
	if b.runCount > 0 {
		b.classify(b.runStart, b.runCount)
	}
	b.runStart = 0
	b.runCount = 0
}

func isSymbolChar(d grammar.Dialect, ch rune) bool {
	if ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) {
		return true
	}
	// GNU style symbol names
	return d == grammar.DialectLLVM && (ch == '.' || ch == '$')
}

func isDecimal(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHex(ch rune) bool {
	return isDecimal(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBinary(ch rune) bool {
	return ch == '0' || ch == '1'
}
