package parser

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/c64tools/asmlens/grammar"
)

// Text returns the source text covered by a token.
func (a *AST) Text(t Token) string {
	return a.Source[t.Range.Offset:t.Range.End()]
}

// TokenText returns the text of the token at index i, or "" if out of range.
func (a *AST) TokenText(i int) string {
	if i < 0 || i >= len(a.Tokens) {
		return ""
	}
	return a.Text(a.Tokens[i])
}

// StatementName returns the text of the statement's name token.
func (a *AST) StatementName(st Statement) string {
	if st.Name < 0 {
		return ""
	}
	return a.TokenText(st.Name)
}

// Lookup returns the definition registered for name.
func (a *AST) Lookup(name string) (Statement, bool) {
	index, ok := a.Definitions[name]
	if !ok {
		return Statement{}, false
	}
	return a.Statements[index], true
}

// ResolveReference looks a symbol up the way a reference to it is written.
// KickAssembler multi-labels are defined as '!name' but referenced as '!' and
// 'name', so the sigil is added back when the plain name is unknown.
func (a *AST) ResolveReference(name string) (Statement, bool) {
	if st, ok := a.Lookup(name); ok {
		return st, true
	}
	if a.Dialect == grammar.DialectKick {
		return a.Lookup("!" + name)
	}
	return Statement{}, false
}

// Occurrences returns the indices of all identifier tokens spelled name.
func (a *AST) Occurrences(name string) []int {
	indices := []int{}
	for i, t := range a.Tokens {
		if t.Type == TokenIdentifier && a.Text(t) == name {
			indices = append(indices, i)
		}
	}
	return indices
}

// TextRangeOf converts a token range into line/character positions.
func (a *AST) TextRangeOf(r Range) TextRange {
	start := TextPosition{Line: r.Row, Char: r.Col}
	end := start

	text := a.Source[r.Offset:r.End()]
	for i := 0; i < len(text); {
		ch, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case ch == '\r' && i+1 < len(text) && text[i+1] == '\n':
			size = 2
			fallthrough
		case ch == '\r' || ch == '\n':
			end.Line++
			end.Char = 0
		default:
			end.Char += utf16Len(ch)
		}
		i += size
	}
	return TextRange{Start: start, End: end}
}

// TokenAt returns the index of the token under pos, or -1. Only the first
// line of a token that spans several lines is considered.
func (a *AST) TokenAt(pos TextPosition) int {
	tokens := a.Tokens
	// first token starting after pos
	i := sort.Search(len(tokens), func(i int) bool {
		r := tokens[i].Range
		return r.Row > pos.Line || (r.Row == pos.Line && r.Col > pos.Char)
	})
	if i == 0 {
		return -1
	}

	t := tokens[i-1]
	if t.Type == TokenLineBreak || t.Range.Row != pos.Line {
		return -1
	}
	tr := a.TextRangeOf(t.Range)
	if tr.End.Line == tr.Start.Line && pos.Char >= tr.End.Char {
		return -1
	}
	return i - 1
}

// SymbolAt returns the identifier under pos together with its token index.
// A reference sigil under the cursor resolves to the identifier following it.
func (a *AST) SymbolAt(pos TextPosition) (string, int, bool) {
	i := a.TokenAt(pos)
	if i < 0 {
		return "", -1, false
	}
	if a.Tokens[i].Type == TokenReference && i+1 < len(a.Tokens) {
		i++
	}
	if a.Tokens[i].Type != TokenIdentifier {
		return "", -1, false
	}
	return a.TokenText(i), i, true
}

// LineText returns the physical source line holding the token at index i,
// without its terminator.
func (a *AST) LineText(i int) string {
	if i < 0 || i >= len(a.Tokens) {
		return ""
	}
	ofs := a.Tokens[i].Range.Offset
	start := strings.LastIndexAny(a.Source[:ofs], "\r\n") + 1
	end := strings.IndexAny(a.Source[ofs:], "\r\n")
	if end < 0 {
		return a.Source[start:]
	}
	return a.Source[start : ofs+end]
}
