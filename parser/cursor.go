package parser

import "unicode/utf8"

const endOfText rune = -1

// cursor walks the source one character at a time. It never moves backwards.
type cursor struct {
	text string
	ofs  int
	row  int
	col  int
}

type mark struct {
	ofs, row, col int
}

func newCursor(text string) *cursor {
	return &cursor{text: text}
}

func (c *cursor) eof() bool {
	return c.ofs >= len(c.text)
}

func (c *cursor) peek() rune {
	if c.eof() {
		return endOfText
	}
	r, _ := utf8.DecodeRuneInString(c.text[c.ofs:])
	return r
}

// peekNext returns the character after the current one.
func (c *cursor) peekNext() rune {
	if c.eof() {
		return endOfText
	}
	_, size := utf8.DecodeRuneInString(c.text[c.ofs:])
	if c.ofs+size >= len(c.text) {
		return endOfText
	}
	r, _ := utf8.DecodeRuneInString(c.text[c.ofs+size:])
	return r
}

func (c *cursor) next() {
	if c.eof() {
		return
	}
	r, size := utf8.DecodeRuneInString(c.text[c.ofs:])
	c.ofs += size
	c.col += utf16Len(r)
}

// nextline steps over a CR, LF or CRLF terminator.
func (c *cursor) nextline() {
	if c.eof() {
		return
	}
	if c.text[c.ofs] == '\r' && c.ofs+1 < len(c.text) && c.text[c.ofs+1] == '\n' {
		c.ofs++
	}
	c.ofs++
	c.row++
	c.col = 0
}

func (c *cursor) mark() mark {
	return mark{ofs: c.ofs, row: c.row, col: c.col}
}

// rangeFrom builds the range covering everything consumed since m.
func (c *cursor) rangeFrom(m mark) Range {
	return Range{Offset: m.ofs, Row: m.row, Col: m.col, Length: c.ofs - m.ofs}
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
