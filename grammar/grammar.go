package grammar

import "strings"

var acmePseudoOpcodes = []string{
	"fill", "fi", "align", "convtab", "ct", "text", "tx", "pet", "raw", "scr", "scrxor", "to",
	"source", "src", "binary", "bin", "zone", "zn", "sl", "svl", "sal", "pdb", "if", "ifdef",
	"for", "do", "endoffile", "warn", "error", "serious", "macro", "set", "initmem", "pseudopc",
	"cpu", "al", "as", "rl", "rs", "cbm", "subzone", "sz", "realpc", "previouscontext", "byte",
	"by", "word", "wo", "addr", "address",
}

var kickAssemblerDirectives = []string{
	"align", "assert", "asserterror", "break", "by", "byte", "const", "cpu", "define", "disk",
	"dw", "dword", "encoding", "enum", "error", "errorif", "eval", "file", "filemodify",
	"filenamespace", "fill", "fillword", "for", "function", "if", "import", "importonce",
	"label", "lohifill", "macro", "memblock", "modify", "namespace", "pc", "plugin", "print",
	"printnow", "pseudocommand", "pseudopc", "return", "segment", "segmentdef", "segmentout",
	"struct", "te", "text", "var", "while", "wo", "word", "zp",
}

var kickPreprocessorDirectives = []string{
	"define", "elif", "else", "endif", "if", "import", "importif", "importonce", "undef",
}

var tmpxPseudoOpcodes = []string{
	"byte", "text", "screen", "include", "binary", "macro", "endm", "block", "bend", "var", "word", "rta", "null",
	"shift", "repeat", "if", "ifne", "ifeq", "ifpl", "ifmi", "ifdef", "ifndef", "endif", "lbl", "goto",
	"segment", "offs", "pron", "proff", "hidemac", "showmac", "eor", "end", "bounce",
}

var llvmDirectives = []string{
	"byte", "word", "long", "ascii", "asciz", "section", "text", "data", "bss", "globl", "global",
	"local", "weak", "macro", "endm", "endr", "rept", "irp", "set", "equ", "include", "incbin",
	"org", "align", "balign", "p2align", "zero", "fill", "space", "type", "size", "if", "ifdef",
	"ifndef", "else", "elseif", "endif", "zeropage",
}

// Catalog is the keyword set of one dialect, without sigils.
type Catalog struct {
	Sigil        byte     // character that introduces a directive
	Directives   []string // pseudo-opcodes and directives
	Preprocessor []string // preprocessor directives, introduced by '#'
}

var catalogs = map[Dialect]Catalog{
	DialectAcme: {Sigil: '!', Directives: acmePseudoOpcodes},
	DialectKick: {Sigil: '.', Directives: kickAssemblerDirectives, Preprocessor: kickPreprocessorDirectives},
	DialectTmpx: {Sigil: '.', Directives: tmpxPseudoOpcodes},
	DialectLLVM: {Sigil: '.', Directives: llvmDirectives},
}

// CatalogFor returns the keyword catalog of a dialect.
func CatalogFor(d Dialect) Catalog {
	return catalogs[d]
}

// IsDirective reports whether name (without sigil) is a directive of the dialect.
func IsDirective(d Dialect, name string) bool {
	for _, item := range catalogs[d].Directives {
		if item == name {
			return true
		}
	}
	return false
}

// FuzzySearch returns every known keyword, sigil included, that starts with
// query. The first character of the query selects the catalogs searched:
// '!' searches ACME pseudo-ops, '.' searches KickAssembler directives together
// with TMPx pseudo-ops and '#' searches KickAssembler preprocessor directives.
// A nil result means no match.
func FuzzySearch(query string) []string {
	if len(query) < 1 {
		return nil
	}

	var sources [][]string
	switch query[0] {
	case '!':
		sources = [][]string{acmePseudoOpcodes}
	case '.':
		// the active dialect is not always known when suggesting, so both are offered
		sources = [][]string{kickAssemblerDirectives, tmpxPseudoOpcodes}
	case '#':
		sources = [][]string{kickPreprocessorDirectives}
	default:
		return nil
	}

	sigil := query[:1]
	seen := map[string]bool{}
	items := []string{}
	for _, source := range sources {
		for _, item := range source {
			token := sigil + item
			if seen[token] || !strings.HasPrefix(token, query) {
				continue
			}
			seen[token] = true
			items = append(items, token)
		}
	}

	if len(items) < 1 {
		return nil
	}
	return items
}
