package grammar

import "strings"

// Dialect selects the assembler syntax a document is written in. It is fixed
// for a whole parse.
type Dialect int

const (
	DialectAcme Dialect = iota
	DialectKick
	DialectTmpx
	DialectLLVM
)

var dialectNames = map[Dialect]string{
	DialectAcme: "acme",
	DialectKick: "kick",
	DialectTmpx: "tmpx",
	DialectLLVM: "llvm",
}

// aliases accepted by ParseDialect, in addition to the canonical names
var dialectAliases = map[string]Dialect{
	"acme":          DialectAcme,
	"kick":          DialectKick,
	"kickass":       DialectKick,
	"kickassembler": DialectKick,
	"tmpx":          DialectTmpx,
	"tass":          DialectTmpx,
	"llvm":          DialectLLVM,
	"llvm-mos":      DialectLLVM,
	"mos":           DialectLLVM,
}

func (d Dialect) String() string {
	name, ok := dialectNames[d]
	if !ok {
		return "unknown"
	}
	return name
}

// ParseDialect maps a configuration name onto a Dialect. Matching ignores case.
func ParseDialect(name string) (Dialect, bool) {
	d, ok := dialectAliases[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Dialects lists every supported dialect in declaration order.
func Dialects() []Dialect {
	return []Dialect{DialectAcme, DialectKick, DialectTmpx, DialectLLVM}
}
