package grammar

import (
	"sort"
	"strings"
)

var nmos6502Mnemonics = []string{
	"adc", "and", "asl", "bcc", "bcs", "beq", "bit", "bmi", "bne", "bpl", "brk", "bvc", "bvs",
	"clc", "cld", "cli", "clv", "cmp", "cpx", "cpy", "dec", "dex", "dey", "eor", "inc", "inx",
	"iny", "jmp", "jsr", "lda", "ldx", "ldy", "lsr", "nop", "ora", "pha", "php", "pla", "plp",
	"rol", "ror", "rti", "rts", "sbc", "sec", "sed", "sei", "sta", "stx", "sty", "tax", "tay",
	"tsx", "txa", "txs", "tya",
}

var cmos65c02Mnemonics = []string{
	"bra", "phx", "phy", "plx", "ply", "stz", "trb", "tsb", "stp", "wai",
	"bbr0", "bbr1", "bbr2", "bbr3", "bbr4", "bbr5", "bbr6", "bbr7",
	"bbs0", "bbs1", "bbs2", "bbs3", "bbs4", "bbs5", "bbs6", "bbs7",
	"rmb0", "rmb1", "rmb2", "rmb3", "rmb4", "rmb5", "rmb6", "rmb7",
	"smb0", "smb1", "smb2", "smb3", "smb4", "smb5", "smb6", "smb7",
}

// undocumented NMOS opcodes, under the names the assemblers accept
var illegalMnemonics = []string{
	"slo", "rla", "sre", "rra", "sax", "lax", "dcp", "isc", "anc", "alr", "asr", "arr", "sbx",
	"axs", "las", "lae", "shx", "shy", "sha", "ahx", "tas", "shs", "xaa", "ane", "jam", "kil",
	"dop", "top", "isb", "lxa",
}

var mnemonicSets = map[Dialect]map[string]bool{
	DialectAcme: makeSet(nmos6502Mnemonics, cmos65c02Mnemonics, illegalMnemonics),
	DialectKick: makeSet(nmos6502Mnemonics, illegalMnemonics),
	DialectTmpx: makeSet(nmos6502Mnemonics),
	DialectLLVM: makeSet(nmos6502Mnemonics, cmos65c02Mnemonics),
}

func makeSet(lists ...[]string) map[string]bool {
	set := map[string]bool{}
	for _, list := range lists {
		for _, item := range list {
			set[item] = true
		}
	}
	return set
}

// IsMnemonic reports whether word is a reserved instruction mnemonic of the
// dialect. Case is ignored.
func IsMnemonic(d Dialect, word string) bool {
	return mnemonicSets[d][strings.ToLower(word)]
}

// Mnemonics lists the instruction mnemonics of the dialect in sorted order.
func Mnemonics(d Dialect) []string {
	items := make([]string, 0, len(mnemonicSets[d]))
	for item := range mnemonicSets[d] {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
