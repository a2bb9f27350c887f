package parser

import "github.com/c64tools/asmlens/grammar"

type TokenType int

const (
	TokenLineBreak TokenType = iota
	TokenComment
	TokenPreprocessor
	TokenIdentifier
	TokenReference
	TokenMacro
	TokenString
	TokenNumber
	TokenOperator
)

var tokenTypeNames = [...]string{
	TokenLineBreak:    "LineBreak",
	TokenComment:      "Comment",
	TokenPreprocessor: "Preprocessor",
	TokenIdentifier:   "Identifier",
	TokenReference:    "Reference",
	TokenMacro:        "Macro",
	TokenString:       "String",
	TokenNumber:       "Number",
	TokenOperator:     "Operator",
}

func (t TokenType) String() string {
	if int(t) < 0 || int(t) >= len(tokenTypeNames) {
		return "Unknown"
	}
	return tokenTypeNames[t]
}

// Range locates a token in the source. Offset and Length are byte counts so
// the token text can be sliced out of the source; Col counts UTF-16 code units
// from the start of the row.
type Range struct {
	Offset int `json:"offset"`
	Row    int `json:"row"`
	Col    int `json:"col"`
	Length int `json:"length"`
}

func (r Range) End() int {
	return r.Offset + r.Length
}

type Token struct {
	Type  TokenType `json:"type"`
	Range Range     `json:"range"`
	First bool      `json:"first"` // opens its physical line
}

type StatementType int

const (
	StatementComment StatementType = iota
	StatementDefinition
	StatementInclude
	StatementPlain // reserved for structurally uninteresting lines; the classifier never emits it
)

func (s StatementType) String() string {
	switch s {
	case StatementComment:
		return "Comment"
	case StatementDefinition:
		return "Definition"
	case StatementInclude:
		return "Include"
	case StatementPlain:
		return "Plain"
	}
	return "Unknown"
}

type DefinitionKind int

const (
	DefinitionNone DefinitionKind = iota
	DefinitionLabel
	DefinitionConstant
	DefinitionAddress
	DefinitionMacro
)

func (k DefinitionKind) String() string {
	switch k {
	case DefinitionLabel:
		return "Label"
	case DefinitionConstant:
		return "Constant"
	case DefinitionAddress:
		return "Address"
	case DefinitionMacro:
		return "Macro"
	}
	return "None"
}

// Statement is one classified line. Start and Count select the token run in
// AST.Tokens; Name is the index of the name token, or -1.
type Statement struct {
	Type  StatementType  `json:"type"`
	Kind  DefinitionKind `json:"kind"`
	Name  int            `json:"name"`
	Start int            `json:"start"`
	Count int            `json:"count"`
}

// AST is the symbol index produced by a single parse. It is never mutated
// after Parse returns.
type AST struct {
	Filename    string
	Source      string
	Dialect     grammar.Dialect
	Tokens      []Token
	Statements  []Statement
	Definitions map[string]int // symbol name to index in Statements, last definition wins
	References  []int          // indices in Statements of include statements
	Diagnostics []Diagnostic
	Partial     bool // parse was cancelled; contents are not authoritative
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range    TextRange          `json:"range"`
	Message  string             `json:"message"`
	Source   string             `json:"source,omitempty"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
}
