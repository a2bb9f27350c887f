package parser

import "github.com/c64tools/asmlens/grammar"

// directiveRule maps a directive line onto a statement. The directive must be
// followed by a token of type param, which becomes the statement name.
type directiveRule struct {
	dialect   grammar.Dialect
	keyword   string
	param     TokenType
	statement StatementType
	kind      DefinitionKind
}

var directiveRules = []directiveRule{
	{grammar.DialectAcme, "!macro", TokenIdentifier, StatementDefinition, DefinitionMacro},
	{grammar.DialectAcme, "!set", TokenIdentifier, StatementDefinition, DefinitionConstant},
	{grammar.DialectAcme, "!addr", TokenIdentifier, StatementDefinition, DefinitionAddress},
	{grammar.DialectAcme, "!src", TokenString, StatementInclude, DefinitionNone},
	{grammar.DialectKick, ".macro", TokenIdentifier, StatementDefinition, DefinitionMacro},
	{grammar.DialectKick, ".const", TokenIdentifier, StatementDefinition, DefinitionConstant},
	{grammar.DialectLLVM, ".macro", TokenIdentifier, StatementDefinition, DefinitionMacro},
	{grammar.DialectTmpx, ".macro", TokenIdentifier, StatementDefinition, DefinitionMacro},
	{grammar.DialectTmpx, ".include", TokenString, StatementInclude, DefinitionNone},
}

// classify inspects the tokens of one physical line and records at most one
// statement for them.
func (b *builder) classify(start, count int) {
	tokens := b.ast.Tokens
	if count < 1 || len(tokens) < start+count {
		return
	}

	first := tokens[start]
	switch first.Type {
	case TokenComment:
		b.addStatement(Statement{Type: StatementComment, Name: -1, Start: start, Count: 1})

	case TokenIdentifier:
		if grammar.IsMnemonic(b.dialect, b.ast.Text(first)) {
			return
		}
		if count > 1 && b.ast.Text(tokens[start+1]) == "=" {
			b.addStatement(Statement{Type: StatementDefinition, Kind: DefinitionConstant, Name: start, Start: start, Count: count})
		} else if b.dialect != grammar.DialectLLVM || count == 1 {
			b.addStatement(Statement{Type: StatementDefinition, Kind: DefinitionLabel, Name: start, Start: start, Count: count})
		}

	case TokenMacro:
		if count < 2 {
			return
		}
		keyword := b.ast.Text(first)
		param := tokens[start+1]
		for _, rule := range directiveRules {
			if rule.dialect == b.dialect && rule.keyword == keyword && rule.param == param.Type {
				b.addStatement(Statement{Type: rule.statement, Kind: rule.kind, Name: start + 1, Start: start, Count: count})
				return
			}
		}
	}
}

func (b *builder) addStatement(st Statement) {
	ast := b.ast
	ast.Statements = append(ast.Statements, st)
	index := len(ast.Statements) - 1

	switch st.Type {
	case StatementDefinition:
		name := ast.TokenText(st.Name)
		if previous, ok := ast.Definitions[name]; ok {
			b.redefined = append(b.redefined, redefinition{name: name, previous: previous, current: index})
		}
		ast.Definitions[name] = index
	case StatementInclude:
		ast.References = append(ast.References, index)
	}
}
