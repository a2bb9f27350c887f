package parser

import "strconv"

// Errors
type parseError struct{}

var Errors parseError

func (parseError) UnterminatedString(r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unterminated string literal",
		Source:   "Parser",
		Severity: Error,
	}
}

// Warnings
type parseWarning struct{}

var Warnings parseWarning

func (parseWarning) SymbolRedefined(name string, previousLine int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Symbol \"" + name + "\" redefined, previous definition on line " + strconv.Itoa(previousLine+1),
		Source:   "Parser",
		Severity: Warning,
	}
}

// Information
type parseInfo struct{}

var Infos parseInfo

func (parseInfo) ParseCancelled(filename string) Diagnostic {
	return Diagnostic{
		Message:  "Parsing of \"" + filename + "\" was cancelled, results are incomplete",
		Source:   "Parser",
		Severity: Information,
	}
}

func (b *builder) reportDiagnostics() {
	ast := b.ast

	for _, r := range b.unterminated {
		tr := ast.TextRangeOf(r)
		if r.Length == 0 {
			tr.End.Char = tr.Start.Char
		}
		ast.Diagnostics = append(ast.Diagnostics, Errors.UnterminatedString(tr))
	}

	for _, re := range b.redefined {
		previous := ast.Statements[re.previous]
		current := ast.Statements[re.current]
		// assembler variables are meant to be reassigned
		if previous.Kind == DefinitionConstant && current.Kind == DefinitionConstant {
			continue
		}
		nameToken := ast.Tokens[current.Name]
		ast.Diagnostics = append(ast.Diagnostics, Warnings.SymbolRedefined(re.name, ast.Tokens[previous.Name].Range.Row, ast.TextRangeOf(nameToken.Range)))
	}
}
