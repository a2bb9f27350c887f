package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
)

const historyFile = ".asmlens_history"

// printAST writes the tokens and statements starting at token index from,
// followed by the diagnostics on the rows they cover.
func printAST(w io.Writer, ast *parser.AST, from int) {
	fromRow := 0
	if from < len(ast.Tokens) {
		fromRow = ast.Tokens[from].Range.Row
	}

	for i := from; i < len(ast.Tokens); i++ {
		tok := ast.Tokens[i]
		first := ' '
		if tok.First {
			first = '^'
		}
		fmt.Fprintf(w, "%4d:%-3d %c %-12s %q\n", tok.Range.Row+1, tok.Range.Col, first, tok.Type, ast.Text(tok))
	}

	for _, st := range ast.Statements {
		if st.Start < from {
			continue
		}
		if st.Type == parser.StatementDefinition {
			fmt.Fprintf(w, "%s %s %q\n", st.Type, st.Kind, ast.StatementName(st))
		} else if st.Type == parser.StatementInclude {
			fmt.Fprintf(w, "%s %q\n", st.Type, ast.StatementName(st))
		}
	}

	for _, d := range ast.Diagnostics {
		if d.Range.Start.Line < fromRow {
			continue
		}
		fmt.Fprintf(w, "%d:%d: %s\n", d.Range.Start.Line+1, d.Range.Start.Char+1, d.Message)
	}
}

type replSession struct {
	dialect grammar.Dialect
	source  strings.Builder
	ast     *parser.AST
}

func (s *replSession) reset() {
	s.source.Reset()
	s.ast = parser.Parse(context.Background(), "", "repl", s.dialect)
}

// add appends a line to the session and reparses it, returning the index of
// the first token of the new line.
func (s *replSession) add(line string) int {
	from := len(s.ast.Tokens)
	s.source.WriteString(line)
	s.source.WriteByte('\n')
	s.ast = parser.Parse(context.Background(), s.source.String(), "repl", s.dialect)
	return from
}

// complete offers keywords, mnemonics and session symbols for the word in
// front of the cursor.
func (s *replSession) complete(line string) []string {
	start := strings.LastIndexAny(line, " \t,(") + 1
	word := line[start:]
	if word == "" {
		return nil
	}

	candidates := grammar.FuzzySearch(word)
	for _, mnemonic := range grammar.Mnemonics(s.dialect) {
		if strings.HasPrefix(mnemonic, strings.ToLower(word)) {
			candidates = append(candidates, mnemonic)
		}
	}
	for name := range s.ast.Definitions {
		if strings.HasPrefix(name, word) {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		lines = append(lines, line[:start]+c)
	}
	return lines
}

func (s *replSession) command(w io.Writer, line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit":
		return true
	case ":reset":
		s.reset()
	case ":dialect":
		if len(fields) != 2 {
			fmt.Fprintf(w, "current dialect: %s\n", s.dialect)
			break
		}
		d, ok := grammar.ParseDialect(fields[1])
		if !ok {
			fmt.Fprintf(w, "unknown dialect %s, expected one of %v\n", fields[1], grammar.Dialects())
			break
		}
		s.dialect = d
		s.reset()
	case ":symbols":
		names := make([]string, 0, len(s.ast.Definitions))
		for name := range s.ast.Definitions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			st, _ := s.ast.Lookup(name)
			fmt.Fprintf(w, "%-8s %s\n", st.Kind, name)
		}
	default:
		fmt.Fprintln(w, "commands: :dialect [name], :symbols, :reset, :quit")
	}
	return false
}

func runRepl(dialect grammar.Dialect) int {
	session := &replSession{dialect: dialect}
	session.reset()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(session.complete)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(session.dialect.String() + "> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if session.command(os.Stdout, strings.TrimSpace(line)) {
				return 0
			}
			continue
		}

		from := session.add(line)
		printAST(os.Stdout, session.ast, from)
	}
}
