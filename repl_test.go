package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/c64tools/asmlens/grammar"
)

func TestReplSessionKeepsDefinitions(t *testing.T) {
	session := &replSession{dialect: grammar.DialectAcme}
	session.reset()

	session.add("start lda #1")
	from := session.add("  jmp start")

	if _, ok := session.ast.Lookup("start"); !ok {
		t.Errorf("Expected start to stay defined across lines")
	}
	if session.ast.TokenText(from) != "jmp" {
		t.Errorf("Expected the new line to start at jmp, got %q", session.ast.TokenText(from))
	}

	out := bytes.Buffer{}
	printAST(&out, session.ast, from)
	if strings.Contains(out.String(), "lda") {
		t.Errorf("Expected only the new line to be printed, got %q", out.String())
	}
	if !strings.Contains(out.String(), `"jmp"`) {
		t.Errorf("Expected jmp to be printed, got %q", out.String())
	}
}

func TestReplCompletion(t *testing.T) {
	session := &replSession{dialect: grammar.DialectAcme}
	session.reset()
	session.add("screen = $0400")

	cases := []struct {
		line     string
		expected string
	}{
		{"  !sou", "  !source"},
		{"  sta scr", "  sta screen"},
		{"  ld", "  lda"},
	}

	for _, c := range cases {
		found := false
		for _, candidate := range session.complete(c.line) {
			if candidate == c.expected {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %q among the completions of %q", c.expected, c.line)
		}
	}

	if candidates := session.complete("  "); candidates != nil {
		t.Errorf("Expected no completions without a word, got %v", candidates)
	}
}

func TestReplDialectCommand(t *testing.T) {
	session := &replSession{dialect: grammar.DialectAcme}
	session.reset()
	session.add("loop")

	out := bytes.Buffer{}
	if session.command(&out, ":dialect kick") {
		t.Fatalf("Expected :dialect not to exit")
	}
	if session.dialect != grammar.DialectKick {
		t.Errorf("Expected the KickAssembler dialect, got %s", session.dialect)
	}
	if len(session.ast.Definitions) != 0 {
		t.Errorf("Expected switching dialect to reset the session")
	}
	if !session.command(&out, ":quit") {
		t.Errorf("Expected :quit to exit")
	}
}
