package config_test

import (
	"testing"

	"github.com/c64tools/asmlens/config"
	"github.com/c64tools/asmlens/grammar"
)

func TestDialectFor(t *testing.T) {
	conf := config.Default()

	cases := []struct {
		uri      string
		expected grammar.Dialect
	}{
		{"file:///home/c64/game/main.a", grammar.DialectAcme},
		{"file:///home/c64/game/MAIN.KICK", grammar.DialectKick},
		{"/tmp/intro.tmpx", grammar.DialectTmpx},
		{"crt0.s", grammar.DialectLLVM},
		{"notes.txt", grammar.DialectAcme},
		{"Makefile", grammar.DialectAcme},
	}

	for _, c := range cases {
		if d := conf.DialectFor(c.uri); d != c.expected {
			t.Errorf("Expected %s to select %s, got %s", c.uri, c.expected, d)
		}
	}
}

func TestMerge(t *testing.T) {
	conf := config.Default()
	err := conf.Merge([]byte(`{"defaultDialect": "kickass", "extensions": {".INC": "tmpx", ".s": "acme"}}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if d := conf.DialectFor("readme"); d != grammar.DialectKick {
		t.Errorf("Expected default dialect kick, got %s", d)
	}
	if d := conf.DialectFor("macros.inc"); d != grammar.DialectTmpx {
		t.Errorf("Expected .inc to select tmpx, got %s", d)
	}
	if d := conf.DialectFor("boot.s"); d != grammar.DialectAcme {
		t.Errorf("Expected .s to be overridden to acme, got %s", d)
	}
	if d := conf.DialectFor("lib.a"); d != grammar.DialectAcme {
		t.Errorf("Expected built-in .a mapping to survive, got %s", d)
	}
	if conf.LogAddress != ":8006" {
		t.Errorf("Expected log address to keep its default, got %s", conf.LogAddress)
	}

	if err := conf.Merge([]byte(`{`)); err == nil {
		t.Errorf("Expected malformed JSON to fail")
	}
}
