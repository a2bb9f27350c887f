package toolchain_test

import (
	"os/exec"
	"testing"

	"github.com/c64tools/asmlens/toolchain"
)

func TestStripNoise(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"\n\n   \n", ""},
		{"  main.s:3: error: unknown opcode  \r\n\r\n\tfoo.s:1: warning  \n", "main.s:3: error: unknown opcode\nfoo.s:1: warning"},
		{"single", "single"},
	}

	for _, c := range cases {
		if out := toolchain.StripNoise(c.input); out != c.expected {
			t.Errorf("Expected %q, got %q", c.expected, out)
		}
	}
}

func TestRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, code, err := toolchain.Run([]string{"sh", "-c", "echo '  a  '; echo; echo b >&2; exit 3"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if code != 3 {
		t.Errorf("Expected exit code 3, got %d", code)
	}
	if out != "a\nb" {
		t.Errorf("Expected \"a\\nb\", got %q", out)
	}

	if _, _, err := toolchain.Run(nil); err == nil {
		t.Errorf("Expected an error for an empty command")
	}
}
