package toolchain

import (
	"errors"
	"os/exec"
	"strings"
)

// StripNoise trims every line of an assembler's output and drops the empty
// ones, so editor problem matchers see one message per line.
func StripNoise(output string) string {
	lines := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Run executes an external assembler with stdout and stderr combined and
// returns its cleaned output together with the exit code. A command that
// cannot be started is reported as an error.
func Run(command []string) (string, int, error) {
	if len(command) == 0 {
		return "", 0, errors.New("no command given")
	}

	cmd := exec.Command(command[0], command[1:]...)
	out, e := cmd.CombinedOutput()
	exitCode := 0
	if e != nil {
		var exitErr *exec.ExitError
		if !errors.As(e, &exitErr) {
			return "", 0, e
		}
		exitCode = exitErr.ExitCode()
	}

	return StripNoise(string(out)), exitCode, nil
}
