// Package picker bridges to an external line-based selector (fuzzel in
// dmenu mode by default): candidate lines go to its stdin, one picked
// line (or nothing, on cancel) comes back on its stdout.
package picker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	DefaultCommand = "fuzzel"
	DefaultArg     = "--dmenu"
)

// Picker invokes the external selector process.
type Picker struct {
	command string
	args    []string
}

// New creates a picker for the given command line. An empty command
// falls back to fuzzel --dmenu.
func New(command string, args ...string) *Picker {
	if command == "" {
		command = DefaultCommand
		args = []string{DefaultArg}
	}
	return &Picker{command: command, args: args}
}

// Pick presents the candidate lines and blocks until the selector
// terminates. It returns the picked line, or "" when the user cancelled.
// The selector's exit status is ignored: fuzzel exits non-zero on Esc,
// and empty output already signals cancellation.
func (p *Picker) Pick(ctx context.Context, lines []string) (string, error) {
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if _, exited := err.(*exec.ExitError); !exited {
			return "", fmt.Errorf("failed to run picker %q: %w", p.command, err)
		}
	}

	return strings.TrimSuffix(out.String(), "\n"), nil
}
