package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// TerminalConfirmer asks yes/no questions on the terminal. An empty answer
// picks the default; unrecognized input repeats the question.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalConfirmer returns a confirmer bound to stdin/stdout.
func NewTerminalConfirmer() *TerminalConfirmer {
	return &TerminalConfirmer{In: os.Stdin, Out: os.Stdout}
}

// Confirm implements the confirmation gate used after resolution warnings.
func (c *TerminalConfirmer) Confirm(prompt string, defaultAnswer bool) bool {
	suffix := "[y/N]"
	if defaultAnswer {
		suffix = "[Y/n]"
	}

	reader := bufio.NewReader(c.In)
	for {
		fmt.Fprintf(c.Out, "%s %s ", prompt, suffix)
		line, err := reader.ReadString('\n')
		if err != nil {
			// No interactive input available: fall back to the default.
			return defaultAnswer
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultAnswer
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
