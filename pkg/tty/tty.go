// Package tty reports whether process streams are attached to a terminal.
package tty

import (
	"os"

	"golang.org/x/term"
)

// IsStdoutTerminal reports whether stdout is a terminal.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTerminal reports whether stderr is a terminal.
func IsStderrTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
