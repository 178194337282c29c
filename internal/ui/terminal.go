package ui

import (
	"os"

	"golang.org/x/term"
)

const defaultTerminalWidth = 120

// GetTerminalWidth returns the current terminal width in columns, or 120
// when stdout is not a terminal.
func GetTerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTerminalWidth
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
