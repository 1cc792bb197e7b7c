package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how human-readable output is rendered.
type OutputMode int

const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// DetectOutputMode chooses between plain and styled output for stdout.
// Interactive mode is never detected; callers opt in and check
// CanRunInteractive.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, isTerminal(os.Stdout), os.Getenv)
}

func detectOutputMode(forceColor, noColor, plain, tty bool, getenv func(string) string) OutputMode {
	switch {
	case plain:
		return OutputModePlain
	case forceColor:
		return OutputModeStyled
	case noColor, getenv("NO_COLOR") != "", getenv("TERM") == "dumb", !tty:
		return OutputModePlain
	default:
		return OutputModeStyled
	}
}

// CanRunInteractive reports whether both stdin and stdout are terminals.
func CanRunInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// defaultTerminalWidth is used when stdout has no size.
const defaultTerminalWidth = 100

// TerminalWidth returns the width of stdout, or a default when it is not a
// terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTerminalWidth
	}
	return w
}
