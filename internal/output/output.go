// Package output prints user-facing status messages for the smtools CLI.
//
// Messages are styled with lipgloss when the destination is a terminal and
// written as plain text otherwise, so piped output stays greppable.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ANSI 256 palette indices: 9 is bright red, 14 is bright cyan.
var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Error prints "error: msg" to w, in bold red on a terminal.
//
// Example:
//
//	output.Error(os.Stderr, "dir_path: /tmp/x is not a valid directory path")
func Error(w io.Writer, msg string) {
	write(w, errorStyle, "error: "+msg)
}

// Info prints msg to w, in cyan on a terminal.
func Info(w io.Writer, msg string) {
	write(w, infoStyle, msg)
}

func write(w io.Writer, style lipgloss.Style, msg string) {
	if isTerminal(w) {
		msg = style.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
