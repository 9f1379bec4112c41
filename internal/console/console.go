// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package console renders formatter diagnostics for a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/jpretty"
	"github.com/mattn/go-isatty"
)

// Styles for the different kinds of message.
var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))
)

// A Printer renders messages, styling them if Styled is true.
type Printer struct {
	Styled bool
}

// NewPrinter returns a Printer for messages written to w, which styles its
// output only if w is a terminal.
func NewPrinter(w io.Writer) Printer { return Printer{Styled: IsTerminal(w)} }

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// applyStyle renders text in style if p is styled, and returns it unchanged otherwise.
func (p Printer) applyStyle(style lipgloss.Style, text string) string {
	if p.Styled {
		return style.Render(text)
	}
	return text
}

// FormatError renders err as a header line naming the location, the message,
// and, when err has a context line, a blank line followed by the context line
// and the caret line. If name != "", it is included in the header.
func (p Printer) FormatError(name string, err *jpretty.SyntaxError) string {
	var out strings.Builder

	where := fmt.Sprintf("line:%d col:%d", err.Location.Line, err.Location.Column)
	if name != "" {
		where = name + " " + where
	}
	out.WriteString(p.applyStyle(errorStyle, "==== JSON ERROR at "+where+" ===="))
	out.WriteString("\n")
	out.WriteString(err.Message)
	out.WriteString("\n")

	if err.Context != "" {
		out.WriteString("\n")
		out.WriteString(p.applyStyle(contextLineStyle, err.Context))
		out.WriteString("\n")
		if err.Caret != "" {
			out.WriteString(p.applyStyle(errorStyle, err.Caret))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// FormatPartialHeader returns the banner written before partial output.
func (p Printer) FormatPartialHeader() string {
	return p.applyStyle(warningStyle, "==== PARTIAL FORMATTED OUTPUT ====")
}

// FormatInfoMessage returns message prefixed by an info marker.
func (p Printer) FormatInfoMessage(message string) string {
	return p.applyStyle(infoStyle, "ℹ ") + message
}
