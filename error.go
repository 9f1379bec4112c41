// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpretty

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a SyntaxError.
type ErrorKind byte

const (
	LexicalError    ErrorKind = 1 + iota // malformed token
	StructuralError                      // valid token in a position the grammar forbids
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case StructuralError:
		return "structural error"
	}
	return "unknown error"
}

// SyntaxError is the concrete type of errors reported by the Scanner and the
// Formatter. Only the first violation in the input is reported.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol // position of the failure, 1-based
	Message  string

	// Partial is the formatted output produced before the failure.
	// It is empty for errors reported directly by a Scanner.
	Partial string

	// Context is the text of the source line containing Location, and Caret
	// is a line of blanks with a "^" under Location.Column. Both are empty
	// when the failing line has no text.
	Context string
	Caret   string

	err error // the underlying cause, if any
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Snippet returns the context line and caret line joined by a newline, or ""
// if e has no context.
func (e *SyntaxError) Snippet() string {
	if e.Context == "" {
		return ""
	}
	return e.Context + "\n" + e.Caret
}

// withPartial returns a copy of e with its partial output set to out. The
// copy wraps e as its cause.
func (e *SyntaxError) withPartial(out string) *SyntaxError {
	cp := *e
	cp.Partial = out
	cp.err = e
	return &cp
}

// newSyntaxError constructs an error of the given kind at position lc, whose
// byte offset in src is off.
func newSyntaxError(kind ErrorKind, src string, off int, lc LineCol, msg string, args ...any) *SyntaxError {
	e := &SyntaxError{
		Kind:     kind,
		Location: lc,
		Message:  fmt.Sprintf(msg, args...),
	}
	if line := sourceLine(src, off); line != "" {
		e.Context = line
		e.Caret = caretLine(line, lc.Column)
	}
	return e
}

// sourceLine returns the text of the line of src containing byte offset off,
// without its line terminator.
func sourceLine(src string, off int) string {
	off = min(max(off, 0), len(src))
	lo := strings.LastIndexAny(src[:off], "\r\n") + 1
	hi := strings.IndexAny(src[off:], "\r\n")
	if hi < 0 {
		return src[lo:]
	}
	return src[lo : off+hi]
}

// caretLine renders a marker for the 1-based column col of line. Tabs in the
// prefix of line are copied so the marker lines up under tab stops.
func caretLine(line string, col int) string {
	var sb strings.Builder
	n := 1
	for _, r := range line {
		if n >= col {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		n++
	}
	for ; n < col; n++ {
		sb.WriteByte(' ') // column past the end of the line text
	}
	sb.WriteByte('^')
	return sb.String()
}
