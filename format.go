// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpretty

import (
	"bytes"
	"errors"

	"github.com/creachadair/jpretty/internal/escape"
	"github.com/creachadair/mds/stack"

	"go4.org/mem"
)

const (
	// DefaultIndent is the number of spaces per nesting level used by Format.
	DefaultIndent = 2

	// DefaultMaxDepth is the default limit on the number of simultaneously
	// open objects and arrays.
	DefaultMaxDepth = 1000
)

// Format formats src with the default settings.
func Format(src string) (string, error) {
	return NewFormatter(src, DefaultIndent).Format()
}

// A Formatter re-emits a JSON document in canonical indented form.
//
// Each object member and array element is written on its own line, indented
// by the nesting depth times the indent width. Empty objects and arrays are
// written as "{}" and "[]". Numbers are copied verbatim from the input.
type Formatter struct {
	src      string
	indent   int
	maxDepth int
	raw      bool // write decoded strings without escaping

	// State of the current call to Format.
	sc    *Scanner
	cur   Token
	buf   bytes.Buffer
	qbuf  []byte
	stack *stack.Stack[frame]
}

// NewFormatter constructs a Formatter for src that indents each nesting level
// by indent spaces. A negative indent is treated as zero.
func NewFormatter(src string, indent int) *Formatter {
	return &Formatter{src: src, indent: max(indent, 0), maxDepth: DefaultMaxDepth}
}

// SetMaxDepth sets the maximum nesting depth of objects and arrays. Input
// that nests more deeply is rejected with a StructuralError. If n <= 0, depth
// is not limited.
func (f *Formatter) SetMaxDepth(n int) { f.maxDepth = n }

// SetEscapeStrings configures the formatter to re-escape (true) or copy
// verbatim (false) the decoded text of strings and object keys.  The default
// is true.
//
// When strings are not escaped, a string that contained escaped quotation
// marks, backslashes, or control characters in the input produces output that
// is not valid JSON.
func (f *Formatter) SetEscapeStrings(ok bool) { f.raw = !ok }

// Format formats the source text and returns the result, which ends with a
// newline.
//
// If the source is not a valid JSON object or array, Format reports an error
// of concrete type *SyntaxError for the first violation found. The Partial
// field of the error contains the output produced up to that point.
func (f *Formatter) Format() (string, error) {
	f.sc = NewScanner(f.src)
	f.buf.Reset()
	f.stack = stack.New[frame]()
	defer func() { f.sc, f.stack = nil, nil }()

	if err := f.advance(); err != nil {
		return "", err
	}
	if k := f.cur.Kind; k != LBrace && k != LSquare {
		return "", f.syntaxError("JSON must start with %v or %v, got %v", LBrace, LSquare, k)
	}
	if err := f.parseValue(); err != nil {
		return "", err
	}
	f.buf.WriteByte('\n')

	if f.cur.Kind != EOF {
		return "", f.syntaxError("unexpected %v after the end of the JSON value", f.cur.Kind)
	}
	return f.buf.String(), nil
}

// parseValue consumes a single value of any type.
func (f *Formatter) parseValue() error {
	switch tok := f.cur; tok.Kind {
	case LBrace:
		return f.parseObject()
	case LSquare:
		return f.parseArray()
	case String, Number, True, False, Null:
		if err := f.enterValue(); err != nil {
			return err
		}
		if tok.Kind == String {
			f.writeString(tok.Text)
		} else if tok.Kind == Number {
			f.buf.WriteString(tok.Text)
		} else {
			f.buf.WriteString(tok.Kind.String())
		}
		if err := f.advance(); err != nil {
			return err
		}
		f.onScalarValueCompleted()
		return nil
	default:
		return f.syntaxError("expected value, got %v", tok.Kind)
	}
}

// parseObject consumes an object and its members.
// Precondition: cur == LBrace.
func (f *Formatter) parseObject() error {
	if err := f.enterValue(); err != nil {
		return err
	}
	if err := f.push(objExpectKeyOrEnd); err != nil {
		return err
	}
	f.buf.WriteByte('{')
	if err := f.advance(); err != nil {
		return err
	}
	if f.cur.Kind == RBrace {
		return f.closeContainer('}', false)
	}
	f.buf.WriteByte('\n')

	for {
		if err := f.expectState(objExpectKeyOrEnd, "object expects a string key"); err != nil {
			return err
		}
		if f.cur.Kind != String {
			return f.syntaxError("object key must be a string, got %v", f.cur.Kind)
		}
		f.writeIndent()
		f.writeString(f.cur.Text)
		f.setState(objExpectColon)
		if err := f.advance(); err != nil {
			return err
		}

		if f.cur.Kind != Colon {
			return f.syntaxError("missing %v after object key, got %v", Colon, f.cur.Kind)
		}
		f.buf.WriteString(": ")
		f.setState(objExpectValue)
		if err := f.advance(); err != nil {
			return err
		}

		if err := f.parseValue(); err != nil {
			return err
		}

		if err := f.expectState(objExpectCommaOrEnd, `object expects "," or "}"`); err != nil {
			return err
		}
		switch f.cur.Kind {
		case Comma:
			f.buf.WriteString(",\n")
			f.setState(objExpectKeyOrEnd)
			if err := f.advance(); err != nil {
				return err
			}
		case RBrace:
			f.buf.WriteByte('\n')
			return f.closeContainer('}', true)
		default:
			return f.syntaxError("expected %v or %v in object, got %v", Comma, RBrace, f.cur.Kind)
		}
	}
}

// parseArray consumes an array and its elements.
// Precondition: cur == LSquare.
func (f *Formatter) parseArray() error {
	if err := f.enterValue(); err != nil {
		return err
	}
	if err := f.push(arrExpectValueOrEnd); err != nil {
		return err
	}
	f.buf.WriteByte('[')
	if err := f.advance(); err != nil {
		return err
	}
	if f.cur.Kind == RSquare {
		return f.closeContainer(']', false)
	}
	f.buf.WriteByte('\n')

	for {
		if err := f.expectState(arrExpectValueOrEnd, "array expects a value"); err != nil {
			return err
		}
		if !isValueStart(f.cur.Kind) {
			return f.syntaxError("expected value, got %v", f.cur.Kind)
		}
		f.writeIndent()
		if err := f.parseValue(); err != nil {
			return err
		}

		if err := f.expectState(arrExpectCommaOrEnd, `array expects "," or "]"`); err != nil {
			return err
		}
		switch f.cur.Kind {
		case Comma:
			f.buf.WriteString(",\n")
			f.setState(arrExpectValueOrEnd)
			if err := f.advance(); err != nil {
				return err
			}
		case RSquare:
			f.buf.WriteByte('\n')
			return f.closeContainer(']', true)
		default:
			return f.syntaxError("expected %v or %v in array, got %v", Comma, RSquare, f.cur.Kind)
		}
	}
}

// closeContainer pops the innermost frame and writes its closing bracket,
// indented unless the container is empty.
// Precondition: cur is the closing token.
func (f *Formatter) closeContainer(closer byte, indent bool) error {
	f.stack.Pop()
	if indent {
		f.writeIndent()
	}
	f.buf.WriteByte(closer)
	if err := f.advance(); err != nil {
		return err
	}
	f.onContainerClosed()
	return nil
}

// advance reads the next token from the scanner. A scanner error has no
// output attached, so advance attaches the output produced so far.
func (f *Formatter) advance() error {
	tok, err := f.sc.Next()
	if err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) && serr.Partial == "" {
			return serr.withPartial(f.buf.String())
		}
		return err
	}
	f.cur = tok
	return nil
}

func (f *Formatter) writeIndent() {
	for range f.stack.Len() * f.indent {
		f.buf.WriteByte(' ')
	}
}

func (f *Formatter) writeString(s string) {
	if f.raw {
		f.buf.WriteByte('"')
		f.buf.WriteString(s)
		f.buf.WriteByte('"')
		return
	}
	f.qbuf = escape.AppendQuote(f.qbuf[:0], mem.S(s))
	f.buf.Write(f.qbuf)
}

func (f *Formatter) syntaxError(msg string, args ...any) *SyntaxError {
	e := newSyntaxError(StructuralError, f.src, f.cur.Offset, f.cur.Pos, msg, args...)
	e.Partial = f.buf.String()
	return e
}

func isValueStart(k Kind) bool {
	switch k {
	case LBrace, LSquare, String, Number, True, False, Null:
		return true
	}
	return false
}
