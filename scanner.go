// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpretty

import (
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token
	LBrace              // left brace "{"
	RBrace              // right brace "}"
	LSquare             // left square bracket "["
	RSquare             // right square bracket "]"
	Colon               // colon ":"
	Comma               // comma ","
	String              // quoted string
	Number              // number
	True                // constant: true
	False               // constant: false
	Null                // constant: null
	EOF                 // end of input
)

var kindStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Colon:   `":"`,
	Comma:   `","`,
	String:  "string",
	Number:  "number",
	True:    "true",
	False:   "false",
	Null:    "null",
	EOF:     "end of input",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Token is a single lexical token read from the input.
type Token struct {
	Kind Kind

	// Text is the decoded contents of a String token (without quotes), or the
	// verbatim lexeme of a Number token. It is empty for other kinds.
	Text string

	Pos    LineCol // location of the first character of the token
	Offset int     // byte offset of the first character of the token
}

// A Scanner reads lexical tokens from a source text. Each call to Next
// returns the next token, or reports an error.
type Scanner struct {
	src string
	buf strings.Builder // decoded text of the current string

	pos  int // byte offset of the next unread rune
	line int // current line, 1-based
	col  int // runes consumed on the current line
}

// NewScanner constructs a new lexical scanner that consumes src.
func NewScanner(src string) *Scanner { return &Scanner{src: src, line: 1} }

// Next returns the next token of the input, or reports an error.  At the end
// of the input, Next returns a token of kind EOF, and continues to do so on
// subsequent calls.
//
// Any error reported by Next has concrete type *SyntaxError. After an error,
// the state of the scanner is unspecified.
func (s *Scanner) Next() (Token, error) {
	s.skipSpace()
	at, off := s.here(), s.pos

	ch, n := s.peek()
	if n == 0 {
		return Token{Kind: EOF, Pos: at, Offset: off}, nil
	}

	// Handle punctuation.
	if k, ok := selfDelim(ch); ok {
		s.advance()
		return Token{Kind: k, Pos: at, Offset: off}, nil
	}

	var tok Token
	var err error
	switch {
	case ch == '"':
		tok, err = s.scanString()
	case isNumStart(ch):
		tok, err = s.scanNumber()
	case ch == 't':
		tok, err = s.scanName(True)
	case ch == 'f':
		tok, err = s.scanName(False)
	case ch == 'n':
		tok, err = s.scanName(Null)
	default:
		return Token{}, s.failf("unexpected character %q", ch)
	}
	if err != nil {
		return Token{}, err
	}
	tok.Pos, tok.Offset = at, off
	return tok, nil
}

// scanString consumes a quoted string and decodes its escapes.
// Precondition: the next rune is '"'.
func (s *Scanner) scanString() (Token, error) {
	s.advance()
	s.buf.Reset()
	for {
		ch, n := s.peek()
		switch {
		case n == 0:
			return Token{}, s.failEOF("string")
		case ch == '"':
			s.advance()
			return Token{Kind: String, Text: s.buf.String()}, nil
		case ch == '\n' || ch == '\r':
			return Token{}, s.failf("unescaped line break in string")
		case ch == utf8.RuneError && n == 1:
			return Token{}, s.failf("invalid UTF-8 in string")
		case ch == '\\':
			s.advance()
			if err := s.scanEscape(); err != nil {
				return Token{}, err
			}
		default:
			s.advance()
			s.buf.WriteRune(ch)
		}
	}
}

// scanEscape decodes the remainder of an escape sequence whose leading
// backslash has already been consumed.
func (s *Scanner) scanEscape() error {
	ch, n := s.peek()
	if n == 0 {
		return s.failEOF("escape sequence")
	}
	switch ch {
	case '"', '\\', '/':
		s.buf.WriteRune(ch)
	case 'b':
		s.buf.WriteByte('\b')
	case 'f':
		s.buf.WriteByte('\f')
	case 'n':
		s.buf.WriteByte('\n')
	case 'r':
		s.buf.WriteByte('\r')
	case 't':
		s.buf.WriteByte('\t')
	case 'u':
		s.advance()
		return s.scanUnicode()
	default:
		return s.failf("invalid escape sequence %q", `\`+string(ch))
	}
	s.advance()
	return nil
}

// scanUnicode decodes the hex digits of a \u escape, combining a surrogate
// pair into a single code point.
func (s *Scanner) scanUnicode() error {
	hi, err := s.readHex4()
	if err != nil {
		return err
	}
	if isLowSurrogate(hi) {
		s.buf.WriteRune(utf8.RuneError) // unpaired
		return nil
	} else if !isHighSurrogate(hi) {
		s.buf.WriteRune(hi)
		return nil
	}

	// A high surrogate must be followed immediately by \u and a low surrogate.
	for _, want := range `\u` {
		ch, n := s.peek()
		if n == 0 {
			return s.failEOF("surrogate pair")
		} else if ch != want {
			return s.failf(`high surrogate must be followed by a low surrogate \uXXXX`)
		}
		s.advance()
	}
	lo, err := s.readHex4()
	if err != nil {
		return err
	} else if !isLowSurrogate(lo) {
		return s.failf(`invalid low surrogate \u%04X after high surrogate`, lo)
	}
	s.buf.WriteRune(0x10000 + ((hi - 0xD800) << 10) + (lo - 0xDC00))
	return nil
}

// scanNumber consumes a number and returns its lexeme verbatim.
// Precondition: the next rune is '-' or a digit.
func (s *Scanner) scanNumber() (Token, error) {
	start := s.pos
	s.accept('-')

	// Integer part: a single 0, or a nonzero digit followed by digits.
	ch, n := s.peek()
	switch {
	case n == 0:
		return Token{}, s.failEOF("number")
	case ch == '0':
		s.advance()
		if next, _ := s.peek(); isDigit(next) {
			return Token{}, s.failf("leading zeros are not allowed")
		}
	case isDigit(ch):
		s.skipDigits()
	default:
		return Token{}, s.failf("invalid number: missing integer part")
	}

	if s.accept('.') {
		if err := s.requireDigits("digit after decimal point"); err != nil {
			return Token{}, err
		}
	}

	if s.accept('e') || s.accept('E') {
		if !s.accept('+') {
			s.accept('-')
		}
		if err := s.requireDigits("digit in exponent"); err != nil {
			return Token{}, err
		}
	}
	return Token{Kind: Number, Text: s.src[start:s.pos]}, nil
}

// scanName consumes the constant named by kind.
func (s *Scanner) scanName(kind Kind) (Token, error) {
	want := kind.String()
	if mem.HasPrefix(mem.S(s.src[s.pos:]), mem.S(want)) {
		for range want {
			s.advance()
		}
		return Token{Kind: kind}, nil
	}

	// Find where the mismatch occurs for the benefit of the error location.
	for _, w := range want {
		ch, n := s.peek()
		if n == 0 {
			return Token{}, s.failEOF("literal " + want)
		} else if ch != w {
			break
		}
		s.advance()
	}
	return Token{}, s.failf("invalid literal; expected %q", want)
}

// peek returns the next unread rune and its width in bytes, without
// consuming it. At the end of input the width is 0.
func (s *Scanner) peek() (rune, int) {
	if s.pos >= len(s.src) {
		return 0, 0
	}
	if b := s.src[s.pos]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

// advance consumes one rune, updating the line and column.
func (s *Scanner) advance() {
	ch, n := s.peek()
	s.pos += n
	if ch == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
}

// accept consumes the next rune if it equals want, and reports whether it did.
func (s *Scanner) accept(want rune) bool {
	if ch, n := s.peek(); n != 0 && ch == want {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) skipSpace() {
	for {
		if ch, n := s.peek(); n == 0 || !isSpace(ch) {
			return
		}
		s.advance()
	}
}

func (s *Scanner) skipDigits() {
	for {
		if ch, n := s.peek(); n == 0 || !isDigit(ch) {
			return
		}
		s.advance()
	}
}

// requireDigits consumes one or more digits, or reports an error mentioning
// label.
func (s *Scanner) requireDigits(label string) error {
	ch, n := s.peek()
	if n == 0 {
		return s.failEOF("number")
	} else if !isDigit(ch) {
		return s.failf("invalid number: missing %s", label)
	}
	s.skipDigits()
	return nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() (rune, error) {
	var v rune
	for range 4 {
		ch, n := s.peek()
		if n == 0 {
			return 0, s.failEOF(`\uXXXX escape`)
		}
		d := hexValue(ch)
		if d < 0 {
			return 0, s.failf(`invalid hex digit %q in \uXXXX escape`, ch)
		}
		s.advance()
		v = v<<4 | d
	}
	return v, nil
}

func (s *Scanner) here() LineCol { return LineCol{Line: s.line, Column: s.col + 1} }

func (s *Scanner) failf(msg string, args ...any) *SyntaxError {
	return newSyntaxError(LexicalError, s.src, s.pos, s.here(), msg, args...)
}

func (s *Scanner) failEOF(what string) *SyntaxError {
	return s.failf("unexpected end of input in %s", what)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

func isHighSurrogate(r rune) bool { return 0xD800 <= r && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return 0xDC00 <= r && r <= 0xDFFF }

func hexValue(ch rune) rune {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0'
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10
	}
	return -1
}

var self = [...]Kind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
