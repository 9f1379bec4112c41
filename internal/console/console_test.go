// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package console

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jpretty"
	"github.com/google/go-cmp/cmp"
)

func mustSyntaxError(t *testing.T, input string) *jpretty.SyntaxError {
	t.Helper()
	_, err := jpretty.Format(input)
	var serr *jpretty.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Format(%#q): got error %v, want *SyntaxError", input, err)
	}
	return serr
}

func TestFormatError(t *testing.T) {
	var p Printer
	tests := []struct {
		name, input string
		want        string
	}{
		{"", `{ "a": 1, }`, `==== JSON ERROR at line:1 col:11 ====
object key must be a string, got "}"

{ "a": 1, }
          ^
`},
		{"data.json", "[\n  tru\n]", `==== JSON ERROR at data.json line:2 col:6 ====
invalid literal; expected "true"

  tru
     ^
`},
		{"", "[\n", `==== JSON ERROR at line:2 col:1 ====
expected value, got end of input
`},
	}
	for _, test := range tests {
		got := p.FormatError(test.name, mustSyntaxError(t, test.input))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("FormatError(%#q): (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestPlainMessages(t *testing.T) {
	var p Printer
	if got, want := p.FormatPartialHeader(), "==== PARTIAL FORMATTED OUTPUT ===="; got != want {
		t.Errorf("FormatPartialHeader: got %q, want %q", got, want)
	}
	if got, want := p.FormatInfoMessage("hello"), "ℹ hello"; got != want {
		t.Errorf("FormatInfoMessage: got %q, want %q", got, want)
	}
}

func TestStyled(t *testing.T) {
	p := Printer{Styled: true}
	serr := mustSyntaxError(t, `[1 2]`)
	got := p.FormatError("", serr)
	for _, want := range []string{"JSON ERROR at line:1 col:4", serr.Message, serr.Context} {
		if !strings.Contains(got, want) {
			t.Errorf("Styled output missing %q:\n%s", want, got)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	var buf strings.Builder
	if IsTerminal(&buf) {
		t.Error("IsTerminal(strings.Builder): got true, want false")
	}
	if got := NewPrinter(&buf); got.Styled {
		t.Error("NewPrinter(strings.Builder): got styled printer")
	}
}
