// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpretty

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // rune offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// IsValid reports whether lc denotes a real position in the source.
func (lc LineCol) IsValid() bool { return lc.Line > 0 && lc.Column > 0 }
