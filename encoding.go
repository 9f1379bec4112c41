// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpretty

import (
	"github.com/creachadair/jpretty/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added. This is the encoding the Formatter uses
// for strings and object keys.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }
