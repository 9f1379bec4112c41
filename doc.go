// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jpretty implements a strict JSON scanner and a formatter that
// re-emits JSON documents in a canonical indented form.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from the source text and call its Next method to iterate over the tokens:
//
//	s := jpretty.NewScanner(input)
//	for {
//	   tok, err := s.Next()
//	   if err != nil {
//	      log.Fatalf("Scanning failed: %v", err)
//	   } else if tok.Kind == jpretty.EOF {
//	      break
//	   }
//	   log.Printf("Next token: %v at %v", tok.Kind, tok.Pos)
//	}
//
// The scanner accepts only standard JSON: comments, trailing commas, and
// other relaxations are rejected. String tokens carry their decoded text,
// and number tokens carry their verbatim lexeme.
//
// # Formatting
//
// The Formatter type consumes tokens from a Scanner and writes each object
// member and array element on its own line:
//
//	out, err := jpretty.NewFormatter(input, 2).Format()
//	if err != nil {
//	   log.Fatalf("Format failed: %v", err)
//	}
//
// The input must be a single object or array, optionally surrounded by
// whitespace.
//
// # Errors
//
// In case of error, formatting stops at the first violation and an error of
// concrete type *jpretty.SyntaxError is returned. The error reports the line
// and column of the failure, the text of the failing source line with a caret
// marking the column, and the output produced before the failure:
//
//	var serr *jpretty.SyntaxError
//	if errors.As(err, &serr) {
//	   fmt.Print(serr.Partial)
//	   fmt.Fprintln(os.Stderr, serr.Message)
//	   fmt.Fprintln(os.Stderr, serr.Snippet())
//	}
package jpretty
