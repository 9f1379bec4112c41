// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jpretty formats JSON documents in a canonical indented form.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidInput) {
			fmt.Fprintf(os.Stderr, "jpretty: %v\n", err)
		}
		os.Exit(1)
	}
}
