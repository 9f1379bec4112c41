// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/creachadair/jpretty"
	"github.com/creachadair/jpretty/internal/console"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
)

// defaultInputName is the file read when no arguments are given. It is
// resolved relative to the directory containing the executable.
const defaultInputName = "dataInput.json"

// errInvalidInput is reported when at least one input fails to format. The
// diagnostics have already been written when it is returned.
var errInvalidInput = errors.New("invalid JSON input")

// An input is a named source document.
type input struct {
	name string
	src  string
}

// A result is the outcome of formatting one input.
type result struct {
	out string
	err error
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgPath string
		verbose bool
		jobs    int
		flags   = defaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "jpretty [file ...]",
		Short: "Format JSON documents with canonical indentation",
		Long: `Format JSON documents to stdout.

Each argument names a file to format; "-" reads from stdin. With no
arguments, jpretty formats ` + defaultInputName + ` from the directory
containing the executable.

If a document is invalid, the output produced before the error is written
to stdout, and the location of the error is reported on stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultConfig()
			if cfgPath != "" {
				var err error
				if cfg, err = loadConfig(cfgPath, cfg); err != nil {
					return err
				}
			}
			// Flags given explicitly take precedence over the config file.
			fs := cmd.Flags()
			if fs.Changed("indent") {
				cfg.Indent = flags.Indent
			}
			if fs.Changed("max-depth") {
				cfg.MaxDepth = flags.MaxDepth
			}
			if fs.Changed("escape-strings") {
				cfg.EscapeStrings = flags.EscapeStrings
			}
			if cfg.Indent < 0 {
				return fmt.Errorf("indent must be non-negative, got %d", cfg.Indent)
			}

			if len(args) == 0 {
				path, err := defaultInputPath()
				if err != nil {
					return err
				}
				args = []string{path}
			}
			inputs, err := readInputs(args, stdin)
			if err != nil {
				return err
			}

			pr := console.NewPrinter(stderr)
			logf := func(msg string, args ...any) {
				if verbose {
					fmt.Fprintln(stderr, pr.FormatInfoMessage(fmt.Sprintf(msg, args...)))
				}
			}
			logf("Formatting %d input(s) with indent %d", len(inputs), cfg.Indent)

			mapper := iter.Mapper[input, result]{MaxGoroutines: jobs}
			results := mapper.Map(inputs, func(in *input) result {
				out, err := cfg.newFormatter(in.src).Format()
				return result{out: out, err: err}
			})

			var failed bool
			for i, res := range results {
				name := inputs[i].name
				if res.err == nil {
					logf("Formatted %s (%d bytes)", name, len(res.out))
					io.WriteString(stdout, res.out)
					continue
				}
				var serr *jpretty.SyntaxError
				if !errors.As(res.err, &serr) {
					return fmt.Errorf("format %s: %w", name, res.err)
				}
				failed = true
				if len(inputs) == 1 {
					name = ""
				}
				writeFailure(pr, stdout, stderr, name, serr)
			}
			if failed {
				return errInvalidInput
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.Indent, "indent", "i", flags.Indent, "spaces per nesting level")
	cmd.Flags().IntVar(&flags.MaxDepth, "max-depth", flags.MaxDepth, "maximum nesting depth (0 for no limit)")
	cmd.Flags().BoolVar(&flags.EscapeStrings, "escape-strings", flags.EscapeStrings,
		"re-escape strings on output (false copies decoded text verbatim)")
	cmd.Flags().StringVar(&cfgPath, "config", "", "read settings from this YAML file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report progress on stderr")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of inputs to format concurrently")

	return cmd
}

// writeFailure writes the partial output of a failed input to stdout, followed
// by a blank line, and the error diagnostics to stderr.
func writeFailure(pr console.Printer, stdout, stderr io.Writer, name string, serr *jpretty.SyntaxError) {
	fmt.Fprintln(stderr, pr.FormatPartialHeader())
	fmt.Fprintln(stdout, serr.Partial)
	fmt.Fprintln(stdout)
	io.WriteString(stderr, pr.FormatError(name, serr))
}

// readInputs reads the contents of the named files. The name "-" denotes
// stdin, which is read at most once.
func readInputs(names []string, stdin io.Reader) ([]input, error) {
	var stdinText *string
	inputs := make([]input, 0, len(names))
	for _, name := range names {
		if name == "-" {
			if stdinText == nil {
				data, err := io.ReadAll(stdin)
				if err != nil {
					return nil, fmt.Errorf("read stdin: %w", err)
				}
				s := string(data)
				stdinText = &s
			}
			inputs = append(inputs, input{name: "<stdin>", src: *stdinText})
			continue
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		inputs = append(inputs, input{name: name, src: string(data)})
	}
	return inputs, nil
}

// defaultInputPath returns the path of the default input file beside the
// running executable.
func defaultInputPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), defaultInputName), nil
}
