// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("Write %s: %v", name, err)
	}
	return path
}

// runCmd executes the root command with the given arguments and stdin, and
// returns the contents of stdout and stderr.
func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootValid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.json", `{ "a": [1, true] }`)

	stdout, stderr, err := runCmd(t, "", path)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	const want = "{\n  \"a\": [\n    1,\n    true\n  ]\n}\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
	if stderr != "" {
		t.Errorf("Unexpected stderr: %q", stderr)
	}
}

func TestRootInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `{ "a": 1, }`)

	stdout, stderr, err := runCmd(t, "", path)
	if !errors.Is(err, errInvalidInput) {
		t.Fatalf("Execute: got error %v, want %v", err, errInvalidInput)
	}
	if diff := cmp.Diff("{\n  \"a\": 1,\n\n\n", stdout); diff != "" {
		t.Errorf("Partial output: (-want, +got)\n%s", diff)
	}
	const want = `==== PARTIAL FORMATTED OUTPUT ====
==== JSON ERROR at line:1 col:11 ====
object key must be a string, got "}"

{ "a": 1, }
          ^
`
	if diff := cmp.Diff(want, stderr); diff != "" {
		t.Errorf("Diagnostics: (-want, +got)\n%s", diff)
	}
}

func TestRootStdin(t *testing.T) {
	stdout, _, err := runCmd(t, "[[], {}]", "--indent", "4", "-")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if diff := cmp.Diff("[\n    [],\n    {}\n]\n", stdout); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestRootMultiple(t *testing.T) {
	dir := t.TempDir()
	var args []string
	var want strings.Builder
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		args = append(args, writeFile(t, dir, name+".json", `["`+name+`"]`))
		want.WriteString("[\n  \"" + name + "\"\n]\n")
	}

	stdout, _, err := runCmd(t, "", append([]string{"--jobs", "3"}, args...)...)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if diff := cmp.Diff(want.String(), stdout); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestRootMultipleNamesFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[]`)
	bad := writeFile(t, dir, "bad.json", `[1 2]`)

	stdout, stderr, err := runCmd(t, "", good, bad)
	if !errors.Is(err, errInvalidInput) {
		t.Fatalf("Execute: got error %v, want %v", err, errInvalidInput)
	}
	if diff := cmp.Diff("[]\n[\n  1\n\n", stdout); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
	if !strings.Contains(stderr, "JSON ERROR at "+bad+" line:1 col:4") {
		t.Errorf("Diagnostics do not name the file:\n%s", stderr)
	}
}

func TestRootConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "jpretty.yaml", "indent: 4\nescape_strings: false\n")
	path := writeFile(t, dir, "in.json", `{"q": "a\"b"}`)

	t.Run("File", func(t *testing.T) {
		stdout, _, err := runCmd(t, "", "--config", cfg, path)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if diff := cmp.Diff("{\n    \"q\": \"a\"b\"\n}\n", stdout); diff != "" {
			t.Errorf("Output: (-want, +got)\n%s", diff)
		}
	})
	t.Run("FlagOverride", func(t *testing.T) {
		stdout, _, err := runCmd(t, "", "--config", cfg, "-i", "1", "--escape-strings=true", path)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if diff := cmp.Diff("{\n \"q\": \"a\\\"b\"\n}\n", stdout); diff != "" {
			t.Errorf("Output: (-want, +got)\n%s", diff)
		}
	})
}

func TestRootErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.json", `[]`)
	badCfg := writeFile(t, dir, "bad.yaml", "indent: [1\n")

	tests := []struct {
		name string
		args []string
	}{
		{"MissingFile", []string{filepath.Join(dir, "nonesuch.json")}},
		{"MissingConfig", []string{"--config", filepath.Join(dir, "nonesuch.yaml"), path}},
		{"BadConfig", []string{"--config", badCfg, path}},
		{"NegativeIndent", []string{"--indent=-1", path}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := runCmd(t, "", test.args...)
			if err == nil {
				t.Fatal("Execute: got nil, want error")
			} else if errors.Is(err, errInvalidInput) {
				t.Errorf("Execute: got %v, want a usage error", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "max_depth: 16\n")

	got, err := loadConfig(path, defaultConfig())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := defaultConfig()
	want.MaxDepth = 16
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Config: (-want, +got)\n%s", diff)
	}
}
