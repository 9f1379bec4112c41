// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/creachadair/jpretty"
	"gopkg.in/yaml.v3"
)

// config holds the formatting settings for a run.
type config struct {
	Indent        int  `yaml:"indent"`
	MaxDepth      int  `yaml:"max_depth"`
	EscapeStrings bool `yaml:"escape_strings"`
}

func defaultConfig() config {
	return config{
		Indent:        jpretty.DefaultIndent,
		MaxDepth:      jpretty.DefaultMaxDepth,
		EscapeStrings: true,
	}
}

// loadConfig reads a YAML config file from path. Settings not present in the
// file keep their values from base.
func loadConfig(path string, base config) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Indent < 0 {
		return base, fmt.Errorf("parse config %s: indent must be non-negative, got %d", path, cfg.Indent)
	}
	return cfg, nil
}

// newFormatter constructs a formatter for src using the settings in c.
func (c config) newFormatter(src string) *jpretty.Formatter {
	f := jpretty.NewFormatter(src, c.Indent)
	f.SetMaxDepth(c.MaxDepth)
	f.SetEscapeStrings(c.EscapeStrings)
	return f
}
