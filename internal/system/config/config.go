// Released under an MIT license. See LICENSE.

// Package config loads the optional jsh configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// T holds the shell's configuration.
type T struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Trace       struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"trace"`
}

// Default returns the configuration used when no file is present.
func Default() *T {
	c := &T{Prompt: "$ "}

	return c
}

// Load reads the configuration from ~/.config/jsh/config.yml, falling back
// to defaults when the file does not exist. Environment variables JSH_TRACE
// and JSH_TRACE_FILE override the trace settings.
func Load() (*T, error) {
	return load(path())
}

func load(p string) (*T, error) {
	c := Default()

	if p != "" {
		b, err := os.ReadFile(p)
		if err == nil {
			if err := yaml.Unmarshal(b, c); err != nil {
				return Default(), err
			}
		} else if !os.IsNotExist(err) {
			return c, err
		}
	}

	if c.Prompt == "" {
		c.Prompt = "$ "
	}

	if v := os.Getenv("JSH_TRACE"); v != "" {
		c.Trace.Level = v
	}

	if v := os.Getenv("JSH_TRACE_FILE"); v != "" {
		c.Trace.File = v
	}

	return c, nil
}

func path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "jsh", "config.yml")
}
