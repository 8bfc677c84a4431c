// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves cukesum settings from defaults, an optional YAML file and
// the environment. Command-line flags are layered on top by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/cukesum/internal/report"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatTable    = "table"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = ".cukesum.yaml"

// Environment variables consulted by LoadFromEnv.
const (
	EnvStepSummary = "GITHUB_STEP_SUMMARY"
	EnvReport      = "CUKESUM_REPORT"
	EnvFormat      = "CUKESUM_FORMAT"
	EnvLogLevel    = "CUKESUM_LOG_LEVEL"
	EnvJSONOut     = "CUKESUM_JSON_OUT"
)

// Config holds everything a summarize run needs.
type Config struct {
	ReportPath  string `yaml:"report"`
	SummaryFile string `yaml:"summary_file"`
	ForceStdout bool   `yaml:"stdout"`
	Format      string `yaml:"format"`
	Title       string `yaml:"title"`
	StripANSI   bool   `yaml:"strip_ansi"`
	PerFeature  bool   `yaml:"per_feature"`
	JSONOut     string `yaml:"json_out"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ReportPath: report.DefaultPath,
		Format:     FormatMarkdown,
		StripANSI:  true,
		LogLevel:   "warn",
	}
}

// LoadFile overlays the YAML file at path. A missing file is an error only when
// required is set, which the CLI does for an explicit --config.
func (c *Config) LoadFile(path string, required bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // config path is operator supplied
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv overlays non-empty environment variables.
func (c *Config) LoadFromEnv(getenv func(string) string) {
	if v := getenv(EnvStepSummary); v != "" {
		c.SummaryFile = v
	}
	if v := getenv(EnvReport); v != "" {
		c.ReportPath = v
	}
	if v := getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvJSONOut); v != "" {
		c.JSONOut = v
	}
}

// Validate rejects settings a run cannot honour.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ReportPath) == "" {
		errs = append(errs, errors.New("report path must not be empty"))
	}
	switch c.Format {
	case FormatMarkdown, FormatTable:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatMarkdown, FormatTable))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return lvl, nil
}

// SinkPath is the step-summary file to append to, or "" for the console.
func (c *Config) SinkPath() string {
	if c.ForceStdout {
		return ""
	}
	return c.SummaryFile
}
