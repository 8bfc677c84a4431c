// SPDX-License-Identifier: AGPL-3.0-or-later

/*
cukesum - cukesum turns a cucumber JSON test-run report into a pass/fail summary for CI logs and step-summary panels.
It counts scenarios and steps, sums step durations and lists every failing step with its error.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bartekus/cukesum/cmd/cukesum/internal/clierr"
	"github.com/bartekus/cukesum/internal/config"
	"github.com/bartekus/cukesum/internal/console"
	"github.com/bartekus/cukesum/internal/pipeline"
)

// NewSummarizeCommand returns the `cukesum summarize` command.
func NewSummarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a cucumber JSON report",
		Long: `Summarize a cucumber JSON report.

Settings are resolved from built-in defaults, then .cukesum.yaml (or --config), then
the CUKESUM_* and GITHUB_STEP_SUMMARY environment variables, then flags.

Exit status is 1 when the report is missing, is not valid JSON, or the summary cannot
be written, and also when an implicit .cukesum.yaml cannot be read. Exit status is 2
for an unusable --config file or an invalid setting.`,
		Args: cobra.NoArgs,
		RunE: runSummarize,
	}
	addSummarizeFlags(cmd.Flags())
	return cmd
}

func addSummarizeFlags(f *pflag.FlagSet) {
	f.String("config", config.DefaultFile, "path to a YAML config file")
	f.String("report", config.Default().ReportPath, "path to the cucumber JSON report")
	f.String("summary-file", "", "file to append the summary to (default $"+config.EnvStepSummary+")")
	f.Bool("stdout", false, "print the summary even when a step summary file is configured")
	f.String("format", config.FormatMarkdown, "output format: markdown or table")
	f.String("title", "", "summary heading")
	f.Bool("strip-ansi", true, "remove ANSI colour codes from error messages")
	f.Bool("per-feature", false, "include a per-feature breakdown")
	f.String("json-out", "", "also write the aggregate as JSON to this path")
	f.String("log-level", "warn", "log level: debug, info, warn or error")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	con := console.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return clierr.Wrap(2, "invalid configuration", err)
	}
	logger.Debug("resolved configuration",
		"report", cfg.ReportPath,
		"sink", cfg.SinkPath(),
		"format", cfg.Format,
		"json_out", cfg.JSONOut,
	)

	res := pipeline.New(cfg, con, logger).Run(cmd.Context())
	if !res.OK() {
		logger.Debug("summarize failed", "kind", res.Kind.String(), "error", res.Err)
		con.Error("Error generating test summary: %v", res.Err)
		return clierr.Reported(1, res.Err)
	}
	return nil
}

// resolveConfig layers defaults, the config file, the environment and changed flags.
// Errors carry exit code 2 when the operator asked for the bad input (--config or a
// flag value) and 1 when an implicit .cukesum.yaml in the working directory is broken.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()

	path, err := f.GetString("config")
	if err != nil {
		return nil, clierr.Wrap(2, "invalid configuration", err)
	}
	explicit := f.Changed("config")
	if err := cfg.LoadFile(path, explicit); err != nil {
		code := 1
		if explicit {
			code = 2
		}
		return nil, clierr.Wrap(code, "invalid configuration", err)
	}

	cfg.LoadFromEnv(os.Getenv)

	strFlags := map[string]*string{
		"report":       &cfg.ReportPath,
		"summary-file": &cfg.SummaryFile,
		"format":       &cfg.Format,
		"title":        &cfg.Title,
		"json-out":     &cfg.JSONOut,
		"log-level":    &cfg.LogLevel,
	}
	for name, dst := range strFlags {
		if !f.Changed(name) {
			continue
		}
		if *dst, err = f.GetString(name); err != nil {
			return nil, clierr.Wrap(2, "invalid configuration", fmt.Errorf("get %s flag: %w", name, err))
		}
	}

	boolFlags := map[string]*bool{
		"stdout":      &cfg.ForceStdout,
		"strip-ansi":  &cfg.StripANSI,
		"per-feature": &cfg.PerFeature,
	}
	for name, dst := range boolFlags {
		if !f.Changed(name) {
			continue
		}
		if *dst, err = f.GetBool(name); err != nil {
			return nil, clierr.Wrap(2, "invalid configuration", fmt.Errorf("get %s flag: %w", name, err))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, clierr.Wrap(2, "invalid configuration", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}
