// SPDX-License-Identifier: AGPL-3.0-or-later

/*
cukesum - cukesum turns a cucumber JSON test-run report into a pass/fail summary for CI logs and step-summary panels.
It counts scenarios and steps, sums step durations and lists every failing step with its error.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands for the cukesum CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the cukesum root Cobra command. Run without a subcommand it
// behaves like `cukesum summarize`.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("CUKESUM_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "cukesum",
		Short: "Summarize cucumber JSON reports for CI",
		Long: `cukesum reads a cucumber JSON report and prints scenario and step counts,
the cumulative step duration and the details of every failed step.

When GITHUB_STEP_SUMMARY is set the summary is appended to that file, otherwise it is
printed to standard output.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSummarize,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	addSummarizeFlags(cmd.Flags())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of cukesum",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cukesum version %s\n", version)
		},
	})
	cmd.AddCommand(NewSummarizeCommand())

	return cmd
}
