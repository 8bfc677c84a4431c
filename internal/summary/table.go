// SPDX-License-Identifier: AGPL-3.0-or-later

package summary

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const errorColumnWidth = 60

// RenderTable renders agg as plain-text tables for a terminal or a raw CI log.
func RenderTable(agg *Aggregate, opts Options) string {
	var b strings.Builder

	b.WriteString(opts.title() + "\n\n")

	counts := table.NewWriter()
	counts.SetStyle(table.StyleLight)
	counts.AppendHeader(table.Row{"", "Passed", "Failed", "Skipped"})
	counts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	counts.AppendRow(table.Row{"Scenarios", agg.ScenariosPassed, agg.ScenariosFailed, "-"})
	counts.AppendRow(table.Row{"Steps", agg.StepsPassed, agg.StepsFailed, agg.StepsSkipped})
	b.WriteString(counts.Render())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Total Step Duration: %s seconds\n\n", agg.DurationSeconds())

	if opts.PerFeature && len(agg.Features) > 0 {
		b.WriteString(featureStatsTable(agg.Features))
		b.WriteString("\n\n")
	}

	if len(agg.Failures) == 0 {
		b.WriteString(noErrorsLine + "\n\n")
	} else {
		b.WriteString(failuresTable(agg.Failures))
		b.WriteString("\n\n")
	}

	b.WriteString("Note: This is the sum of step durations (may exceed actual wall-clock time in parallel tests).\n")

	return b.String()
}

func failuresTable(failures []FailureDetail) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Failures (%d)", len(failures)))
	t.AppendHeader(table.Row{"#", "Feature", "Scenario", "Step", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Name: "Error", WidthMax: errorColumnWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	for i, f := range failures {
		t.AppendRow(table.Row{
			i + 1,
			f.Feature,
			f.Scenario + lineSuffix(f.ScenarioLine),
			f.Step + lineSuffix(f.StepLine),
			f.Message,
		})
		if i < len(failures)-1 {
			t.AppendSeparator()
		}
	}
	return t.Render()
}

func featureStatsTable(features []FeatureStats) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		"Feature", "Scenarios Passed", "Scenarios Failed",
		"Steps Passed", "Steps Failed", "Steps Skipped", "Duration (s)",
	})
	for _, f := range features {
		t.AppendRow(table.Row{
			f.Name,
			f.ScenariosPassed,
			f.ScenariosFailed,
			f.StepsPassed,
			f.StepsFailed,
			f.StepsSkipped,
			formatSeconds(f.DurationNanos),
		})
	}
	return t.Render()
}
