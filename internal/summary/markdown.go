// SPDX-License-Identifier: AGPL-3.0-or-later

package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bartekus/cukesum/internal/projection"
)

// DefaultTitle heads the rendered summary.
const DefaultTitle = "🧪 Test Summary"

// DurationNote is appended to every rendering.
const DurationNote = "📌 _Note: This is the sum of step durations (may exceed actual wall-clock time in parallel tests)._"

const noErrorsLine = "✅ No errors found."

// Options tune aggregation and rendering. The zero value keeps messages as reported
// and renders with DefaultTitle.
type Options struct {
	Title      string
	StripANSI  bool
	PerFeature bool
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// RenderMarkdown renders agg as GitHub-flavoured markdown suitable for a step summary.
// Lines inside a block end with two spaces so they break without becoming a list.
func RenderMarkdown(agg *Aggregate, opts Options) string {
	var b strings.Builder

	b.WriteString(projection.RenderHeader(2, opts.title()))

	b.WriteString("**Scenarios:**  \n")
	fmt.Fprintf(&b, "🟩 %d passed  \n", agg.ScenariosPassed)
	fmt.Fprintf(&b, "🟥 %d failed  \n", agg.ScenariosFailed)
	b.WriteString("\n")

	b.WriteString("**Steps:**  \n")
	fmt.Fprintf(&b, "🟩 %d passed  \n", agg.StepsPassed)
	fmt.Fprintf(&b, "🟥 %d failed  \n", agg.StepsFailed)
	fmt.Fprintf(&b, "🟧 %d skipped  \n", agg.StepsSkipped)
	b.WriteString("\n")

	fmt.Fprintf(&b, "**⏱ Total Step Duration:** %s seconds  \n", agg.DurationSeconds())
	b.WriteString("\n")

	if opts.PerFeature && len(agg.Features) > 0 {
		b.WriteString(projection.RenderHeader(3, "Features"))
		b.WriteString(featureTable(agg.Features))
		b.WriteString("\n")
	}

	if len(agg.Failures) == 0 {
		b.WriteString(noErrorsLine + "\n\n")
	} else {
		b.WriteString(projection.RenderHeader(3, "❌ Failures"))
		for i, f := range agg.Failures {
			if i > 0 {
				b.WriteString("---\n\n")
			}
			writeFailure(&b, i+1, f)
		}
	}

	b.WriteString(DurationNote + "\n")

	return b.String()
}

func writeFailure(b *strings.Builder, n int, f FailureDetail) {
	b.WriteString(projection.RenderHeader(4, fmt.Sprintf("%d. %s", n, f.Scenario)))
	fmt.Fprintf(b, "- **Feature:** %s\n", f.Feature)
	fmt.Fprintf(b, "- **Scenario:** %s%s\n", f.Scenario, lineSuffix(f.ScenarioLine))
	fmt.Fprintf(b, "- **Step:** %s%s\n", f.Step, lineSuffix(f.StepLine))
	if len(f.Tags) > 0 {
		fmt.Fprintf(b, "- **Tags:** %s\n", strings.Join(f.Tags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(projection.RenderCodeBlock(f.Message))
	b.WriteString("\n")
}

func featureTable(features []FeatureStats) string {
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		rows = append(rows, []string{
			f.Name,
			strconv.Itoa(f.ScenariosPassed),
			strconv.Itoa(f.ScenariosFailed),
			strconv.Itoa(f.StepsPassed),
			strconv.Itoa(f.StepsFailed),
			strconv.Itoa(f.StepsSkipped),
			formatSeconds(f.DurationNanos),
		})
	}
	return projection.RenderTable(
		[]string{"Feature", "Scenarios 🟩", "Scenarios 🟥", "Steps 🟩", "Steps 🟥", "Steps 🟧", "Duration (s)"},
		rows,
	)
}

func lineSuffix(line int) string {
	if line <= 0 {
		return ""
	}
	return fmt.Sprintf(" (line %d)", line)
}
