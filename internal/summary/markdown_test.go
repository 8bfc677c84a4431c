// SPDX-License-Identifier: AGPL-3.0-or-later
package summary

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/cukesum/internal/report"
	"github.com/bartekus/cukesum/internal/testutil/golden"
)

func loadFixture(t *testing.T) *Aggregate {
	t.Helper()
	rep, err := report.Load(filepath.Join("testdata", "mixed.json"))
	require.NoError(t, err)
	return Compute(rep, Options{})
}

func TestRenderMarkdown_Golden(t *testing.T) {
	dir := golden.TestdataDir(t)

	golden.Assert(t, dir, "markdown_mixed", RenderMarkdown(loadFixture(t), Options{}))
	golden.Assert(t, dir, "markdown_mixed_per_feature", RenderMarkdown(loadFixture(t), Options{PerFeature: true}))
	golden.Assert(t, dir, "markdown_empty", RenderMarkdown(Compute(nil, Options{}), Options{PerFeature: true}))
}

func TestRenderMarkdown_FailuresSeparatedByRule(t *testing.T) {
	agg := &Aggregate{
		StepsFailed: 3,
		Failures: []FailureDetail{
			{Feature: "F", Scenario: "first", Step: "s", Message: "m1"},
			{Feature: "F", Scenario: "second", Step: "s", Message: "m2"},
			{Feature: "F", Scenario: "third", Step: "s", Message: "m3"},
		},
	}

	out := RenderMarkdown(agg, Options{})

	assert.Equal(t, 2, strings.Count(out, "\n---\n"))
	first := strings.Index(out, "#### 1. first")
	second := strings.Index(out, "#### 2. second")
	third := strings.Index(out, "#### 3. third")
	require.True(t, first >= 0 && second > first && third > second, "failures out of order:\n%s", out)
	assert.NotContains(t, out, "No errors found")
	assert.True(t, strings.HasSuffix(out, DurationNote+"\n"))
}

func TestRenderMarkdown_Title(t *testing.T) {
	out := RenderMarkdown(&Aggregate{}, Options{Title: "E2E results"})
	assert.True(t, strings.HasPrefix(out, "## E2E results\n\n"))
}

func TestRenderMarkdown_ColourCodedMessage(t *testing.T) {
	rep := report.Report{{Elements: []report.Scenario{{Steps: []report.Step{
		failedStep("check", "\x1b[31mexpected\x1b[39m true"),
	}}}}}

	assert.Contains(t, RenderMarkdown(Compute(rep, Options{StripANSI: true}), Options{}), "```\nexpected true\n```\n")
	assert.Contains(t, RenderMarkdown(Compute(rep, Options{}), Options{}), "\x1b[31m")
}

func TestRenderMarkdown_DurationTwoDecimals(t *testing.T) {
	out := RenderMarkdown(&Aggregate{TotalDurationNanos: 1_500_000_000}, Options{})
	assert.Contains(t, out, "**⏱ Total Step Duration:** 1.50 seconds")
}
