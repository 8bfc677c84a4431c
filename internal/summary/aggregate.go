// SPDX-License-Identifier: AGPL-3.0-or-later

package summary

import (
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/bartekus/cukesum/internal/report"
)

// Compute walks features, scenarios and steps in input order.
//
// A scenario is failed iff one of its steps failed; a scenario with only skipped
// steps therefore counts as passed. Durations are summed for every step whatever its
// status. Steps with an unrecognised status count towards no step bucket.
//
// With opts.StripANSI set, colour codes are removed from error messages before they
// are trimmed, so a message made only of escape codes becomes UnknownError.
func Compute(rep report.Report, opts Options) *Aggregate {
	agg := &Aggregate{
		Failures: []FailureDetail{},
		Features: make([]FeatureStats, 0, len(rep)),
	}

	for _, feature := range rep {
		featureName := orDefault(feature.Name, UnnamedFeature)
		stats := FeatureStats{Name: featureName}

		for _, scenario := range feature.Elements {
			failed := false

			for _, step := range scenario.Steps {
				d := int64(step.Duration())
				agg.TotalDurationNanos += d
				stats.DurationNanos += d

				switch step.Status() {
				case report.StatusFailed:
					agg.StepsFailed++
					stats.StepsFailed++
					failed = true
					agg.Failures = append(agg.Failures, failureOf(featureName, scenario, step, opts))
				case report.StatusPassed:
					agg.StepsPassed++
					stats.StepsPassed++
				case report.StatusSkipped:
					agg.StepsSkipped++
					stats.StepsSkipped++
				}
			}

			if failed {
				agg.ScenariosFailed++
				stats.ScenariosFailed++
			} else {
				agg.ScenariosPassed++
				stats.ScenariosPassed++
			}
		}

		agg.Features = append(agg.Features, stats)
	}

	return agg
}

func failureOf(featureName string, scenario report.Scenario, step report.Step, opts Options) FailureDetail {
	msg, _ := step.ErrorMessage()
	if opts.StripANSI {
		msg = stripansi.Strip(msg)
	}
	msg = strings.TrimSpace(msg)

	var tags []string
	for _, t := range scenario.Tags {
		if t.Name != "" {
			tags = append(tags, t.Name)
		}
	}

	return FailureDetail{
		Feature:      featureName,
		Scenario:     orDefault(scenario.Name, UnnamedScenario),
		Step:         orDefault(step.Name, UnnamedStep),
		Message:      orDefault(msg, UnknownError),
		ScenarioLine: scenario.Line,
		StepLine:     step.Line,
		Tags:         tags,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
