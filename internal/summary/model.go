// SPDX-License-Identifier: AGPL-3.0-or-later

// Package summary aggregates a cucumber report and renders it for CI output.
package summary

import "fmt"

// Defaults substituted for absent names and messages.
const (
	UnnamedFeature  = "Unnamed Feature"
	UnnamedScenario = "Unnamed Scenario"
	UnnamedStep     = "Unnamed Step"
	UnknownError    = "Unknown error"
)

// Aggregate holds the counters computed over one report.
type Aggregate struct {
	ScenariosPassed    int             `json:"scenarios_passed"`
	ScenariosFailed    int             `json:"scenarios_failed"`
	StepsPassed        int             `json:"steps_passed"`
	StepsFailed        int             `json:"steps_failed"`
	StepsSkipped       int             `json:"steps_skipped"`
	TotalDurationNanos int64           `json:"total_duration_nanos"`
	Failures           []FailureDetail `json:"failures"`
	Features           []FeatureStats  `json:"features"`
}

// FailureDetail describes one failed step.
type FailureDetail struct {
	Feature      string   `json:"feature"`
	Scenario     string   `json:"scenario"`
	Step         string   `json:"step"`
	Message      string   `json:"message"`
	ScenarioLine int      `json:"scenario_line,omitempty"`
	StepLine     int      `json:"step_line,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// FeatureStats is the per-feature slice of the aggregate.
type FeatureStats struct {
	Name            string `json:"name"`
	ScenariosPassed int    `json:"scenarios_passed"`
	ScenariosFailed int    `json:"scenarios_failed"`
	StepsPassed     int    `json:"steps_passed"`
	StepsFailed     int    `json:"steps_failed"`
	StepsSkipped    int    `json:"steps_skipped"`
	DurationNanos   int64  `json:"duration_nanos"`
}

// Scenarios returns the total number of scenarios seen.
func (a *Aggregate) Scenarios() int {
	return a.ScenariosPassed + a.ScenariosFailed
}

// DurationSeconds formats the cumulative step duration in seconds with two decimals.
func (a *Aggregate) DurationSeconds() string {
	return formatSeconds(a.TotalDurationNanos)
}

func formatSeconds(nanos int64) string {
	return fmt.Sprintf("%.2f", float64(nanos)/1_000_000_000)
}
