// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report decodes cucumber JSON test-run reports.
//
// Every field is optional: cucumber formatters differ in what they emit, so absent
// substructure decodes to zero values or nil pointers and callers apply defaults.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Status values the summarizer distinguishes. Anything else is counted in no bucket.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Report is the top-level JSON array.
type Report []Feature

// Feature groups the scenarios of one feature file.
type Feature struct {
	Name     string     `json:"name,omitempty"`
	URI      string     `json:"uri,omitempty"`
	Elements []Scenario `json:"elements,omitempty"`
}

// Scenario is one test case.
type Scenario struct {
	Name  string `json:"name,omitempty"`
	Line  int    `json:"line,omitempty"`
	Tags  []Tag  `json:"tags,omitempty"`
	Steps []Step `json:"steps,omitempty"`
}

// Tag is a scenario tag such as "@smoke".
type Tag struct {
	Name string `json:"name"`
	Line int    `json:"line,omitempty"`
}

// Step is one action or assertion within a scenario.
type Step struct {
	Keyword string  `json:"keyword,omitempty"`
	Name    string  `json:"name,omitempty"`
	Line    int     `json:"line,omitempty"`
	Result  *Result `json:"result,omitempty"`
}

// Result is the outcome of a step.
type Result struct {
	Status       string  `json:"status,omitempty"`
	Duration     Nanos   `json:"duration,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// Status returns the step status, or "" when the step has no result.
func (s Step) Status() string {
	if s.Result == nil {
		return ""
	}
	return s.Result.Status
}

// Duration returns the step duration in nanoseconds, 0 when absent.
func (s Step) Duration() Nanos {
	if s.Result == nil {
		return 0
	}
	return s.Result.Duration
}

// ErrorMessage returns the raw error message and whether one was present.
func (s Step) ErrorMessage() (string, bool) {
	if s.Result == nil || s.Result.ErrorMessage == nil {
		return "", false
	}
	return *s.Result.ErrorMessage, true
}

// Nanos is a step duration in nanoseconds.
//
// cucumber-js writes integers; some formatters write floats. Floats are rounded to the
// nearest nanosecond and null decodes as 0.
type Nanos int64

func (n *Nanos) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	if i, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		*n = Nanos(i)
		return nil
	}
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return fmt.Errorf("duration %q: %w", num.String(), err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) > math.MaxInt64 {
		return fmt.Errorf("duration %q out of range", num.String())
	}
	*n = Nanos(math.Round(f))
	return nil
}
