// SPDX-License-Identifier: AGPL-3.0-or-later
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/bartekus/cukesum/internal/config"
	"github.com/bartekus/cukesum/internal/console"
)

// featureState holds one scenario's workspace and outcome.
type featureState struct {
	dir         string
	cfg         *config.Config
	summaryPath string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	result      Result
}

func initializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^the format is "([^"]*)"$`, state.theFormatIs)
	ctx.Step(`^a report file containing:$`, state.aReportFileContaining)
	ctx.Step(`^no report file exists$`, state.noReportFileExists)
	ctx.Step(`^a step summary file containing "([^"]*)"$`, state.aStepSummaryFileContaining)
	ctx.Step(`^I summarize the report$`, state.iSummarizeTheReport)
	ctx.Step(`^the run succeeds$`, state.theRunSucceeds)
	ctx.Step(`^the run fails with kind "([^"]*)"$`, state.theRunFailsWithKind)
	ctx.Step(`^scenarios passed (\d+) and failed (\d+)$`, state.scenariosPassedAndFailed)
	ctx.Step(`^steps passed (\d+), failed (\d+) and skipped (\d+)$`, state.stepsPassedFailedSkipped)
	ctx.Step(`^failure (\d+) has message "([^"]*)"$`, state.failureHasMessage)
	ctx.Step(`^the summary contains "([^"]*)"$`, state.theSummaryContains)
	ctx.Step(`^the step summary file contains "([^"]*)"$`, state.theStepSummaryFileContains)
	ctx.Step(`^the step summary file is exactly "([^"]*)"$`, state.theStepSummaryFileIsExactly)
	ctx.Step(`^the console output contains "([^"]*)"$`, state.theConsoleOutputContains)
	ctx.Step(`^the console output is empty$`, state.theConsoleOutputIsEmpty)
}

func (s *featureState) reset() error {
	dir, err := os.MkdirTemp("", "cukesum-feature-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.dir = dir
	s.cfg = config.Default()
	s.cfg.ReportPath = filepath.Join(dir, "reports", "cucumber-report.json")
	s.summaryPath = ""
	s.stdout.Reset()
	s.stderr.Reset()
	s.result = Result{}
	return nil
}

func (s *featureState) cleanup() {
	if s.dir != "" {
		_ = os.RemoveAll(s.dir)
	}
}

func (s *featureState) theFormatIs(format string) error {
	s.cfg.Format = format
	return s.cfg.Validate()
}

func (s *featureState) aReportFileContaining(doc *godog.DocString) error {
	if err := os.MkdirAll(filepath.Dir(s.cfg.ReportPath), 0o750); err != nil {
		return err
	}
	return os.WriteFile(s.cfg.ReportPath, []byte(doc.Content), 0o600)
}

func (s *featureState) noReportFileExists() error {
	if _, err := os.Stat(s.cfg.ReportPath); !os.IsNotExist(err) {
		return fmt.Errorf("report unexpectedly present at %s", s.cfg.ReportPath)
	}
	return nil
}

func (s *featureState) aStepSummaryFileContaining(content string) error {
	s.summaryPath = filepath.Join(s.dir, "step_summary.md")
	s.cfg.SummaryFile = s.summaryPath
	return os.WriteFile(s.summaryPath, []byte(content), 0o600)
}

func (s *featureState) iSummarizeTheReport(ctx context.Context) error {
	s.result = New(s.cfg, console.New(&s.stdout, &s.stderr), nil).Run(ctx)
	return nil
}

func (s *featureState) theRunSucceeds() error {
	if !s.result.OK() {
		return fmt.Errorf("expected success, got %s: %v", s.result.Kind, s.result.Err)
	}
	return nil
}

func (s *featureState) theRunFailsWithKind(kind string) error {
	if s.result.Kind.String() != kind {
		return fmt.Errorf("expected kind %q, got %q (err: %v)", kind, s.result.Kind, s.result.Err)
	}
	if s.result.Err == nil {
		return fmt.Errorf("expected an error with kind %q", kind)
	}
	return nil
}

func (s *featureState) scenariosPassedAndFailed(passed, failed int) error {
	agg := s.result.Aggregate
	if agg == nil {
		return fmt.Errorf("no aggregate: %v", s.result.Err)
	}
	if agg.ScenariosPassed != passed || agg.ScenariosFailed != failed {
		return fmt.Errorf("scenarios passed/failed = %d/%d, want %d/%d",
			agg.ScenariosPassed, agg.ScenariosFailed, passed, failed)
	}
	return nil
}

func (s *featureState) stepsPassedFailedSkipped(passed, failed, skipped int) error {
	agg := s.result.Aggregate
	if agg == nil {
		return fmt.Errorf("no aggregate: %v", s.result.Err)
	}
	if agg.StepsPassed != passed || agg.StepsFailed != failed || agg.StepsSkipped != skipped {
		return fmt.Errorf("steps passed/failed/skipped = %d/%d/%d, want %d/%d/%d",
			agg.StepsPassed, agg.StepsFailed, agg.StepsSkipped, passed, failed, skipped)
	}
	return nil
}

func (s *featureState) failureHasMessage(n int, msg string) error {
	agg := s.result.Aggregate
	if agg == nil || n < 1 || n > len(agg.Failures) {
		return fmt.Errorf("no failure %d", n)
	}
	if got := agg.Failures[n-1].Message; got != msg {
		return fmt.Errorf("failure %d message = %q, want %q", n, got, msg)
	}
	return nil
}

func (s *featureState) theSummaryContains(text string) error {
	if !strings.Contains(s.result.Summary, text) {
		return fmt.Errorf("summary does not contain %q:\n%s", text, s.result.Summary)
	}
	return nil
}

func (s *featureState) readStepSummary() (string, error) {
	if s.summaryPath == "" {
		return "", fmt.Errorf("no step summary file configured")
	}
	data, err := os.ReadFile(s.summaryPath)
	return string(data), err
}

func (s *featureState) theStepSummaryFileContains(text string) error {
	got, err := s.readStepSummary()
	if err != nil {
		return err
	}
	if !strings.Contains(got, text) {
		return fmt.Errorf("step summary does not contain %q:\n%s", text, got)
	}
	return nil
}

func (s *featureState) theStepSummaryFileIsExactly(text string) error {
	got, err := s.readStepSummary()
	if err != nil {
		return err
	}
	if got != text {
		return fmt.Errorf("step summary = %q, want %q", got, text)
	}
	return nil
}

func (s *featureState) theConsoleOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("console output does not contain %q:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theConsoleOutputIsEmpty() error {
	if s.stdout.Len() != 0 {
		return fmt.Errorf("expected no console output, got:\n%s", s.stdout.String())
	}
	return nil
}
