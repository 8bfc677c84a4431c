// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline runs load → aggregate → render → publish for one report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bartekus/cukesum/internal/config"
	"github.com/bartekus/cukesum/internal/console"
	"github.com/bartekus/cukesum/internal/projection"
	"github.com/bartekus/cukesum/internal/report"
	"github.com/bartekus/cukesum/internal/sink"
	"github.com/bartekus/cukesum/internal/summary"
)

// Kind classifies how a run ended.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindParse
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not-found"
	case KindParse:
		return "parse"
	case KindUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of Run: the published summary on success, or the failure kind
// and its error. Nothing is published when Kind is not KindOK, except that a failure
// inside the sink itself may leave a partially written file.
type Result struct {
	Kind      Kind
	Err       error
	Summary   string
	Aggregate *summary.Aggregate
}

// OK reports whether the run succeeded.
func (r Result) OK() bool { return r.Kind == KindOK }

// Pipeline summarizes the report named by its config.
type Pipeline struct {
	cfg     *config.Config
	console *console.Console
	logger  *slog.Logger
}

// New builds a Pipeline. A nil logger discards logs.
func New(cfg *config.Config, con *console.Console, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{cfg: cfg, console: con, logger: logger}
}

// Run executes the pipeline. It never panics; a panic in any stage becomes a
// KindUnexpected result.
func (p *Pipeline) Run(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Kind: KindUnexpected, Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	p.logger.DebugContext(ctx, "loading report", "path", p.cfg.ReportPath)
	rep, err := report.Load(p.cfg.ReportPath)
	if err != nil {
		return Result{Kind: classify(err), Err: err}
	}

	opts := summary.Options{
		Title:      p.cfg.Title,
		StripANSI:  p.cfg.StripANSI,
		PerFeature: p.cfg.PerFeature,
	}
	agg := summary.Compute(rep, opts)
	p.logger.DebugContext(ctx, "aggregated report",
		"features", len(rep),
		"scenarios_passed", agg.ScenariosPassed,
		"scenarios_failed", agg.ScenariosFailed,
		"steps_passed", agg.StepsPassed,
		"steps_failed", agg.StepsFailed,
		"steps_skipped", agg.StepsSkipped,
		"duration_nanos", agg.TotalDurationNanos,
	)

	text := p.render(agg, opts)

	if p.cfg.JSONOut != "" {
		if err := summary.WriteJSON(p.cfg.JSONOut, agg); err != nil {
			return Result{Kind: KindUnexpected, Err: err, Aggregate: agg}
		}
		p.logger.DebugContext(ctx, "wrote aggregate", "path", p.cfg.JSONOut)
	}

	target := sink.Target{Path: p.cfg.SinkPath()}
	p.logger.DebugContext(ctx, "publishing summary", "sink", sinkName(target), "format", p.cfg.Format)
	if err := sink.Publish(text, target, p.console); err != nil {
		return Result{Kind: KindUnexpected, Err: err, Aggregate: agg}
	}

	return Result{Kind: KindOK, Summary: text, Aggregate: agg}
}

// render picks the configured format. A table bound for a markdown file sink
// is fenced so its box-drawing columns survive the step-summary renderer.
func (p *Pipeline) render(agg *summary.Aggregate, opts summary.Options) string {
	if p.cfg.Format != config.FormatTable {
		return summary.RenderMarkdown(agg, opts)
	}
	text := summary.RenderTable(agg, opts)
	if p.cfg.SinkPath() == "" {
		return text
	}
	return projection.RenderCodeBlock(strings.TrimRight(text, "\n"))
}

func classify(err error) Kind {
	var nf *report.NotFoundError
	var pe *report.ParseError
	switch {
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &pe):
		return KindParse
	default:
		return KindUnexpected
	}
}

func sinkName(t sink.Target) string {
	if t.Path == "" {
		return "stdout"
	}
	return t.Path
}
