package recon

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dgrhcli/pkg/contracts/domain"
)

// Pipeline step identifiers, emitted through the progress callback in
// execution order.
const (
	StepLoadAlarms    = "load_alarms"
	StepLoadReference = "load_reference"
	StepWindowFilter  = "window_filter"
	StepClassify      = "classify"
	StepAggregate     = "aggregate"
	StepMetrics       = "metrics"
	StepKPIs          = "kpis"
)

// ProgressFunc receives each step name as it completes, with the number
// of rows flowing out of the step.
type ProgressFunc func(step string, rows int)

// Result is the complete output of one reconciliation run. Raw holds the
// windowed, classified alarm rows backing the summary.
type Result struct {
	RunID      string                          `json:"run_id"`
	StartedAt  time.Time                       `json:"started_at"`
	Duration   time.Duration                   `json:"duration"`
	InputFiles []string                        `json:"input_files"`
	Raw        []domain.ClassifiedAlarm        `json:"raw"`
	Summary    []domain.SiteSummary            `json:"summary"`
	KPIs       domain.KPIReport                `json:"kpis"`
	Subsets    map[string][]domain.SiteSummary `json:"-"`
}

// Pipeline runs the reconciliation stages in sequence over already-parsed
// tables. Any step error aborts the run with no partial output.
type Pipeline struct {
	logger     *slog.Logger
	detector   DurationDetector
	classifier *Classifier
	progress   ProgressFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDetector overrides the duration-column detection strategy.
func WithDetector(d DurationDetector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithProgress registers a per-step progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// NewPipeline builds a pipeline with the heuristic detector and default
// classifier rules.
func NewPipeline(logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:     logger,
		detector:   NewHeuristicDetector(),
		classifier: NewClassifier(),
		progress:   func(string, int) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full reconciliation over the uploaded alarm files and
// reference table. The context is checked between steps so a cancelled
// request stops the run early.
func (p *Pipeline) Run(ctx context.Context, alarmFiles []AlarmFile, reference *Table) (*Result, error) {
	res := &Result{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	for _, f := range alarmFiles {
		res.InputFiles = append(res.InputFiles, f.Name)
	}
	log := p.logger.With(slog.String("run_id", res.RunID))
	log.InfoContext(ctx, "reconciliation run started",
		slog.Int("alarm_files", len(alarmFiles)))

	alarms, err := LoadAlarms(alarmFiles, p.detector)
	if err != nil {
		return nil, err
	}
	p.step(ctx, log, StepLoadAlarms, len(alarms))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	refs, err := LoadReference(reference)
	if err != nil {
		return nil, err
	}
	p.step(ctx, log, StepLoadReference, len(refs))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	windowed := FilterWindow(alarms, ReferenceIndex(refs))
	p.step(ctx, log, StepWindowFilter, len(windowed))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Raw = p.classifier.Classify(windowed)
	p.step(ctx, log, StepClassify, len(res.Raw))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aggs := Aggregate(res.Raw)
	p.step(ctx, log, StepAggregate, len(aggs))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Summary = BuildSummary(refs, aggs, res.Raw)
	p.step(ctx, log, StepMetrics, len(res.Summary))

	res.KPIs, res.Subsets = BuildKPIs(res.Summary)
	p.step(ctx, log, StepKPIs, res.KPIs.TotalSites)

	res.Duration = time.Since(res.StartedAt)
	log.InfoContext(ctx, "reconciliation run finished",
		slog.Int("sites", res.KPIs.TotalSites),
		slog.Duration("duration", res.Duration))
	return res, nil
}

func (p *Pipeline) step(ctx context.Context, log *slog.Logger, name string, rows int) {
	log.DebugContext(ctx, "pipeline step complete",
		slog.String("step", name), slog.Int("rows", rows))
	p.progress(name, rows)
}
