// Package enricher runs the offline extraction pipeline: it turns source
// documents or quiz questions into glossary entries by way of an external
// text-completion service.
//
// Batches run strictly one after another. The glossary and the ledger are
// persisted after every batch, so an interrupted run keeps everything up to
// the last finished batch.
package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
	"github.com/heartmarshall/citizenship-glossary/internal/service/glossary"
)

type completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type glossaryService interface {
	Words(ctx context.Context) (map[string]bool, error)
	Apply(ctx context.Context, terms []domain.RawTerm) (glossary.MergeStats, error)
}

type ledgerStore interface {
	Load(ctx context.Context) (*domain.Ledger, error)
	Save(ctx context.Context, l *domain.Ledger) error
}

type sourceLoader interface {
	Languages(ctx context.Context) ([]domain.Language, error)
	Questions(ctx context.Context) ([]domain.Question, error)
	Documents(ctx context.Context) ([]domain.Document, error)
}

type pacer interface {
	Wait(ctx context.Context) error
}

type recorder interface {
	ObserveBatch(mode, outcome string)
	AddTerms(mode string, n int)
	AddDropped(n int)
	ObserveEnrichment(provider string, d time.Duration)
}

// Deps are the collaborators of a Pipeline. Metrics may be nil.
type Deps struct {
	LLM      completer
	Glossary glossaryService
	Ledger   ledgerStore
	Sources  sourceLoader
	Pacer    pacer
	Metrics  recorder
}

// Result holds the statistics of one run.
type Result struct {
	Mode           domain.PipelineMode
	Batches        int
	FailedBatches  int // enrichment call failed or reply was malformed
	TermsParsed    int
	TermsAdded     int
	DroppedRecords int
	ItemsProcessed int // chunks or questions newly recorded in the ledger
	ItemsSkipped   int // chunks or questions already in the ledger
}

// Pipeline orchestrates extraction, enrichment, merging and persistence.
type Pipeline struct {
	log     *slog.Logger
	deps    Deps
	cfg     Config
	metrics recorder
	now     func() time.Time
}

// NewPipeline creates a new extraction pipeline.
func NewPipeline(log *slog.Logger, deps Deps, cfg Config) *Pipeline {
	m := deps.Metrics
	if m == nil {
		m = nopRecorder{}
	}
	return &Pipeline{
		log:     log.With("service", "enricher"),
		deps:    deps,
		cfg:     cfg,
		metrics: m,
		now:     time.Now,
	}
}

// Run dispatches to the run method for mode.
func (p *Pipeline) Run(ctx context.Context, mode domain.PipelineMode) (Result, error) {
	switch mode {
	case domain.PipelineModeDocuments:
		return p.RunDocuments(ctx)
	case domain.PipelineModeQuestions:
		return p.RunQuestions(ctx)
	default:
		return Result{}, domain.NewValidationError("mode", fmt.Sprintf("unknown pipeline mode %q", mode))
	}
}

// run holds the state shared by the batches of one invocation.
type run struct {
	log    *slog.Logger
	mode   domain.PipelineMode
	langs  []string
	ledger *domain.Ledger
	result Result
}

func (p *Pipeline) start(ctx context.Context, mode domain.PipelineMode) (*run, error) {
	r := &run{
		log:    p.log.With(slog.String("run_id", uuid.NewString()), slog.String("mode", mode.String())),
		mode:   mode,
		result: Result{Mode: mode},
	}

	langs, err := p.deps.Sources.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load languages: %w", err)
	}
	r.langs = domain.LanguageCodes(langs)

	ledger, err := p.deps.Ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	r.ledger = ledger

	if p.cfg.ResetLedger {
		r.log.Warn("resetting ledger", slog.Int("forgotten", ledger.Len()))
		ledger.Reset(p.now())
		if !p.cfg.DryRun {
			if err := p.deps.Ledger.Save(ctx, ledger); err != nil {
				return nil, fmt.Errorf("save ledger: %w", err)
			}
		}
	}

	r.log.Info("pipeline started",
		slog.Int("languages", len(r.langs)),
		slog.Int("ledger_size", ledger.Len()),
		slog.Bool("dry_run", p.cfg.DryRun),
	)
	return r, nil
}

func (p *Pipeline) finish(r *run) Result {
	res := r.result
	r.log.Info("pipeline complete",
		slog.Int("batches", res.Batches),
		slog.Int("failed_batches", res.FailedBatches),
		slog.Int("terms_parsed", res.TermsParsed),
		slog.Int("terms_added", res.TermsAdded),
		slog.Int("dropped_records", res.DroppedRecords),
		slog.Int("items_processed", res.ItemsProcessed),
		slog.Int("items_skipped", res.ItemsSkipped),
	)
	return res
}

// enrich sends one prompt, parses the reply and merges the terms into the
// glossary. Only cancellation and persistence failures are returned as
// errors; a failed call or malformed reply is reported through the outcome.
func (p *Pipeline) enrich(ctx context.Context, r *run, prompt string, log *slog.Logger) (domain.BatchOutcome, error) {
	r.result.Batches++
	outcome, err := p.enrichBatch(ctx, r, prompt, log)
	if err != nil {
		return outcome, err
	}

	switch outcome {
	case domain.BatchOutcomeFailed, domain.BatchOutcomeMalformed:
		r.result.FailedBatches++
	}
	p.metrics.ObserveBatch(r.mode.String(), outcome.String())
	return outcome, nil
}

func (p *Pipeline) enrichBatch(ctx context.Context, r *run, prompt string, log *slog.Logger) (domain.BatchOutcome, error) {
	if p.cfg.DryRun {
		log.Info("dry run, prompt not sent", slog.String("prompt", prompt))
		return domain.BatchOutcomeDryRun, nil
	}

	if err := p.deps.Pacer.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limit: %w", err)
	}

	started := p.now()
	reply, err := p.deps.LLM.Complete(ctx, prompt)
	p.metrics.ObserveEnrichment(p.deps.LLM.Name(), p.now().Sub(started))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Warn("enrichment call failed, skipping batch", slog.String("error", err.Error()))
		return domain.BatchOutcomeFailed, nil
	}

	parsed, err := Parse(reply)
	if err != nil {
		log.Warn("malformed enrichment reply, skipping batch", slog.String("error", err.Error()))
		return domain.BatchOutcomeMalformed, nil
	}
	if parsed.Lenient {
		log.Debug("reply recovered by lenient parse")
	}

	stats, err := p.deps.Glossary.Apply(ctx, parsed.Terms)
	if err != nil {
		return "", fmt.Errorf("apply terms: %w", err)
	}

	dropped := parsed.Skipped + stats.Dropped
	r.result.TermsParsed += len(parsed.Terms)
	r.result.TermsAdded += stats.Added()
	r.result.DroppedRecords += dropped
	p.metrics.AddTerms(r.mode.String(), stats.Added())
	p.metrics.AddDropped(dropped)

	log.Info("batch merged",
		slog.Int("parsed", len(parsed.Terms)),
		slog.Int("added", stats.Added()),
		slog.Int("dropped", dropped),
	)

	if len(parsed.Terms) == 0 {
		return domain.BatchOutcomeEmpty, nil
	}
	return domain.BatchOutcomeOK, nil
}

// record marks ids as processed and persists the ledger.
func (p *Pipeline) record(ctx context.Context, r *run, ids ...string) error {
	r.result.ItemsProcessed += r.ledger.Add(p.now(), ids...)
	if p.cfg.DryRun {
		return nil
	}
	if err := p.deps.Ledger.Save(ctx, r.ledger); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// completed reports whether a batch outcome lets its items be recorded.
func completed(o domain.BatchOutcome) bool {
	switch o {
	case domain.BatchOutcomeOK, domain.BatchOutcomeEmpty, domain.BatchOutcomeDryRun:
		return true
	}
	return false
}

type nopRecorder struct{}

func (nopRecorder) ObserveBatch(string, string)             {}
func (nopRecorder) AddTerms(string, int)                    {}
func (nopRecorder) AddDropped(int)                          {}
func (nopRecorder) ObserveEnrichment(string, time.Duration) {}
