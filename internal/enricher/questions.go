package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// RunQuestions sends unprocessed quiz questions in batches and records each
// batch's ids in the ledger once the batch completed.
func (p *Pipeline) RunQuestions(ctx context.Context) (Result, error) {
	r, err := p.start(ctx, domain.PipelineModeQuestions)
	if err != nil {
		return Result{Mode: domain.PipelineModeQuestions}, err
	}

	questions, err := p.deps.Sources.Questions(ctx)
	if err != nil {
		return r.result, fmt.Errorf("load questions: %w", err)
	}

	pending := make([]domain.Question, 0, len(questions))
	queued := make(map[string]struct{}, len(questions))
	duplicates := 0
	for _, q := range questions {
		id := q.Key()
		if r.ledger.Has(id) {
			r.result.ItemsSkipped++
			continue
		}
		if _, dup := queued[id]; dup {
			duplicates++
			continue
		}
		queued[id] = struct{}{}
		q.ID = domain.ItemID(id)
		pending = append(pending, q)
	}
	r.result.ItemsSkipped += duplicates
	if duplicates > 0 {
		r.log.Warn("duplicate question ids skipped", slog.Int("duplicates", duplicates))
	}

	r.log.Info("questions loaded", slog.Int("total", len(questions)), slog.Int("pending", len(pending)))

	for batch := range slices.Chunk(pending, max(p.cfg.QuestionBatchSize, 1)) {
		if err := ctx.Err(); err != nil {
			return p.finish(r), err
		}

		ids := make([]string, len(batch))
		for i, q := range batch {
			ids[i] = string(q.ID)
		}

		log := r.log.With(slog.String("first_item", ids[0]), slog.Int("questions", len(batch)))
		outcome, err := p.enrich(ctx, r, buildQuestionPrompt(batch, r.langs), log)
		if err != nil {
			return p.finish(r), err
		}
		if !completed(outcome) {
			continue
		}
		if err := p.record(ctx, r, ids...); err != nil {
			return p.finish(r), err
		}
	}

	return p.finish(r), nil
}
