package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
	"github.com/heartmarshall/citizenship-glossary/internal/extract"
	"github.com/heartmarshall/citizenship-glossary/internal/textchunk"
)

// chunkID is the ledger id of the n-th chunk of the document at path.
func chunkID(path string, n int) string {
	return fmt.Sprintf("doc:%s#%d", path, n)
}

// RunDocuments chunks every source document, extracts candidate terms from
// each unprocessed chunk and enriches them in batches.
//
// A word is sent at most once per run: candidates are filtered against the
// glossary plus every word already submitted. A chunk is recorded in the
// ledger once all of its batches completed; chunks without candidates are
// recorded without a call.
func (p *Pipeline) RunDocuments(ctx context.Context) (Result, error) {
	r, err := p.start(ctx, domain.PipelineModeDocuments)
	if err != nil {
		return Result{Mode: domain.PipelineModeDocuments}, err
	}

	docs, err := p.deps.Sources.Documents(ctx)
	if err != nil {
		return r.result, fmt.Errorf("load documents: %w", err)
	}

	words, err := p.deps.Glossary.Words(ctx)
	if err != nil {
		return r.result, fmt.Errorf("load glossary words: %w", err)
	}
	known := maps.Clone(words)
	if known == nil {
		known = make(map[string]bool)
	}

	split, err := textchunk.NewSplitter(p.cfg.ChunkStrategy, p.cfg.ChunkSize)
	if err != nil {
		return r.result, err
	}
	batchSize := max(p.cfg.CandidateBatchSize, 1)

	r.log.Info("documents loaded", slog.Int("documents", len(docs)), slog.Int("known_words", len(known)))

	for _, doc := range docs {
		chunks, err := split(doc.Text)
		if err != nil {
			return p.finish(r), fmt.Errorf("split %s: %w", doc.Path, err)
		}

		n := 0
		for chunk := range chunks {
			id := chunkID(doc.Path, n)
			n++

			if r.ledger.Has(id) {
				r.result.ItemsSkipped++
				continue
			}
			if err := ctx.Err(); err != nil {
				return p.finish(r), err
			}

			candidates := extract.Candidates(chunk, known)
			for _, c := range candidates {
				known[strings.ToLower(c)] = true
			}

			done := true
			for batch := range slices.Chunk(candidates, batchSize) {
				log := r.log.With(slog.String("item", id), slog.Int("candidates", len(batch)))
				outcome, err := p.enrich(ctx, r, buildCandidatePrompt(batch, r.langs), log)
				if err != nil {
					return p.finish(r), err
				}
				done = done && completed(outcome)
			}

			if !done {
				continue
			}
			if err := p.record(ctx, r, id); err != nil {
				return p.finish(r), err
			}
		}
	}

	return p.finish(r), nil
}
