// Package glossary owns the canonical glossary: loading it, merging enriched
// terms into it, and writing it back wholesale.
package glossary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

type glossaryStore interface {
	Load(ctx context.Context) (domain.Glossary, error)
	Save(ctx context.Context, g domain.Glossary) error
}

// Service merges enrichment output into the persisted glossary.
type Service struct {
	log   *slog.Logger
	store glossaryStore
}

// NewService creates a new glossary service.
func NewService(log *slog.Logger, store glossaryStore) *Service {
	return &Service{
		log:   log.With("service", "glossary"),
		store: store,
	}
}

// Load returns the persisted glossary.
func (s *Service) Load(ctx context.Context) (domain.Glossary, error) {
	g, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}
	return g, nil
}

// Words returns the lowercase headwords currently in the glossary.
func (s *Service) Words(ctx context.Context) (map[string]bool, error) {
	g, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return g.Words(), nil
}

// Apply merges terms into the stored glossary and saves the result when
// anything changed.
func (s *Service) Apply(ctx context.Context, terms []domain.RawTerm) (MergeStats, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return MergeStats{}, err
	}

	merged, stats := Merge(current, terms)
	if stats.Added() > 0 {
		if err := s.store.Save(ctx, merged); err != nil {
			return stats, fmt.Errorf("save glossary: %w", err)
		}
	}

	s.log.InfoContext(ctx, "glossary merged",
		slog.Int("appended", stats.Appended),
		slog.Int("upgraded", stats.Upgraded),
		slog.Int("discarded", stats.Discarded),
		slog.Int("dropped", stats.Dropped),
		slog.Int("size", len(merged)),
	)
	return stats, nil
}
