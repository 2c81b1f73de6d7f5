// Package matcher detects glossary terms inside quiz text.
package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

type glossaryLoader interface {
	Load(ctx context.Context) (domain.Glossary, error)
}

type matchRecorder interface {
	ObserveMatch(source string, matches int)
}

// Result is the outcome of one match request.
type Result struct {
	Source  domain.MatchSource `json:"source"`
	Matches []domain.Match     `json:"matches"`
}

type snapshot struct {
	entries  []domain.Entry
	loadedAt time.Time
}

// Service serves match requests against an in-memory glossary snapshot.
// The snapshot is replaced atomically by Reload, so Match is safe for
// concurrent use.
type Service struct {
	log           *slog.Logger
	store         glossaryLoader
	metrics       matchRecorder
	fallbackLimit int

	current atomic.Pointer[snapshot]
}

// NewService creates a new matcher service. metrics may be nil.
func NewService(log *slog.Logger, store glossaryLoader, metrics matchRecorder, fallbackLimit int) *Service {
	if fallbackLimit <= 0 {
		fallbackLimit = DefaultFallbackLimit
	}
	return &Service{
		log:           log.With("service", "matcher"),
		store:         store,
		metrics:       metrics,
		fallbackLimit: fallbackLimit,
	}
}

// Reload reads the glossary from the store and swaps the snapshot.
// On error the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	g, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload glossary: %w", err)
	}
	s.current.Store(&snapshot{entries: g.Entries(), loadedAt: time.Now()})
	s.log.InfoContext(ctx, "glossary snapshot loaded", slog.Int("terms", len(g)))
	return nil
}

// Run reloads the snapshot every interval until ctx is cancelled.
// Reload failures are logged and the previous snapshot is kept.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				s.log.WarnContext(ctx, "glossary reload failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Ready reports whether a glossary snapshot has been loaded.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// LoadedAt returns when the current snapshot was loaded, or the zero time.
func (s *Service) LoadedAt() time.Time {
	snap := s.current.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}

// Entries returns the normalized entries of the current snapshot.
func (s *Service) Entries() []domain.Entry {
	snap := s.current.Load()
	if snap == nil {
		return []domain.Entry{}
	}
	out := make([]domain.Entry, len(snap.entries))
	copy(out, snap.entries)
	return out
}

// Match finds glossary terms in text. When no glossary is loaded, the
// glossary is empty, or the glossary path fails, the built-in fallback table
// is used instead.
func (s *Service) Match(ctx context.Context, text, lang string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, domain.NewValidationError("text", "required")
	}

	res, err := s.matchGlossary(text, lang)
	if err != nil {
		s.log.DebugContext(ctx, "using fallback terms", slog.String("reason", err.Error()))
		res = Result{
			Source:  domain.MatchSourceFallback,
			Matches: MatchFallback(text, lang, s.fallbackLimit),
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveMatch(res.Source.String(), len(res.Matches))
	}
	return res, nil
}

func (s *Service) matchGlossary(text, lang string) (res Result, err error) {
	snap := s.current.Load()
	if snap == nil {
		return Result{}, fmt.Errorf("glossary not loaded: %w", domain.ErrNotFound)
	}
	if len(snap.entries) == 0 {
		return Result{}, fmt.Errorf("glossary empty: %w", domain.ErrNotFound)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("glossary match: %v", r)
		}
	}()

	return Result{
		Source:  domain.MatchSourceGlossary,
		Matches: matchEntries(text, snap.entries, lang, 0),
	}, nil
}
