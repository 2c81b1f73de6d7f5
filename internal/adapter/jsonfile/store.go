package jsonfile

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// GlossaryStore keeps the glossary in one JSON array file that is rewritten
// wholesale on every save.
type GlossaryStore struct {
	mu   sync.Mutex
	path string
}

// NewGlossaryStore creates a store for the file at path.
func NewGlossaryStore(path string) *GlossaryStore {
	return &GlossaryStore{path: path}
}

// Load reads the glossary. A missing file is an empty glossary.
func (s *GlossaryStore) Load(_ context.Context) (domain.Glossary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var g domain.Glossary
	if _, err := readJSON(s.path, &g); err != nil {
		return nil, fmt.Errorf("jsonfile.GlossaryStore.Load: %w", err)
	}
	if g == nil {
		g = domain.Glossary{}
	}
	return g, nil
}

// Save replaces the glossary file with g.
func (s *GlossaryStore) Save(_ context.Context, g domain.Glossary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g == nil {
		g = domain.Glossary{}
	}
	if err := writeJSON(s.path, g); err != nil {
		return fmt.Errorf("jsonfile.GlossaryStore.Save: %w", err)
	}
	return nil
}

// LedgerStore keeps the processed ledger in one JSON object file.
type LedgerStore struct {
	mu   sync.Mutex
	path string
}

// NewLedgerStore creates a store for the file at path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load reads the ledger. A missing file is an empty ledger.
func (s *LedgerStore) Load(_ context.Context) (*domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := &domain.Ledger{}
	if _, err := readJSON(s.path, l); err != nil {
		return nil, fmt.Errorf("jsonfile.LedgerStore.Load: %w", err)
	}
	if l.ProcessedIDs == nil {
		l.ProcessedIDs = []string{}
	}
	return l, nil
}

// Save replaces the ledger file with l.
func (s *LedgerStore) Save(_ context.Context, l *domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := *l
	if out.ProcessedIDs == nil {
		out.ProcessedIDs = []string{}
	}
	if err := writeJSON(s.path, &out); err != nil {
		return fmt.Errorf("jsonfile.LedgerStore.Save: %w", err)
	}
	return nil
}
