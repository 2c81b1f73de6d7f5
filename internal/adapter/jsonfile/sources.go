package jsonfile

import (
	"context"

	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// Sources reads the pipeline inputs named in the pipeline config.
type Sources struct {
	cfg config.PipelineConfig
}

// NewSources creates a Sources for cfg.
func NewSources(cfg config.PipelineConfig) *Sources {
	return &Sources{cfg: cfg}
}

// Languages reads the language registry.
func (s *Sources) Languages(_ context.Context) ([]domain.Language, error) {
	return LoadLanguages(s.cfg.LanguagesPath)
}

// Questions reads the question bank.
func (s *Sources) Questions(_ context.Context) ([]domain.Question, error) {
	return LoadQuestions(s.cfg.QuestionBankPath)
}

// Documents reads the source documents.
func (s *Sources) Documents(_ context.Context) ([]domain.Document, error) {
	return LoadDocuments(s.cfg.SourceDir, s.cfg.SourceExtensions())
}
