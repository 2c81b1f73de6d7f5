package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/citizenship-glossary/internal/adapter/provider/claude"
	"github.com/heartmarshall/citizenship-glossary/internal/adapter/provider/langchain"
	"github.com/heartmarshall/citizenship-glossary/internal/config"
)

// Completer sends one prompt to the enrichment service and returns its reply.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter builds the enrichment client for cfg.Provider. Anthropic goes
// through the native SDK; other providers go through langchaingo.
func NewCompleter(cfg config.LLMConfig, logger *slog.Logger) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return claude.NewProvider(cfg, logger), nil
	case config.ProviderOpenAI, config.ProviderOllama:
		p, err := langchain.NewProvider(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("app.NewCompleter: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("app.NewCompleter: unknown provider %q", cfg.Provider)
	}
}
