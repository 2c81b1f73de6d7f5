// Package langchain adapts langchaingo models (OpenAI-compatible APIs and
// local Ollama) to the enrichment completion boundary.
package langchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// Provider sends single prompts to a langchaingo model.
type Provider struct {
	model   llms.Model
	name    string
	opts    []llms.CallOption
	timeout time.Duration
	log     *slog.Logger
}

// New wraps an already constructed model.
func New(model llms.Model, name string, cfg config.LLMConfig, logger *slog.Logger) *Provider {
	return &Provider{
		model: model,
		name:  name,
		opts: []llms.CallOption{
			llms.WithMaxTokens(cfg.MaxTokens),
			llms.WithTemperature(cfg.Temperature),
		},
		timeout: cfg.Timeout,
		log:     logger.With("adapter", "langchain", "provider", name),
	}
}

// NewProvider builds the model named by cfg.Provider (openai or ollama).
func NewProvider(cfg config.LLMConfig, logger *slog.Logger) (*Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("langchain: openai: %w", err)
		}
		return New(llm, config.ProviderOpenAI, cfg, logger), nil

	case config.ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		llm, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("langchain: ollama: %w", err)
		}
		return New(llm, config.ProviderOllama, cfg, logger), nil

	default:
		return nil, fmt.Errorf("langchain: unsupported provider %q", cfg.Provider)
	}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return p.name }

// Complete sends prompt and returns the first choice's text.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.log.DebugContext(ctx, "llm request", slog.Int("prompt_len", len(prompt)))

	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt, p.opts...)
	if err != nil {
		return "", fmt.Errorf("langchain.Complete: %w: %w", domain.ErrEnrichment, err)
	}
	if out == "" {
		return "", fmt.Errorf("langchain.Complete: empty response: %w", domain.ErrEnrichment)
	}
	return out, nil
}
