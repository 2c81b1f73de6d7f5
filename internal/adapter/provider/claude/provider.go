// Package claude adapts the Anthropic Messages API to the enrichment
// completion boundary.
package claude

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// Provider sends prompts to Claude and returns the text of the reply.
type Provider struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	log         *slog.Logger
}

// NewProvider creates a Provider from the llm config section. The SDK's
// automatic retries are disabled: a failed batch is skipped, not retried.
func NewProvider(cfg config.LLMConfig, logger *slog.Logger) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Provider{
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         logger.With("adapter", "claude"),
	}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return config.ProviderAnthropic }

// Complete sends prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.log.DebugContext(ctx, "claude request", slog.String("model", p.model), slog.Int("prompt_len", len(prompt)))

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(p.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude.Complete: %w: %w", domain.ErrEnrichment, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("claude.Complete: empty response: %w", domain.ErrEnrichment)
	}

	p.log.DebugContext(ctx, "claude response",
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return b.String(), nil
}
