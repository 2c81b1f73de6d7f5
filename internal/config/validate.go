package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Storage.Driver == DriverPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required for the postgres storage driver")
	}
	if c.Matcher.FallbackLimit <= 0 {
		return fmt.Errorf("matcher.fallback_limit must be > 0 (got %d)", c.Matcher.FallbackLimit)
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("ratelimit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case DriverFile:
		if s.GlossaryPath == "" || s.LedgerPath == "" {
			return fmt.Errorf("glossary_path and ledger_path are required for the file driver")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", s.Driver, DriverFile, DriverPostgres)
	}
	return nil
}

func (p *PipelineConfig) validate() error {
	switch p.ChunkStrategy {
	case "fixed", "recursive":
	default:
		return fmt.Errorf("unknown chunk_strategy %q", p.ChunkStrategy)
	}
	if p.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0 (got %d)", p.ChunkSize)
	}
	if p.CandidateBatchSize <= 0 {
		return fmt.Errorf("candidate_batch_size must be > 0 (got %d)", p.CandidateBatchSize)
	}
	if p.QuestionBatchSize <= 0 {
		return fmt.Errorf("question_batch_size must be > 0 (got %d)", p.QuestionBatchSize)
	}
	if p.RequestInterval < 0 {
		return fmt.Errorf("request_interval must be >= 0 (got %s)", p.RequestInterval)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if l.Model == "" {
		return fmt.Errorf("model is required")
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2] (got %v)", l.Temperature)
	}
	return nil
}

// RequireAPIKey reports an error when the provider needs a key and none is set.
// Ollama runs locally and needs none.
func (l LLMConfig) RequireAPIKey() error {
	if l.Provider != ProviderOllama && strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required for provider %s", l.Provider)
	}
	return nil
}
