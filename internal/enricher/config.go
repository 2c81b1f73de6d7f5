package enricher

import (
	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/textchunk"
)

// Config holds the settings of one pipeline run.
type Config struct {
	ChunkStrategy      textchunk.Strategy
	ChunkSize          int
	CandidateBatchSize int
	QuestionBatchSize  int
	DryRun             bool
	ResetLedger        bool
}

// ConfigFrom builds a run config from the pipeline section of the app config.
func ConfigFrom(cfg config.PipelineConfig) Config {
	return Config{
		ChunkStrategy:      textchunk.Strategy(cfg.ChunkStrategy),
		ChunkSize:          cfg.ChunkSize,
		CandidateBatchSize: cfg.CandidateBatchSize,
		QuestionBatchSize:  cfg.QuestionBatchSize,
		DryRun:             cfg.DryRun,
	}
}
