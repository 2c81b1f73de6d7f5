package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	CORS      CORSConfig      `yaml:"cors"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	LLM       LLMConfig       `yaml:"llm"`
}

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// LLM providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"65536"`
}

// StorageConfig selects where the glossary and ledger live.
type StorageConfig struct {
	Driver       string `yaml:"driver"        env:"STORAGE_DRIVER"        env-default:"file"`
	GlossaryPath string `yaml:"glossary_path" env:"STORAGE_GLOSSARY_PATH" env-default:"./data/glossary.json"`
	LedgerPath   string `yaml:"ledger_path"   env:"STORAGE_LEDGER_PATH"   env-default:"./data/processed.json"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used by the
// postgres storage driver.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// MatcherConfig holds runtime matcher settings.
type MatcherConfig struct {
	ReloadInterval time.Duration `yaml:"reload_interval" env:"MATCHER_RELOAD_INTERVAL" env-default:"5m"`
	FallbackLimit  int           `yaml:"fallback_limit"  env:"MATCHER_FALLBACK_LIMIT"  env-default:"100"`
}

// RateLimitConfig holds per-client HTTP rate limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATELIMIT_REQUESTS_PER_MINUTE" env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATELIMIT_CLEANUP_INTERVAL"    env-default:"1m"`
}

// PipelineConfig holds extraction pipeline settings.
type PipelineConfig struct {
	SourceDir          string        `yaml:"source_dir"           env:"PIPELINE_SOURCE_DIR"           env-default:"./data/sources"`
	QuestionBankPath   string        `yaml:"question_bank_path"   env:"PIPELINE_QUESTION_BANK_PATH"   env-default:"./data/questions.json"`
	LanguagesPath      string        `yaml:"languages_path"       env:"PIPELINE_LANGUAGES_PATH"       env-default:"./data/languages.json"`
	ChunkStrategy      string        `yaml:"chunk_strategy"       env:"PIPELINE_CHUNK_STRATEGY"       env-default:"fixed"`
	ChunkSize          int           `yaml:"chunk_size"           env:"PIPELINE_CHUNK_SIZE"           env-default:"4000"`
	CandidateBatchSize int           `yaml:"candidate_batch_size" env:"PIPELINE_CANDIDATE_BATCH_SIZE" env-default:"40"`
	QuestionBatchSize  int           `yaml:"question_batch_size"  env:"PIPELINE_QUESTION_BATCH_SIZE"  env-default:"10"`
	RequestInterval    time.Duration `yaml:"request_interval"     env:"PIPELINE_REQUEST_INTERVAL"     env-default:"5s"`
	Extensions         string        `yaml:"extensions"           env:"PIPELINE_EXTENSIONS"           env-default:".txt,.md"`
	DryRun             bool          `yaml:"dry_run"              env:"PIPELINE_DRY_RUN"`
}

// SourceExtensions returns the lowercased document extensions to read.
func (c PipelineConfig) SourceExtensions() []string {
	var exts []string
	for _, e := range strings.Split(c.Extensions, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

// LLMConfig holds enrichment service settings.
type LLMConfig struct {
	Provider    string        `yaml:"provider"    env:"LLM_PROVIDER"    env-default:"anthropic"`
	APIKey      string        `yaml:"api_key"     env:"LLM_API_KEY"`
	Model       string        `yaml:"model"       env:"LLM_MODEL"       env-default:"claude-sonnet-4-5"`
	BaseURL     string        `yaml:"base_url"    env:"LLM_BASE_URL"`
	MaxTokens   int           `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"4096"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.2"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"120s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
