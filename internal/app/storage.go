package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/citizenship-glossary/internal/adapter/jsonfile"
	"github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres"
	glossaryrepo "github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres/glossary"
	ledgerrepo "github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// GlossaryStore persists the glossary wholesale.
type GlossaryStore interface {
	Load(ctx context.Context) (domain.Glossary, error)
	Save(ctx context.Context, g domain.Glossary) error
}

// LedgerStore persists the processed-items ledger.
type LedgerStore interface {
	Load(ctx context.Context) (*domain.Ledger, error)
	Save(ctx context.Context, l *domain.Ledger) error
}

// Storage bundles the stores selected by the configured driver.
// Pool is nil for the file driver.
type Storage struct {
	Glossary GlossaryStore
	Ledger   LedgerStore
	Pool     *pgxpool.Pool
}

// OpenStorage builds the glossary and ledger stores for cfg.Storage.Driver.
// The caller must Close the returned Storage.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		logger.Info("using file storage",
			slog.String("glossary", cfg.Storage.GlossaryPath),
			slog.String("ledger", cfg.Storage.LedgerPath),
		)
		return &Storage{
			Glossary: jsonfile.NewGlossaryStore(cfg.Storage.GlossaryPath),
			Ledger:   jsonfile.NewLedgerStore(cfg.Storage.LedgerPath),
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app.OpenStorage: %w", err)
		}
		logger.Info("using postgres storage")
		return &Storage{
			Glossary: glossaryrepo.New(pool),
			Ledger:   ledgerrepo.New(pool),
			Pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("app.OpenStorage: unknown driver %q", cfg.Storage.Driver)
	}
}

// Close releases the database pool, if any.
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
