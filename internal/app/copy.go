package app

import (
	"context"
	"fmt"
	"log/slog"
)

// CopyStats reports what CopyStorage transferred.
type CopyStats struct {
	Terms       int
	LedgerItems int
}

// CopyStorage replaces the glossary and ledger of dst with those of src.
// It is used to move an existing file-backed glossary into PostgreSQL.
// With dryRun set, src is read and nothing is written.
func CopyStorage(ctx context.Context, logger *slog.Logger, src, dst *Storage, dryRun bool) (CopyStats, error) {
	g, err := src.Glossary.Load(ctx)
	if err != nil {
		return CopyStats{}, fmt.Errorf("app.CopyStorage: load glossary: %w", err)
	}
	l, err := src.Ledger.Load(ctx)
	if err != nil {
		return CopyStats{}, fmt.Errorf("app.CopyStorage: load ledger: %w", err)
	}

	stats := CopyStats{Terms: len(g), LedgerItems: l.Len()}
	if dryRun {
		logger.Info("dry run, nothing written",
			slog.Int("terms", stats.Terms),
			slog.Int("ledger_items", stats.LedgerItems),
		)
		return stats, nil
	}

	if err := dst.Glossary.Save(ctx, g); err != nil {
		return stats, fmt.Errorf("app.CopyStorage: save glossary: %w", err)
	}
	if err := dst.Ledger.Save(ctx, l); err != nil {
		return stats, fmt.Errorf("app.CopyStorage: save ledger: %w", err)
	}

	logger.Info("storage copied",
		slog.Int("terms", stats.Terms),
		slog.Int("ledger_items", stats.LedgerItems),
	)
	return stats, nil
}
