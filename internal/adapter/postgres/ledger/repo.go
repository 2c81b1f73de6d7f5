// Package ledger persists the processed-item ledger in PostgreSQL.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

const (
	itemsTable  = "processed_items"
	metaTable   = "ledger_meta"
	insertChunk = 5000
)

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// Load returns the ledger with ids in the order they were first recorded.
func (r *Repo) Load(ctx context.Context) (*domain.Ledger, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := postgres.Builder().
		Select("id").
		From(itemsTable).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ledger.Load: build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, itemsTable, "*")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err, itemsTable, "*")
	}

	query, args, err = postgres.Builder().
		Select("last_updated").
		From(metaTable).
		Where("singleton").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ledger.Load: build meta query: %w", err)
	}

	var lastUpdated time.Time
	if err := q.QueryRow(ctx, query, args...).Scan(&lastUpdated); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, postgres.MapError(err, metaTable, "singleton")
		}
	}

	if ids == nil {
		ids = []string{}
	}
	l := &domain.Ledger{ProcessedIDs: ids}
	if !lastUpdated.IsZero() {
		l.LastUpdated = lastUpdated.UTC()
	}
	return l, nil
}

// Save makes the stored ledger equal to l: ids missing from l are removed,
// new ids are appended and lastUpdated is overwritten.
func (r *Repo) Save(ctx context.Context, l *domain.Ledger) error {
	ids := l.ProcessedIDs
	if ids == nil {
		ids = []string{}
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		del, args, err := postgres.Builder().
			Delete(itemsTable).
			Where("NOT (id = ANY(?))", ids).
			ToSql()
		if err != nil {
			return fmt.Errorf("ledger.Save: build delete: %w", err)
		}
		if _, err := q.Exec(ctx, del, args...); err != nil {
			return postgres.MapError(err, itemsTable, "*")
		}

		for start := 0; start < len(ids); start += insertChunk {
			end := min(start+insertChunk, len(ids))
			ins := postgres.Builder().Insert(itemsTable).Columns("id")
			for _, id := range ids[start:end] {
				ins = ins.Values(id)
			}
			sql, args, err := ins.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
			if err != nil {
				return fmt.Errorf("ledger.Save: build insert: %w", err)
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return postgres.MapError(err, itemsTable, ids[start])
			}
		}

		lastUpdated := l.LastUpdated
		if lastUpdated.IsZero() {
			lastUpdated = time.Now()
		}
		meta, args, err := postgres.Builder().
			Insert(metaTable).
			Columns("singleton", "last_updated").
			Values(true, lastUpdated.UTC()).
			Suffix("ON CONFLICT (singleton) DO UPDATE SET last_updated = EXCLUDED.last_updated").
			ToSql()
		if err != nil {
			return fmt.Errorf("ledger.Save: build meta upsert: %w", err)
		}
		if _, err := q.Exec(ctx, meta, args...); err != nil {
			return postgres.MapError(err, metaTable, "singleton")
		}
		return nil
	})
}
