// Package glossary persists the glossary in PostgreSQL. The whole list is
// replaced on every save so the stored order always matches the in-memory one.
package glossary

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

const table = "glossary_terms"

// insertChunk keeps a single INSERT well under the 65535 parameter limit.
const insertChunk = 1000

// Repo provides glossary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new glossary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// Load returns every stored term ordered by position. An empty table
// yields an empty glossary.
func (r *Repo) Load(ctx context.Context) (domain.Glossary, error) {
	query, args, err := postgres.Builder().
		Select("word", "definition", "translations", "legacy").
		From(table).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("glossary.Load: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, table, "*")
	}
	defer rows.Close()

	g := domain.Glossary{}
	for rows.Next() {
		var (
			word         string
			definition   *string
			translations map[string]string
			legacy       bool
		)
		if err := rows.Scan(&word, &definition, &translations, &legacy); err != nil {
			return nil, fmt.Errorf("glossary.Load: scan: %w", err)
		}
		g = append(g, toTerm(word, definition, translations, legacy))
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, table, "*")
	}
	return g, nil
}

// Save replaces the stored glossary with g in one transaction. Terms with a
// blank word are not stored.
func (r *Repo) Save(ctx context.Context, g domain.Glossary) error {
	g = storable(g)
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		del, args, err := postgres.Builder().Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("glossary.Save: build delete: %w", err)
		}
		if _, err := q.Exec(ctx, del, args...); err != nil {
			return postgres.MapError(err, table, "*")
		}

		for start := 0; start < len(g); start += insertChunk {
			end := min(start+insertChunk, len(g))
			ins := insertBuilder(g[start:end], start)

			sql, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("glossary.Save: build insert: %w", err)
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return postgres.MapError(err, table, g[start].Headword())
			}
		}
		return nil
	})
}

// storable returns the terms of g that have a non-blank word, in order.
func storable(g domain.Glossary) domain.Glossary {
	out := make(domain.Glossary, 0, len(g))
	for _, t := range g {
		if domain.TermKey(t) != "" {
			out = append(out, t)
		}
	}
	return out
}

func insertBuilder(terms domain.Glossary, offset int) squirrel.InsertBuilder {
	ins := postgres.Builder().
		Insert(table).
		Columns("position", "word", "word_key", "definition", "translations", "legacy")

	for i, t := range terms {
		switch v := t.(type) {
		case domain.Entry:
			translations := v.Translations
			if translations == nil {
				translations = map[string]string{}
			}
			ins = ins.Values(offset+i, v.Word, domain.TermKey(v), v.Definition, translations, false)
		case domain.LegacyWord:
			ins = ins.Values(offset+i, string(v), domain.TermKey(v), nil, map[string]string{}, true)
		}
	}
	return ins
}

func toTerm(word string, definition *string, translations map[string]string, legacy bool) domain.Term {
	if legacy {
		return domain.LegacyWord(word)
	}
	e := domain.Entry{Word: word, Translations: translations}
	if definition != nil {
		e.Definition = *definition
	}
	if len(e.Translations) == 0 {
		e.Translations = nil
	}
	return e
}
