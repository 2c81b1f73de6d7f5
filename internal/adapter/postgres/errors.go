package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// MapError converts pgx errors into domain errors, prefixed with the table
// and key involved. Context errors pass through unmapped.
func MapError(err error, table, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", table, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", table, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23514": // unique_violation, check_violation
			return fmt.Errorf("%s %s: %w: %s", table, key, domain.ErrValidation, pgErr.Message)
		}
	}

	return fmt.Errorf("%s %s: %w", table, key, err)
}
