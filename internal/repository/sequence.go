package repository

import (
	"context"
	"database/sql"
)

// nextSequence returns the next value of a named counter within a period
// (calendar year, financial year). The upsert-and-return is a single
// statement, so concurrent callers can never be handed the same number —
// counting existing rows would race.
func nextSequence(ctx context.Context, q queryRower, scope, period string) (int64, error) {
	var value int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO sequence_counters (scope, period, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (scope, period) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value
	`, scope, period).Scan(&value)
	return value, err
}

// queryRower is satisfied by both *sql.DB and *sql.Tx so sequence allocation
// can join an enclosing transaction.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
