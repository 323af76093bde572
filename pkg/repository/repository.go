// Package repository holds the row-scanning helpers shared by the report
// and snapshot stores. Both domains are append-only or read-only, so the
// surface is deliberately small: single-row and multi-row queries plus
// Postgres error translation. Inserts use RETURNING and go through QueryOne;
// nothing here needs an explicit transaction.
package repository

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the helpers need.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc maps one scanned row to a domain value. Each domain package
// defines one per entity.
type ScanFunc[T any] func(Scanner) (T, error)

// QueryOne runs a query that must yield exactly one row. sql.ErrNoRows
// passes through untranslated for MapError to handle.
func QueryOne[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(q.QueryRowContext(ctx, query, args...))
}

// QueryMany runs a query and scans every row. No matches yields an empty,
// non-nil slice so responses encode as [] rather than null.
func QueryMany[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
