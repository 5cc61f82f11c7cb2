// Package database defines the storage contract the repositories are
// written against. The only production implementation is the pgx pool in
// the postgres subpackage.
package database

import (
	"context"
	"database/sql"
)

// Querier is the query surface shared by a pooled handle and an open
// transaction. Exec returns the affected row count.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// DB is a pooled connection handle. SQLDB exposes the database/sql view
// for callers that need it, such as the migration runner.
type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error

	Begin(ctx context.Context) (Tx, error)

	SQLDB() *sql.DB
}

type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Row interface {
	Scan(dest ...any) error
}

// Rows is the result-set cursor. A Rows value also satisfies Row, which
// lets scan helpers serve both Query and QueryRow paths.
type Rows interface {
	Row

	Close()
	Next() bool
	Err() error
}
