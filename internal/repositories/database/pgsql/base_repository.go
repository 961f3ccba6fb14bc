package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the querier shared by all repositories. Both *pgxpool.Pool and pgx.Tx
// satisfy it, so the same repository type serves pool-bound reads and
// transaction-bound writes.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository carries the querier for a repository instance.
type BaseRepository struct {
	db DB
}

const uniqueViolationCode = "23505"
