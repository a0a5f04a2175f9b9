// Package db holds the PostgreSQL plumbing shared by the pgx-backed stores.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"task-manager/pkg/apperr"
)

// SQLSTATE codes the stores translate into application errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so a store can run
// against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connect opens a pool against url and verifies it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, errors.New("database url is empty")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// IsNoRows reports whether err means a single-row query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// WriteError translates constraint violations raised by an insert or update.
// A unique violation is a duplicate; a foreign-key violation means a
// referenced row vanished between resolution and write.
func WriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Wrap(apperr.KindDuplicate, err, "%s already exists", what)
		case codeForeignKeyViolation:
			return apperr.Wrap(apperr.KindNotFound, err, "%s references a missing entity", what)
		}
	}
	return err
}

// DeleteError translates a foreign-key violation raised by a delete into an
// in-use error.
func DeleteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return apperr.Wrap(apperr.KindInUse, err, "%s is used in tasks", what)
	}
	return err
}
