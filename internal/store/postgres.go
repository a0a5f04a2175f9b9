package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"task-manager/internal/db"
	"task-manager/pkg/label"
	"task-manager/pkg/status"
	"task-manager/pkg/task"
	"task-manager/pkg/user"
)

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool. Close closes the pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Open connects to url and returns a Postgres store.
func Open(ctx context.Context, url string) (*Postgres, error) {
	pool, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewPostgres(pool), nil
}

func bind(q db.Querier) Repos {
	return Repos{
		Users:    user.NewPgStore(q),
		Statuses: status.NewPgStore(q),
		Labels:   label.NewPgStore(q),
		Tasks:    task.NewPgStore(q),
	}
}

func (p *Postgres) Repos() Repos {
	return bind(p.pool)
}

func (p *Postgres) InTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(bind(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Migrate creates the tables in dependency order inside one transaction.
func (p *Postgres) Migrate(ctx context.Context) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migrate: %w", err)
	}
	defer tx.Rollback(ctx)

	steps := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{"users", user.NewPgStore(tx).EnsureTable},
		{"task_statuses", status.NewPgStore(tx).EnsureTable},
		{"labels", label.NewPgStore(tx).EnsureTable},
		{"tasks", task.NewPgStore(tx).EnsureTable},
	}
	for _, s := range steps {
		if err := s.ensure(ctx); err != nil {
			return fmt.Errorf("ensure %s table: %w", s.name, err)
		}
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}
