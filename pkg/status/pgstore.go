package status

import (
	"context"
	"fmt"
	"time"

	"task-manager/internal/db"
	"task-manager/pkg/apperr"
)

// PgStore is a PostgreSQL-backed task status store.
type PgStore struct {
	q db.Querier
}

// NewPgStore creates a PgStore.
func NewPgStore(q db.Querier) *PgStore {
	return &PgStore{q: q}
}

// EnsureTable creates the task_statuses table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS task_statuses (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			slug       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS task_statuses_name_idx ON task_statuses(name)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS task_statuses_slug_idx ON task_statuses(slug)`)
	return err
}

// Create inserts a new status.
func (s *PgStore) Create(ctx context.Context, st *Status) error {
	now := time.Now().Truncate(time.Microsecond)
	err := s.q.QueryRow(ctx, `
		INSERT INTO task_statuses (name, slug, created_at) VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		st.Name, st.Slug, now).Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		return fmt.Errorf("create task status %s: %w", st.Slug, db.WriteError(err, "task status "+st.Slug))
	}
	return nil
}

// Get returns a status by ID.
func (s *PgStore) Get(ctx context.Context, id int64) (*Status, error) {
	st, err := s.scanOne(ctx, `SELECT id, name, slug, created_at FROM task_statuses WHERE id = $1`, id)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("task status with id = %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get task status %d: %w", id, err)
	}
	return st, nil
}

// BySlug returns a status by slug.
func (s *PgStore) BySlug(ctx context.Context, slug string) (*Status, error) {
	st, err := s.scanOne(ctx, `SELECT id, name, slug, created_at FROM task_statuses WHERE slug = $1`, slug)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("task status with slug = %s not found", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("task status by slug %s: %w", slug, err)
	}
	return st, nil
}

func (s *PgStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM task_statuses WHERE name = $1)`, name)
}

func (s *PgStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM task_statuses WHERE slug = $1)`, slug)
}

// List returns all statuses.
func (s *PgStore) List(ctx context.Context) ([]Status, error) {
	rows, err := s.q.Query(ctx, `SELECT id, name, slug, created_at FROM task_statuses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	defer rows.Close()

	var statuses []Status
	for rows.Next() {
		var st Status
		if err := rows.Scan(&st.ID, &st.Name, &st.Slug, &st.CreatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

// Update writes name and slug.
func (s *PgStore) Update(ctx context.Context, st *Status) error {
	tag, err := s.q.Exec(ctx, `UPDATE task_statuses SET name = $1, slug = $2 WHERE id = $3`, st.Name, st.Slug, st.ID)
	if err != nil {
		return fmt.Errorf("update task status %d: %w", st.ID, db.WriteError(err, "task status "+st.Slug))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task status with id = %d not found", st.ID)
	}
	return nil
}

// Delete removes a status.
func (s *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM task_statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task status %d: %w", id, db.DeleteError(err, fmt.Sprintf("task status with id = %d", id)))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task status with id = %d not found", id)
	}
	return nil
}

// Count returns the number of statuses.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM task_statuses`).Scan(&n)
	return n, err
}

func (s *PgStore) exists(ctx context.Context, query string, arg string) (bool, error) {
	var ok bool
	if err := s.q.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("task status exists %s: %w", arg, err)
	}
	return ok, nil
}

func (s *PgStore) scanOne(ctx context.Context, query string, args ...any) (*Status, error) {
	var st Status
	if err := s.q.QueryRow(ctx, query, args...).Scan(&st.ID, &st.Name, &st.Slug, &st.CreatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}
