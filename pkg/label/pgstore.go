package label

import (
	"context"
	"fmt"
	"time"

	"task-manager/internal/db"
	"task-manager/pkg/apperr"
)

// PgStore is a PostgreSQL-backed label store.
type PgStore struct {
	q db.Querier
}

// NewPgStore creates a PgStore.
func NewPgStore(q db.Querier) *PgStore {
	return &PgStore{q: q}
}

// EnsureTable creates the labels table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS labels (
			id         BIGSERIAL PRIMARY KEY,
			name       VARCHAR(1000) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS labels_name_idx ON labels(name)`)
	return err
}

// Create inserts a new label.
func (s *PgStore) Create(ctx context.Context, l *Label) error {
	now := time.Now().Truncate(time.Microsecond)
	err := s.q.QueryRow(ctx, `INSERT INTO labels (name, created_at) VALUES ($1, $2) RETURNING id, created_at`,
		l.Name, now).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create label %s: %w", l.Name, db.WriteError(err, "label "+l.Name))
	}
	return nil
}

// Get returns a label by ID.
func (s *PgStore) Get(ctx context.Context, id int64) (*Label, error) {
	var l Label
	err := s.q.QueryRow(ctx, `SELECT id, name, created_at FROM labels WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.CreatedAt)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("label with id = %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get label %d: %w", id, err)
	}
	return &l, nil
}

// ByIDs returns the labels among ids that exist.
func (s *PgStore) ByIDs(ctx context.Context, ids []int64) ([]Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.scanMany(ctx, `SELECT id, name, created_at FROM labels WHERE id = ANY($1) ORDER BY id ASC`, ids)
}

// ExistsByName reports whether a label with this name exists.
func (s *PgStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM labels WHERE name = $1)`, name).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("label exists %s: %w", name, err)
	}
	return ok, nil
}

// List returns all labels.
func (s *PgStore) List(ctx context.Context) ([]Label, error) {
	return s.scanMany(ctx, `SELECT id, name, created_at FROM labels ORDER BY id ASC`)
}

// Update writes the label name.
func (s *PgStore) Update(ctx context.Context, l *Label) error {
	tag, err := s.q.Exec(ctx, `UPDATE labels SET name = $1 WHERE id = $2`, l.Name, l.ID)
	if err != nil {
		return fmt.Errorf("update label %d: %w", l.ID, db.WriteError(err, "label "+l.Name))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("label with id = %d not found", l.ID)
	}
	return nil
}

// Delete removes a label.
func (s *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete label %d: %w", id, db.DeleteError(err, fmt.Sprintf("label with id = %d", id)))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("label with id = %d not found", id)
	}
	return nil
}

// Count returns the number of labels.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM labels`).Scan(&n)
	return n, err
}

func (s *PgStore) scanMany(ctx context.Context, query string, args ...any) ([]Label, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	var labels []Label
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}
