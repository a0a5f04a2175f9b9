package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-manager/internal/db"
	"task-manager/pkg/apperr"
)

// PgStore is a PostgreSQL-backed task store.
type PgStore struct {
	q db.Querier
}

// NewPgStore creates a PgStore.
func NewPgStore(q db.Querier) *PgStore {
	return &PgStore{q: q}
}

// EnsureTable creates the tasks and task_labels tables. The users,
// task_statuses and labels tables must already exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			idx         INTEGER,
			description TEXT,
			status_id   BIGINT NOT NULL REFERENCES task_statuses(id) ON DELETE RESTRICT,
			assignee_id BIGINT REFERENCES users(id) ON DELETE RESTRICT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS task_labels (
			task_id  BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			label_id BIGINT NOT NULL REFERENCES labels(id) ON DELETE RESTRICT,
			PRIMARY KEY (task_id, label_id)
		)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id) WHERE assignee_id IS NOT NULL`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_task_labels_label ON task_labels(label_id)`)
	return err
}

const selectTasks = `
	SELECT t.id, t.name, t.idx, t.description, t.status_id, s.slug, t.assignee_id, t.created_at,
		COALESCE((SELECT array_agg(tl.label_id ORDER BY tl.label_id) FROM task_labels tl WHERE tl.task_id = t.id), '{}')
	FROM tasks t JOIN task_statuses s ON s.id = t.status_id`

// Create inserts a new task and its label links.
func (s *PgStore) Create(ctx context.Context, t *Task) error {
	now := time.Now().Truncate(time.Microsecond)
	err := s.q.QueryRow(ctx, `
		INSERT INTO tasks (name, idx, description, status_id, assignee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		t.Name, t.Index, t.Description, t.StatusID, t.AssigneeID, now).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create task: %w", db.WriteError(err, "task "+t.Name))
	}
	if err := s.linkLabels(ctx, t.ID, t.LabelIDs); err != nil {
		return fmt.Errorf("create task %d: %w", t.ID, err)
	}
	stored, err := s.Get(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

// Get retrieves a single task by ID.
func (s *PgStore) Get(ctx context.Context, id int64) (*Task, error) {
	t, err := scanOne(s.q.QueryRow(ctx, selectTasks+` WHERE t.id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("task with id = %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// List returns the tasks matching f. Each present filter field becomes a
// WHERE clause, so the database does the selection.
func (s *PgStore) List(ctx context.Context, f Filter) ([]Task, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.TitleCont != nil {
		add("strpos(t.name, $%d) > 0", *f.TitleCont)
	}
	if f.AssigneeID != nil {
		add("t.assignee_id = $%d", *f.AssigneeID)
	}
	if f.Status != nil {
		add("s.slug = $%d", *f.Status)
	}
	if f.LabelID != nil {
		add("EXISTS (SELECT 1 FROM task_labels l WHERE l.task_id = t.id AND l.label_id = $%d)", *f.LabelID)
	}

	query := selectTasks
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.id ASC"

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Update writes the task row and replaces its label links.
func (s *PgStore) Update(ctx context.Context, t *Task) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE tasks SET name = $1, idx = $2, description = $3, status_id = $4, assignee_id = $5
		WHERE id = $6`,
		t.Name, t.Index, t.Description, t.StatusID, t.AssigneeID, t.ID)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, db.WriteError(err, "task "+t.Name))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task with id = %d not found", t.ID)
	}
	if _, err := s.q.Exec(ctx, `DELETE FROM task_labels WHERE task_id = $1`, t.ID); err != nil {
		return fmt.Errorf("update task %d labels: %w", t.ID, err)
	}
	if err := s.linkLabels(ctx, t.ID, t.LabelIDs); err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	stored, err := s.Get(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

// Delete removes a task. Its label links go with it.
func (s *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task with id = %d not found", id)
	}
	return nil
}

// Count returns total task count.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func (s *PgStore) ExistsByAssignee(ctx context.Context, userID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE assignee_id = $1)`, userID)
}

func (s *PgStore) ExistsByStatus(ctx context.Context, statusID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE status_id = $1)`, statusID)
}

func (s *PgStore) ExistsByLabel(ctx context.Context, labelID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM task_labels WHERE label_id = $1)`, labelID)
}

func (s *PgStore) exists(ctx context.Context, query string, id int64) (bool, error) {
	var ok bool
	if err := s.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("task reference check %d: %w", id, err)
	}
	return ok, nil
}

func (s *PgStore) linkLabels(ctx context.Context, taskID int64, labelIDs []int64) error {
	if len(labelIDs) == 0 {
		return nil
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO task_labels (task_id, label_id)
		SELECT $1::bigint, l FROM unnest($2::bigint[]) AS l
		ON CONFLICT DO NOTHING`, taskID, labelIDs)
	if err != nil {
		return db.WriteError(err, "task label link")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Name, &t.Index, &t.Description, &t.StatusID, &t.StatusSlug, &t.AssigneeID, &t.CreatedAt, &t.LabelIDs)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		t, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}
