package task

import (
	"context"
	"time"
)

// Task is a unit of work carrying a status, an optional assignee and a set
// of labels.
type Task struct {
	ID          int64
	Name        string
	Index       *int
	Description *string
	StatusID    int64
	AssigneeID  *int64
	LabelIDs    []int64 // sorted, no duplicates
	CreatedAt   time.Time

	// StatusSlug is resolved from StatusID on every read.
	StatusSlug string
}

// HasLabel reports whether id is in the task's label set.
func (t *Task) HasLabel(id int64) bool {
	for _, l := range t.LabelIDs {
		if l == id {
			return true
		}
	}
	return false
}

// Store is the contract for task persistence.
//
// Create and Update touch the task row and its label links separately, so
// callers run them inside a transaction.
type Store interface {
	// Create inserts t with its label links and fills in ID, CreatedAt and
	// StatusSlug.
	Create(ctx context.Context, t *Task) error

	Get(ctx context.Context, id int64) (*Task, error)

	// List returns every task matching f in insertion order.
	List(ctx context.Context, f Filter) ([]Task, error)

	// Update overwrites the mutable columns of t and replaces its label set.
	Update(ctx context.Context, t *Task) error

	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)

	ExistsByAssignee(ctx context.Context, userID int64) (bool, error)
	ExistsByStatus(ctx context.Context, statusID int64) (bool, error)
	ExistsByLabel(ctx context.Context, labelID int64) (bool, error)
}
