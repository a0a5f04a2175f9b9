// Package status stores task statuses: named workflow stages identified by a
// unique slug.
package status

import (
	"context"
	"time"
)

// Status is a workflow stage such as "draft" or "published".
type Status struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Store is the contract for task status persistence.
type Store interface {
	Create(ctx context.Context, st *Status) error
	Get(ctx context.Context, id int64) (*Status, error)
	BySlug(ctx context.Context, slug string) (*Status, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]Status, error)
	Update(ctx context.Context, st *Status) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
