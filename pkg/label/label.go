package label

import (
	"context"
	"time"
)

// Label is a tag that can be attached to any number of tasks.
type Label struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Store is the contract for label persistence.
type Store interface {
	Create(ctx context.Context, l *Label) error
	Get(ctx context.Context, id int64) (*Label, error)

	// ByIDs returns the labels whose IDs are in ids. Missing IDs are skipped,
	// so callers compare lengths to detect them.
	ByIDs(ctx context.Context, ids []int64) ([]Label, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]Label, error)
	Update(ctx context.Context, l *Label) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
