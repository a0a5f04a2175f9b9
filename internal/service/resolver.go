package service

import (
	"context"
	"slices"

	"task-manager/internal/store"
	"task-manager/pkg/apperr"
	"task-manager/pkg/status"
)

// resolveStatus finds the status a task points at by slug.
func resolveStatus(ctx context.Context, r store.Repos, slug string) (*status.Status, error) {
	return r.Statuses.BySlug(ctx, slug)
}

// resolveAssignee checks that id names an existing user. A nil id means no
// assignee.
func resolveAssignee(ctx context.Context, r store.Repos, id *int64) (*int64, error) {
	if id == nil {
		return nil, nil
	}
	u, err := r.Users.Get(ctx, *id)
	if err != nil {
		return nil, err
	}
	return &u.ID, nil
}

// resolveLabels checks that every id names an existing label, in one batch.
// Repeated ids collapse; a single missing id fails the whole set.
func resolveLabels(ctx context.Context, r store.Repos, ids []int64) ([]int64, error) {
	want := slices.Clone(ids)
	slices.Sort(want)
	want = slices.Compact(want)
	if len(want) == 0 {
		return []int64{}, nil
	}

	found, err := r.Labels.ByIDs(ctx, want)
	if err != nil {
		return nil, err
	}
	if len(found) != len(want) {
		return nil, apperr.NotFound("some labels not found")
	}
	return want, nil
}
