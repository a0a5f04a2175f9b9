package service

import (
	"context"

	"task-manager/internal/store"
	"task-manager/pkg/apperr"
)

// guardUser fails when the user is missing or assigned to a task.
func guardUser(ctx context.Context, r store.Repos, id int64) error {
	if _, err := r.Users.Get(ctx, id); err != nil {
		return err
	}
	used, err := r.Tasks.ExistsByAssignee(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.InUse("user with id = %d is assigned to tasks", id)
	}
	return nil
}

// guardStatus fails when the status is missing or a task is in it.
func guardStatus(ctx context.Context, r store.Repos, id int64) error {
	if _, err := r.Statuses.Get(ctx, id); err != nil {
		return err
	}
	used, err := r.Tasks.ExistsByStatus(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.InUse("task status with id = %d is used in tasks", id)
	}
	return nil
}

// guardLabel fails when the label is missing or attached to a task.
func guardLabel(ctx context.Context, r store.Repos, id int64) error {
	if _, err := r.Labels.Get(ctx, id); err != nil {
		return err
	}
	used, err := r.Tasks.ExistsByLabel(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.InUse("label with id = %d is used in tasks", id)
	}
	return nil
}
