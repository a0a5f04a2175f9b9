// Package store groups the entity stores into a unit of work.
//
// Reads go through Repos. Every create, update and delete goes through InTx,
// so its checks and its writes commit together or not at all.
package store

import (
	"context"

	"task-manager/pkg/label"
	"task-manager/pkg/status"
	"task-manager/pkg/task"
	"task-manager/pkg/user"
)

// Repos is one consistent set of entity stores.
type Repos struct {
	Users    user.Store
	Statuses status.Store
	Labels   label.Store
	Tasks    task.Store
}

// Store hands out Repos and runs transactions over them.
type Store interface {
	Repos() Repos

	// InTx runs fn against stores bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Repos) error) error

	// Migrate creates the schema if it is missing.
	Migrate(ctx context.Context) error

	Close()
}
