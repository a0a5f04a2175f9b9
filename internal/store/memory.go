package store

import (
	"context"
	"sync"

	"task-manager/pkg/label"
	"task-manager/pkg/status"
	"task-manager/pkg/task"
	"task-manager/pkg/user"
)

// Memory is an in-process Store. Transactions are serialised; services do
// every check before their single write, so a failed fn leaves no trace.
type Memory struct {
	mu    sync.Mutex
	repos Repos
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	statuses := status.NewMemStore()
	slugOf := func(ctx context.Context, id int64) (string, error) {
		st, err := statuses.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return st.Slug, nil
	}
	return &Memory{repos: Repos{
		Users:    user.NewMemStore(),
		Statuses: statuses,
		Labels:   label.NewMemStore(),
		Tasks:    task.NewMemStore(slugOf),
	}}
}

func (m *Memory) Repos() Repos { return m.repos }

func (m *Memory) InTx(_ context.Context, fn func(Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.repos)
}

func (m *Memory) Migrate(context.Context) error { return nil }

func (m *Memory) Close() {}
