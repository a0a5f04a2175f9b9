package status

import (
	"context"
	"sync"
	"time"

	"task-manager/pkg/apperr"
)

// MemStore is an in-memory task status store.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]Status
	order  []int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{rows: make(map[int64]Status)}
}

func (s *MemStore) Create(_ context.Context, st *Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUnique(st, 0); err != nil {
		return err
	}
	s.nextID++
	st.ID, st.CreatedAt = s.nextID, time.Now()
	s.rows[st.ID] = *st
	s.order = append(s.order, st.ID)
	return nil
}

func (s *MemStore) Get(_ context.Context, id int64) (*Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("task status with id = %d not found", id)
	}
	return &st, nil
}

func (s *MemStore) BySlug(_ context.Context, slug string) (*Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if st := s.rows[id]; st.Slug == slug {
			return &st, nil
		}
	}
	return nil, apperr.NotFound("task status with slug = %s not found", slug)
}

func (s *MemStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.rows {
		if st.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.rows {
		if st.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) List(_ context.Context) ([]Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Status, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out, nil
}

func (s *MemStore) Update(_ context.Context, st *Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[st.ID]
	if !ok {
		return apperr.NotFound("task status with id = %d not found", st.ID)
	}
	if err := s.checkUnique(st, st.ID); err != nil {
		return err
	}
	st.CreatedAt = cur.CreatedAt
	s.rows[st.ID] = *st
	return nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperr.NotFound("task status with id = %d not found", id)
	}
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

func (s *MemStore) checkUnique(st *Status, except int64) error {
	for id, cur := range s.rows {
		if id == except {
			continue
		}
		if cur.Name == st.Name {
			return apperr.Duplicate("task status with name %s already exists", st.Name)
		}
		if cur.Slug == st.Slug {
			return apperr.Duplicate("task status with slug %s already exists", st.Slug)
		}
	}
	return nil
}
