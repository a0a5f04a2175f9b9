package label

import (
	"context"
	"sync"
	"time"

	"task-manager/pkg/apperr"
)

// MemStore is an in-memory label store.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]Label
	order  []int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{rows: make(map[int64]Label)}
}

func (s *MemStore) Create(_ context.Context, l *Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(l.Name, 0) {
		return apperr.Duplicate("label %s already exists", l.Name)
	}
	s.nextID++
	l.ID, l.CreatedAt = s.nextID, time.Now()
	s.rows[l.ID] = *l
	s.order = append(s.order, l.ID)
	return nil
}

func (s *MemStore) Get(_ context.Context, id int64) (*Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("label with id = %d not found", id)
	}
	return &l, nil
}

func (s *MemStore) ByIDs(_ context.Context, ids []int64) ([]Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []Label
	for _, id := range s.order {
		if _, ok := want[id]; ok {
			out = append(out, s.rows[id])
		}
	}
	return out, nil
}

func (s *MemStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nameTaken(name, 0), nil
}

func (s *MemStore) List(_ context.Context) ([]Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Label, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out, nil
}

func (s *MemStore) Update(_ context.Context, l *Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[l.ID]
	if !ok {
		return apperr.NotFound("label with id = %d not found", l.ID)
	}
	if s.nameTaken(l.Name, l.ID) {
		return apperr.Duplicate("label %s already exists", l.Name)
	}
	l.CreatedAt = cur.CreatedAt
	s.rows[l.ID] = *l
	return nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperr.NotFound("label with id = %d not found", id)
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

func (s *MemStore) nameTaken(name string, except int64) bool {
	for id, l := range s.rows {
		if id != except && l.Name == name {
			return true
		}
	}
	return false
}
