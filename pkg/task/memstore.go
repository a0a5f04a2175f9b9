package task

import (
	"context"
	"slices"
	"sync"
	"time"

	"task-manager/pkg/apperr"
)

// SlugFunc resolves a status ID to its slug.
type SlugFunc func(ctx context.Context, statusID int64) (string, error)

// MemStore is an in-memory task store. Status slugs are looked up through
// slugOf on every read so a renamed status shows up on its tasks.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]Task
	order  []int64
	slugOf SlugFunc
}

// NewMemStore creates an empty MemStore.
func NewMemStore(slugOf SlugFunc) *MemStore {
	return &MemStore{rows: make(map[int64]Task), slugOf: slugOf}
}

func (s *MemStore) Create(ctx context.Context, t *Task) error {
	if err := s.resolve(ctx, t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID, t.CreatedAt = s.nextID, time.Now()
	t.LabelIDs = normalize(t.LabelIDs)
	s.rows[t.ID] = clone(*t)
	s.order = append(s.order, t.ID)
	return nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (*Task, error) {
	s.mu.RLock()
	t, ok := s.rows[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperr.NotFound("task with id = %d not found", id)
	}
	t = clone(t)
	if err := s.resolve(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MemStore) List(ctx context.Context, f Filter) ([]Task, error) {
	s.mu.RLock()
	all := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, clone(s.rows[id]))
	}
	s.mu.RUnlock()

	match := f.Predicate()
	out := make([]Task, 0, len(all))
	for i := range all {
		if err := s.resolve(ctx, &all[i]); err != nil {
			return nil, err
		}
		if match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *MemStore) Update(ctx context.Context, t *Task) error {
	if err := s.resolve(ctx, t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[t.ID]
	if !ok {
		return apperr.NotFound("task with id = %d not found", t.ID)
	}
	t.CreatedAt = cur.CreatedAt
	t.LabelIDs = normalize(t.LabelIDs)
	s.rows[t.ID] = clone(*t)
	return nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperr.NotFound("task with id = %d not found", id)
	}
	delete(s.rows, id)
	s.order = slices.DeleteFunc(s.order, func(v int64) bool { return v == id })
	return nil
}

func (s *MemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

func (s *MemStore) ExistsByAssignee(_ context.Context, userID int64) (bool, error) {
	return s.any(func(t *Task) bool { return t.AssigneeID != nil && *t.AssigneeID == userID }), nil
}

func (s *MemStore) ExistsByStatus(_ context.Context, statusID int64) (bool, error) {
	return s.any(func(t *Task) bool { return t.StatusID == statusID }), nil
}

func (s *MemStore) ExistsByLabel(_ context.Context, labelID int64) (bool, error) {
	return s.any(func(t *Task) bool { return t.HasLabel(labelID) }), nil
}

func (s *MemStore) any(p Predicate) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.rows {
		if p(&t) {
			return true
		}
	}
	return false
}

func (s *MemStore) resolve(ctx context.Context, t *Task) error {
	slug, err := s.slugOf(ctx, t.StatusID)
	if err != nil {
		return err
	}
	t.StatusSlug = slug
	return nil
}

func clone(t Task) Task {
	t.LabelIDs = slices.Clone(t.LabelIDs)
	if t.LabelIDs == nil {
		t.LabelIDs = []int64{}
	}
	return t
}

// normalize sorts ids and drops duplicates, matching what the database
// returns for a label set.
func normalize(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
