package user

import (
	"context"
	"sync"
	"time"

	"task-manager/pkg/apperr"
)

// MemStore is an in-memory user store.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]User
	order  []int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{rows: make(map[int64]User)}
}

func (s *MemStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email, 0) {
		return apperr.Duplicate("user with email %s already exists", u.Email)
	}
	s.nextID++
	now := time.Now()
	u.ID, u.CreatedAt, u.UpdatedAt = s.nextID, now, now
	s.rows[u.ID] = *u
	s.order = append(s.order, u.ID)
	return nil
}

func (s *MemStore) Get(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("user with id = %d not found", id)
	}
	return &u, nil
}

func (s *MemStore) ByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if u := s.rows[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user with email = %s not found", email)
}

func (s *MemStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailTaken(email, 0), nil
}

func (s *MemStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.rows[id])
	}
	return users, nil
}

func (s *MemStore) Update(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[u.ID]
	if !ok {
		return apperr.NotFound("user with id = %d not found", u.ID)
	}
	if s.emailTaken(u.Email, u.ID) {
		return apperr.Duplicate("user with email %s already exists", u.Email)
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now()
	s.rows[u.ID] = *u
	return nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperr.NotFound("user with id = %d not found", id)
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

// emailTaken reports whether another user than except owns email.
func (s *MemStore) emailTaken(email string, except int64) bool {
	for id, u := range s.rows {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
