package user

import (
	"context"
	"fmt"
	"time"

	"task-manager/internal/db"
	"task-manager/pkg/apperr"
)

const userColumns = `id, first_name, last_name, email, password_digest, created_at, updated_at`

// PgStore is a PostgreSQL-backed user store.
type PgStore struct {
	q db.Querier
}

// NewPgStore creates a PgStore over a pool or a transaction.
func NewPgStore(q db.Querier) *PgStore {
	return &PgStore{q: q}
}

// EnsureTable creates the users table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id              BIGSERIAL PRIMARY KEY,
			first_name      TEXT,
			last_name       TEXT,
			email           TEXT NOT NULL,
			password_digest TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users(email)`)
	return err
}

// Create inserts a new user.
func (s *PgStore) Create(ctx context.Context, u *User) error {
	now := time.Now().Truncate(time.Microsecond)
	err := s.q.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_digest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.Email, u.PasswordDigest, now).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user %s: %w", u.Email, db.WriteError(err, "user with email "+u.Email))
	}
	return nil
}

// Get returns a user by ID.
func (s *PgStore) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("user with id = %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// ByEmail returns a user by email.
func (s *PgStore) ByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("user with email = %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("user by email %s: %w", email, err)
	}
	return u, nil
}

// ExistsByEmail reports whether a user with this email exists.
func (s *PgStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("user exists %s: %w", email, err)
	}
	return ok, nil
}

// List returns all users.
func (s *PgStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordDigest, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes the mutable columns of u.
func (s *PgStore) Update(ctx context.Context, u *User) error {
	now := time.Now().Truncate(time.Microsecond)
	tag, err := s.q.Exec(ctx, `
		UPDATE users SET first_name = $1, last_name = $2, email = $3, password_digest = $4, updated_at = $5
		WHERE id = $6`,
		u.FirstName, u.LastName, u.Email, u.PasswordDigest, now, u.ID)
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, db.WriteError(err, "user with email "+u.Email))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user with id = %d not found", u.ID)
	}
	u.UpdatedAt = now
	return nil
}

// Delete removes a user.
func (s *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, db.DeleteError(err, fmt.Sprintf("user with id = %d", id)))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user with id = %d not found", id)
	}
	return nil
}

// Count returns the number of users.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *PgStore) scanOne(ctx context.Context, query string, args ...any) (*User, error) {
	var u User
	err := s.q.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordDigest, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
