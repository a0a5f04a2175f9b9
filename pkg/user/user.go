package user

import (
	"context"
	"time"
)

// User is an account that can log in and be assigned tasks.
type User struct {
	ID             int64
	FirstName      *string
	LastName       *string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Store is the contract for user persistence.
type Store interface {
	// Create inserts u and fills in its ID and timestamps.
	Create(ctx context.Context, u *User) error

	// Get returns a user by ID, or an apperr not-found error.
	Get(ctx context.Context, id int64) (*User, error)

	// ByEmail returns a user by email, or an apperr not-found error.
	ByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns every user in insertion order.
	List(ctx context.Context) ([]User, error)

	// Update overwrites the mutable columns of u and bumps UpdatedAt.
	Update(ctx context.Context, u *User) error

	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
