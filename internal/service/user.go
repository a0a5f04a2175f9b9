package service

import (
	"context"

	"task-manager/internal/auth"
	"task-manager/internal/store"
	"task-manager/pkg/apperr"
	"task-manager/pkg/listing"
	"task-manager/pkg/user"
)

// UserService manages user accounts.
type UserService struct {
	base
	hasher auth.Hasher
}

func (s *UserService) List(ctx context.Context, query map[string]string) ([]UserView, int, error) {
	p, err := listing.Parse(query)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.store.Repos().Users.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total, err := listing.Apply(users, p, user.SortFields)
	if err != nil {
		return nil, 0, err
	}
	return views(page, userView), total, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (UserView, error) {
	u, err := s.store.Repos().Users.Get(ctx, id)
	if err != nil {
		return UserView{}, err
	}
	return userView(u), nil
}

func (s *UserService) Create(ctx context.Context, who auth.Principal, in UserCreate) (UserView, error) {
	if err := s.validate.Struct(in); err != nil {
		return UserView{}, invalid(err)
	}
	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return UserView{}, err
	}

	u := &user.User{Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, PasswordDigest: digest}
	err = s.store.InTx(ctx, func(r store.Repos) error {
		if err := emailFree(ctx, r, u.Email); err != nil {
			return err
		}
		return r.Users.Create(ctx, u)
	})
	if err != nil {
		return UserView{}, err
	}

	s.audit(who, "user_id", u.ID).Info("user created")
	return userView(u), nil
}

// Update applies a patch. A new password is hashed; keeping the user's own
// email is not a collision.
func (s *UserService) Update(ctx context.Context, who auth.Principal, id int64, in UserUpdate) (UserView, error) {
	var password string
	if err := setRequired(s.validate, "password", in.Password, "notblank,min=3", &password); err != nil {
		return UserView{}, err
	}
	var digest string
	if password != "" {
		var err error
		if digest, err = s.hasher.Hash(password); err != nil {
			return UserView{}, err
		}
	}

	var u *user.User
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		if u, err = r.Users.Get(ctx, id); err != nil {
			return err
		}
		current := u.Email
		if err := setRequired(s.validate, "email", in.Email, "email", &u.Email); err != nil {
			return err
		}
		if u.Email != current {
			if err := emailFree(ctx, r, u.Email); err != nil {
				return err
			}
		}
		setNullable(in.FirstName, &u.FirstName)
		setNullable(in.LastName, &u.LastName)
		if digest != "" {
			u.PasswordDigest = digest
		}
		return r.Users.Update(ctx, u)
	})
	if err != nil {
		return UserView{}, err
	}

	s.audit(who, "user_id", id).Info("user updated")
	return userView(u), nil
}

// Delete removes a user that no task is assigned to.
func (s *UserService) Delete(ctx context.Context, who auth.Principal, id int64) error {
	err := s.store.InTx(ctx, func(r store.Repos) error {
		if err := guardUser(ctx, r, id); err != nil {
			return err
		}
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.audit(who, "user_id", id).Info("user deleted")
	return nil
}

func emailFree(ctx context.Context, r store.Repos, email string) error {
	taken, err := r.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("user with email %s already exists", email)
	}
	return nil
}
