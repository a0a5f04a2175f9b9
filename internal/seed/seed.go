// Package seed installs the bootstrap data: a default user and, outside
// production, the default task statuses. Running it twice changes nothing.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/store"
	"task-manager/pkg/status"
	"task-manager/pkg/user"
)

const (
	DefaultEmail    = "hexlet@example.com"
	DefaultPassword = "qwerty"
)

// DefaultStatuses are created with name and slug equal.
var DefaultStatuses = []string{"draft", "to_review", "to_be_fixed", "to_publish", "published"}

// Run seeds st according to c.
func Run(ctx context.Context, st store.Store, hasher auth.Hasher, c config.Seed, log logrus.FieldLogger) error {
	if !c.Enabled {
		return nil
	}
	return st.InTx(ctx, func(r store.Repos) error {
		if err := seedUser(ctx, r, hasher, log); err != nil {
			return err
		}
		if c.Production {
			return nil
		}
		return seedStatuses(ctx, r, log)
	})
}

func seedUser(ctx context.Context, r store.Repos, hasher auth.Hasher, log logrus.FieldLogger) error {
	exists, err := r.Users.ExistsByEmail(ctx, DefaultEmail)
	if err != nil || exists {
		return err
	}
	digest, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return err
	}
	u := &user.User{Email: DefaultEmail, PasswordDigest: digest}
	if err := r.Users.Create(ctx, u); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	log.WithField("user_id", u.ID).Info("seeded default user")
	return nil
}

func seedStatuses(ctx context.Context, r store.Repos, log logrus.FieldLogger) error {
	for _, slug := range DefaultStatuses {
		exists, err := r.Statuses.ExistsBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := r.Statuses.Create(ctx, &status.Status{Name: slug, Slug: slug}); err != nil {
			return fmt.Errorf("seed status %s: %w", slug, err)
		}
		log.WithField("slug", slug).Info("seeded task status")
	}
	return nil
}
