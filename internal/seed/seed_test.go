package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/store"
)

var hasher = auth.Hasher{Cost: bcrypt.MinCost}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := config.Seed{Enabled: true}

	require.NoError(t, Run(ctx, st, hasher, c, logging.Discard()))
	require.NoError(t, Run(ctx, st, hasher, c, logging.Discard()))

	users, err := st.Repos().Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, users)
	statuses, err := st.Repos().Statuses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultStatuses), statuses)

	u, err := st.Repos().Users.ByEmail(ctx, DefaultEmail)
	require.NoError(t, err)
	assert.True(t, hasher.Compare(u.PasswordDigest, DefaultPassword))
}

func TestRunProductionSkipsStatuses(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, Run(ctx, st, hasher, config.Seed{Enabled: true, Production: true}, logging.Discard()))
	n, err := st.Repos().Statuses.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunDisabled(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, Run(ctx, st, hasher, config.Seed{}, logging.Discard()))
	n, err := st.Repos().Users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
