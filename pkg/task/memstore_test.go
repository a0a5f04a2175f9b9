package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/pkg/apperr"
)

func slugs(m map[int64]string) SlugFunc {
	return func(_ context.Context, id int64) (string, error) {
		s, ok := m[id]
		if !ok {
			return "", apperr.NotFound("task status with id = %d not found", id)
		}
		return s, nil
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	statuses := map[int64]string{1: "draft", 2: "published"}
	s := NewMemStore(slugs(statuses))

	tk := &Task{Name: "first", StatusID: 1, LabelIDs: []int64{3, 1, 3}}
	require.NoError(t, s.Create(ctx, tk))
	assert.Equal(t, int64(1), tk.ID)
	assert.Equal(t, "draft", tk.StatusSlug)
	assert.Equal(t, []int64{1, 3}, tk.LabelIDs)
	assert.False(t, tk.CreatedAt.IsZero())

	statuses[1] = "renamed"
	got, err := s.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.StatusSlug)

	got.LabelIDs[0] = 99
	again, err := s.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, again.LabelIDs)
}

func TestMemStoreListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(slugs(map[int64]string{1: "done", 2: "todo"}))
	seven, eight := int64(7), int64(8)
	for _, tk := range []*Task{
		{Name: "a", StatusID: 1, AssigneeID: &seven},
		{Name: "b", StatusID: 1, AssigneeID: &eight},
		{Name: "c", StatusID: 2, AssigneeID: &seven},
	} {
		require.NoError(t, s.Create(ctx, tk))
	}

	f, err := ParseFilter(map[string]string{"status": "done", "assigneeId": "7"})
	require.NoError(t, err)
	got, err := s.List(ctx, f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestMemStoreReferenceChecks(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(slugs(map[int64]string{1: "draft"}))
	u := int64(5)
	tk := &Task{Name: "x", StatusID: 1, AssigneeID: &u, LabelIDs: []int64{4}}
	require.NoError(t, s.Create(ctx, tk))

	for name, check := range map[string]func() (bool, error){
		"assignee": func() (bool, error) { return s.ExistsByAssignee(ctx, 5) },
		"status":   func() (bool, error) { return s.ExistsByStatus(ctx, 1) },
		"label":    func() (bool, error) { return s.ExistsByLabel(ctx, 4) },
	} {
		ok, err := check()
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	require.NoError(t, s.Delete(ctx, tk.ID))
	ok, err := s.ExistsByLabel(ctx, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.Delete(ctx, tk.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMemStoreUnknownStatusStoresNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(slugs(map[int64]string{1: "draft"}))

	err := s.Create(ctx, &Task{Name: "orphan", StatusID: 9})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	tk := &Task{Name: "kept", StatusID: 1}
	require.NoError(t, s.Create(ctx, tk))
	err = s.Update(ctx, &Task{ID: tk.ID, Name: "moved", StatusID: 9})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	got, err := s.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
	assert.Equal(t, int64(1), got.StatusID)
}
