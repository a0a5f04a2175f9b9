package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/pkg/apperr"
)

func id64(v int64) *int64 { return &v }

func sample() []Task {
	return []Task{
		{ID: 1, Name: "Write docs", StatusSlug: "done", AssigneeID: id64(7), LabelIDs: []int64{1, 2}},
		{ID: 2, Name: "write tests", StatusSlug: "done", AssigneeID: id64(8), LabelIDs: []int64{2}},
		{ID: 3, Name: "Fix docs build", StatusSlug: "todo", AssigneeID: id64(7)},
		{ID: 4, Name: "Triage", StatusSlug: "todo"},
	}
}

func matching(t *testing.T, query map[string]string) []int64 {
	t.Helper()
	pred, err := BuildFilter(query)
	require.NoError(t, err)
	var ids []int64
	for _, tk := range sample() {
		if pred(&tk) {
			ids = append(ids, tk.ID)
		}
	}
	return ids
}

func TestBuildFilterStatusAndAssignee(t *testing.T) {
	assert.Equal(t, []int64{1}, matching(t, map[string]string{"status": "done", "assigneeId": "7"}))
}

func TestBuildFilterSingleKeys(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
		want  []int64
	}{
		{"empty", map[string]string{}, []int64{1, 2, 3, 4}},
		{"title is case sensitive", map[string]string{"titleCont": "docs"}, []int64{1, 3}},
		{"title capital", map[string]string{"titleCont": "Write"}, []int64{1}},
		{"assignee", map[string]string{"assigneeId": "8"}, []int64{2}},
		{"status", map[string]string{"status": "todo"}, []int64{3, 4}},
		{"label", map[string]string{"labelId": "2"}, []int64{1, 2}},
		{"unknown keys ignored", map[string]string{"color": "red", "_sort": "id"}, []int64{1, 2, 3, 4}},
		{"no match", map[string]string{"status": "archived"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matching(t, tt.query))
		})
	}
}

func TestBuildFilterIsConjunction(t *testing.T) {
	keys := map[string]string{
		"titleCont":  "docs",
		"assigneeId": "7",
		"status":     "done",
		"labelId":    "1",
	}
	single := make(map[string]Predicate)
	for k, v := range keys {
		p, err := BuildFilter(map[string]string{k: v})
		require.NoError(t, err)
		single[k] = p
	}

	// Every subset of keys: the combined predicate equals the AND of the parts.
	names := []string{"titleCont", "assigneeId", "status", "labelId"}
	for mask := 0; mask < 1<<len(names); mask++ {
		q := map[string]string{}
		for i, n := range names {
			if mask&(1<<i) != 0 {
				q[n] = keys[n]
			}
		}
		combined, err := BuildFilter(q)
		require.NoError(t, err)
		for _, tk := range sample() {
			want := true
			for n := range q {
				want = want && single[n](&tk)
			}
			assert.Equal(t, want, combined(&tk), "query %v task %d", q, tk.ID)
		}
	}
}

func TestBuildFilterUnassignedNeverMatchesAssignee(t *testing.T) {
	pred, err := BuildFilter(map[string]string{"assigneeId": "0"})
	require.NoError(t, err)
	assert.False(t, pred(&Task{ID: 9}))
}

func TestBuildFilterRejectsNonIntegerIDs(t *testing.T) {
	for _, q := range []map[string]string{
		{"assigneeId": "seven"},
		{"labelId": "1.5"},
		{"labelId": ""},
	} {
		_, err := BuildFilter(q)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "query %v", q)
	}
}
