package service

import (
	"time"

	"task-manager/pkg/label"
	"task-manager/pkg/optional"
	"task-manager/pkg/status"
	"task-manager/pkg/task"
	"task-manager/pkg/user"
)

// createdAt is rendered as a calendar date.
const dateLayout = time.DateOnly

// TaskView is the wire representation of a task.
type TaskView struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Index      *int    `json:"index"`
	Content    *string `json:"content"`
	Status     string  `json:"status"`
	AssigneeID *int64  `json:"assigneeId"`
	CreatedAt  string  `json:"createdAt"`
	LabelIDs   []int64 `json:"labelIds"`
}

type TaskCreate struct {
	Title      string  `json:"title" validate:"required,notblank"`
	Index      *int    `json:"index"`
	Content    *string `json:"content"`
	Status     string  `json:"status" validate:"required,notblank"`
	AssigneeID *int64  `json:"assigneeId"`
	LabelIDs   []int64 `json:"labelIds"`
}

// TaskUpdate is a patch: omitted fields are left alone, null clears index,
// content, assigneeId and labelIds and is rejected for title and status.
type TaskUpdate struct {
	Title      optional.Field[string]  `json:"title"`
	Index      optional.Field[int]     `json:"index"`
	Content    optional.Field[string]  `json:"content"`
	Status     optional.Field[string]  `json:"status"`
	AssigneeID optional.Field[int64]   `json:"assigneeId"`
	LabelIDs   optional.Field[[]int64] `json:"labelIds"`
}

func taskView(t *task.Task) TaskView {
	labels := t.LabelIDs
	if labels == nil {
		labels = []int64{}
	}
	return TaskView{
		ID:         t.ID,
		Title:      t.Name,
		Index:      t.Index,
		Content:    t.Description,
		Status:     t.StatusSlug,
		AssigneeID: t.AssigneeID,
		CreatedAt:  t.CreatedAt.Format(dateLayout),
		LabelIDs:   labels,
	}
}

// UserView is the wire representation of a user. The password digest is
// never exposed.
type UserView struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	CreatedAt string  `json:"createdAt"`
}

type UserCreate struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  string  `json:"password" validate:"required,notblank,min=3"`
}

type UserUpdate struct {
	Email     optional.Field[string] `json:"email"`
	FirstName optional.Field[string] `json:"firstName"`
	LastName  optional.Field[string] `json:"lastName"`
	Password  optional.Field[string] `json:"password"`
}

func userView(u *user.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format(dateLayout),
	}
}

type StatusView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
}

type StatusCreate struct {
	Name string `json:"name" validate:"required,notblank"`
	Slug string `json:"slug" validate:"required,notblank"`
}

type StatusUpdate struct {
	Name optional.Field[string] `json:"name"`
	Slug optional.Field[string] `json:"slug"`
}

func statusView(s *status.Status) StatusView {
	return StatusView{ID: s.ID, Name: s.Name, Slug: s.Slug, CreatedAt: s.CreatedAt.Format(dateLayout)}
}

type LabelView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type LabelCreate struct {
	Name string `json:"name" validate:"required,min=3,max=1000"`
}

type LabelUpdate struct {
	Name optional.Field[string] `json:"name"`
}

func labelView(l *label.Label) LabelView {
	return LabelView{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt.Format(dateLayout)}
}

func views[E, V any](items []E, view func(*E) V) []V {
	out := make([]V, len(items))
	for i := range items {
		out[i] = view(&items[i])
	}
	return out
}
