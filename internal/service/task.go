package service

import (
	"context"

	"task-manager/internal/auth"
	"task-manager/internal/store"
	"task-manager/pkg/listing"
	"task-manager/pkg/task"
)

// TaskService manages tasks.
type TaskService struct {
	base
}

// List filters, sorts and windows tasks. The returned total is the number of
// tasks that passed the filter.
func (s *TaskService) List(ctx context.Context, query map[string]string) ([]TaskView, int, error) {
	f, err := task.ParseFilter(query)
	if err != nil {
		return nil, 0, err
	}
	p, err := listing.Parse(query)
	if err != nil {
		return nil, 0, err
	}
	tasks, err := s.store.Repos().Tasks.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	page, total, err := listing.Apply(tasks, p, task.SortFields)
	if err != nil {
		return nil, 0, err
	}
	return views(page, taskView), total, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (TaskView, error) {
	t, err := s.store.Repos().Tasks.Get(ctx, id)
	if err != nil {
		return TaskView{}, err
	}
	return taskView(t), nil
}

func (s *TaskService) Create(ctx context.Context, who auth.Principal, in TaskCreate) (TaskView, error) {
	if err := s.validate.Struct(in); err != nil {
		return TaskView{}, invalid(err)
	}

	t := &task.Task{Name: in.Title, Index: in.Index, Description: in.Content}
	err := s.store.InTx(ctx, func(r store.Repos) error {
		st, err := resolveStatus(ctx, r, in.Status)
		if err != nil {
			return err
		}
		t.StatusID = st.ID
		if t.AssigneeID, err = resolveAssignee(ctx, r, in.AssigneeID); err != nil {
			return err
		}
		if t.LabelIDs, err = resolveLabels(ctx, r, in.LabelIDs); err != nil {
			return err
		}
		return r.Tasks.Create(ctx, t)
	})
	if err != nil {
		return TaskView{}, err
	}

	s.audit(who, "task_id", t.ID).Info("task created")
	return taskView(t), nil
}

// Update applies a patch. Only supplied fields are resolved and written.
func (s *TaskService) Update(ctx context.Context, who auth.Principal, id int64, in TaskUpdate) (TaskView, error) {
	var t *task.Task
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		if t, err = r.Tasks.Get(ctx, id); err != nil {
			return err
		}
		if err := setRequired(s.validate, "title", in.Title, "notblank", &t.Name); err != nil {
			return err
		}
		setNullable(in.Index, &t.Index)
		setNullable(in.Content, &t.Description)

		var slug string
		if err := setRequired(s.validate, "status", in.Status, "notblank", &slug); err != nil {
			return err
		}
		if slug != "" {
			st, err := resolveStatus(ctx, r, slug)
			if err != nil {
				return err
			}
			t.StatusID = st.ID
		}

		if in.AssigneeID.IsSet() {
			if t.AssigneeID, err = resolveAssignee(ctx, r, in.AssigneeID.Ptr()); err != nil {
				return err
			}
		}
		if in.LabelIDs.IsSet() {
			ids, _ := in.LabelIDs.Get()
			if t.LabelIDs, err = resolveLabels(ctx, r, ids); err != nil {
				return err
			}
		}
		return r.Tasks.Update(ctx, t)
	})
	if err != nil {
		return TaskView{}, err
	}

	s.audit(who, "task_id", id).Info("task updated")
	return taskView(t), nil
}

func (s *TaskService) Delete(ctx context.Context, who auth.Principal, id int64) error {
	err := s.store.InTx(ctx, func(r store.Repos) error {
		return r.Tasks.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.audit(who, "task_id", id).Info("task deleted")
	return nil
}
