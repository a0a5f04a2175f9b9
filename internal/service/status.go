package service

import (
	"context"

	"task-manager/internal/auth"
	"task-manager/internal/store"
	"task-manager/pkg/apperr"
	"task-manager/pkg/listing"
	"task-manager/pkg/status"
)

// StatusService manages task statuses.
type StatusService struct {
	base
}

func (s *StatusService) List(ctx context.Context, query map[string]string) ([]StatusView, int, error) {
	p, err := listing.Parse(query)
	if err != nil {
		return nil, 0, err
	}
	statuses, err := s.store.Repos().Statuses.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total, err := listing.Apply(statuses, p, status.SortFields)
	if err != nil {
		return nil, 0, err
	}
	return views(page, statusView), total, nil
}

func (s *StatusService) Get(ctx context.Context, id int64) (StatusView, error) {
	st, err := s.store.Repos().Statuses.Get(ctx, id)
	if err != nil {
		return StatusView{}, err
	}
	return statusView(st), nil
}

func (s *StatusService) Create(ctx context.Context, who auth.Principal, in StatusCreate) (StatusView, error) {
	if err := s.validate.Struct(in); err != nil {
		return StatusView{}, invalid(err)
	}

	st := &status.Status{Name: in.Name, Slug: in.Slug}
	err := s.store.InTx(ctx, func(r store.Repos) error {
		if err := statusNameFree(ctx, r, st.Name); err != nil {
			return err
		}
		if err := statusSlugFree(ctx, r, st.Slug); err != nil {
			return err
		}
		return r.Statuses.Create(ctx, st)
	})
	if err != nil {
		return StatusView{}, err
	}

	s.audit(who, "status_id", st.ID).Info("task status created")
	return statusView(st), nil
}

func (s *StatusService) Update(ctx context.Context, who auth.Principal, id int64, in StatusUpdate) (StatusView, error) {
	var st *status.Status
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		if st, err = r.Statuses.Get(ctx, id); err != nil {
			return err
		}
		name, slug := st.Name, st.Slug
		if err := setRequired(s.validate, "name", in.Name, "notblank", &st.Name); err != nil {
			return err
		}
		if err := setRequired(s.validate, "slug", in.Slug, "notblank", &st.Slug); err != nil {
			return err
		}
		if st.Name != name {
			if err := statusNameFree(ctx, r, st.Name); err != nil {
				return err
			}
		}
		if st.Slug != slug {
			if err := statusSlugFree(ctx, r, st.Slug); err != nil {
				return err
			}
		}
		return r.Statuses.Update(ctx, st)
	})
	if err != nil {
		return StatusView{}, err
	}

	s.audit(who, "status_id", id).Info("task status updated")
	return statusView(st), nil
}

// Delete removes a status that no task is in.
func (s *StatusService) Delete(ctx context.Context, who auth.Principal, id int64) error {
	err := s.store.InTx(ctx, func(r store.Repos) error {
		if err := guardStatus(ctx, r, id); err != nil {
			return err
		}
		return r.Statuses.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.audit(who, "status_id", id).Info("task status deleted")
	return nil
}

func statusNameFree(ctx context.Context, r store.Repos, name string) error {
	taken, err := r.Statuses.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("task status with name %s already exists", name)
	}
	return nil
}

func statusSlugFree(ctx context.Context, r store.Repos, slug string) error {
	taken, err := r.Statuses.ExistsBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("task status with slug %s already exists", slug)
	}
	return nil
}
