package service

import (
	"context"

	"task-manager/internal/auth"
	"task-manager/internal/store"
	"task-manager/pkg/apperr"
	"task-manager/pkg/label"
	"task-manager/pkg/listing"
)

// LabelService manages labels.
type LabelService struct {
	base
}

func (s *LabelService) List(ctx context.Context, query map[string]string) ([]LabelView, int, error) {
	p, err := listing.Parse(query)
	if err != nil {
		return nil, 0, err
	}
	labels, err := s.store.Repos().Labels.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total, err := listing.Apply(labels, p, label.SortFields)
	if err != nil {
		return nil, 0, err
	}
	return views(page, labelView), total, nil
}

func (s *LabelService) Get(ctx context.Context, id int64) (LabelView, error) {
	l, err := s.store.Repos().Labels.Get(ctx, id)
	if err != nil {
		return LabelView{}, err
	}
	return labelView(l), nil
}

func (s *LabelService) Create(ctx context.Context, who auth.Principal, in LabelCreate) (LabelView, error) {
	if err := s.validate.Struct(in); err != nil {
		return LabelView{}, invalid(err)
	}

	l := &label.Label{Name: in.Name}
	err := s.store.InTx(ctx, func(r store.Repos) error {
		if err := labelNameFree(ctx, r, l.Name); err != nil {
			return err
		}
		return r.Labels.Create(ctx, l)
	})
	if err != nil {
		return LabelView{}, err
	}

	s.audit(who, "label_id", l.ID).Info("label created")
	return labelView(l), nil
}

func (s *LabelService) Update(ctx context.Context, who auth.Principal, id int64, in LabelUpdate) (LabelView, error) {
	var l *label.Label
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		if l, err = r.Labels.Get(ctx, id); err != nil {
			return err
		}
		name := l.Name
		if err := setRequired(s.validate, "name", in.Name, "min=3,max=1000", &l.Name); err != nil {
			return err
		}
		if l.Name != name {
			if err := labelNameFree(ctx, r, l.Name); err != nil {
				return err
			}
		}
		return r.Labels.Update(ctx, l)
	})
	if err != nil {
		return LabelView{}, err
	}

	s.audit(who, "label_id", id).Info("label updated")
	return labelView(l), nil
}

// Delete removes a label that no task carries.
func (s *LabelService) Delete(ctx context.Context, who auth.Principal, id int64) error {
	err := s.store.InTx(ctx, func(r store.Repos) error {
		if err := guardLabel(ctx, r, id); err != nil {
			return err
		}
		return r.Labels.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.audit(who, "label_id", id).Info("label deleted")
	return nil
}

func labelNameFree(ctx context.Context, r store.Repos, name string) error {
	taken, err := r.Labels.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("label with name %s already exists", name)
	}
	return nil
}
