package task

import (
	"strconv"
	"strings"

	"task-manager/pkg/apperr"
)

// Filter query keys.
const (
	KeyTitleCont  = "titleCont"
	KeyAssigneeID = "assigneeId"
	KeyStatus     = "status"
	KeyLabelID    = "labelId"
)

// Predicate selects tasks.
type Predicate func(t *Task) bool

// All matches every task.
func All(*Task) bool { return true }

// And combines predicates; a task matches when it matches every one of them.
func And(preds ...Predicate) Predicate {
	return func(t *Task) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// TitleContains matches tasks whose title contains sub, case-sensitively.
func TitleContains(sub string) Predicate {
	return func(t *Task) bool { return strings.Contains(t.Name, sub) }
}

// AssignedTo matches tasks assigned to userID. Unassigned tasks never match.
func AssignedTo(userID int64) Predicate {
	return func(t *Task) bool { return t.AssigneeID != nil && *t.AssigneeID == userID }
}

// InStatus matches tasks whose status slug equals slug.
func InStatus(slug string) Predicate {
	return func(t *Task) bool { return t.StatusSlug == slug }
}

// Labelled matches tasks whose label set contains labelID.
func Labelled(labelID int64) Predicate {
	return func(t *Task) bool { return t.HasLabel(labelID) }
}

// Filter is the parsed form of the task list filter keys. A nil field does
// not constrain the result.
type Filter struct {
	TitleCont  *string
	AssigneeID *int64
	Status     *string
	LabelID    *int64
}

// ParseFilter reads the filter keys from a raw query map. Unknown keys are
// ignored.
func ParseFilter(query map[string]string) (Filter, error) {
	var f Filter
	if v, ok := query[KeyTitleCont]; ok {
		f.TitleCont = &v
	}
	if v, ok := query[KeyStatus]; ok {
		f.Status = &v
	}
	var err error
	if f.AssigneeID, err = idParam(query, KeyAssigneeID); err != nil {
		return Filter{}, err
	}
	if f.LabelID, err = idParam(query, KeyLabelID); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func idParam(query map[string]string, key string) (*int64, error) {
	v, ok := query[key]
	if !ok {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, apperr.Validation("cannot process request: %s must be an integer, got %q", key, v)
	}
	return &id, nil
}

// Predicate returns the AND of the predicates for every present field.
func (f Filter) Predicate() Predicate {
	var preds []Predicate
	if f.TitleCont != nil {
		preds = append(preds, TitleContains(*f.TitleCont))
	}
	if f.AssigneeID != nil {
		preds = append(preds, AssignedTo(*f.AssigneeID))
	}
	if f.Status != nil {
		preds = append(preds, InStatus(*f.Status))
	}
	if f.LabelID != nil {
		preds = append(preds, Labelled(*f.LabelID))
	}
	if len(preds) == 0 {
		return All
	}
	return And(preds...)
}

// BuildFilter turns a raw query map into a single predicate.
func BuildFilter(query map[string]string) (Predicate, error) {
	f, err := ParseFilter(query)
	if err != nil {
		return nil, err
	}
	return f.Predicate(), nil
}
