// Package listing implements the sort and window stage shared by every list
// endpoint.
//
// A list request carries `_sort`, `_order`, `_start` and `_end`. The sort
// field must belong to the closed set of fields registered for the entity,
// the order must be exactly ASC or DESC, and the window is the inclusive
// range [start, end] over the sorted sequence.
package listing

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"task-manager/pkg/apperr"
)

// Query keys understood by Parse.
const (
	KeySort  = "_sort"
	KeyOrder = "_order"
	KeyStart = "_start"
	KeyEnd   = "_end"
)

const (
	DefaultSort  = "id"
	DefaultStart = 0
	DefaultEnd   = 9
)

// Order is a sort direction token.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// Params is a parsed list request.
type Params struct {
	Sort  string
	Order Order
	Start int
	End   int
}

// Parse reads the paging keys from a raw query map, applying defaults for
// absent keys. Sort field and order are validated later against the entity's
// field set by Apply.
func Parse(query map[string]string) (Params, error) {
	p := Params{
		Sort:  DefaultSort,
		Order: Asc,
		Start: DefaultStart,
		End:   DefaultEnd,
	}
	if v, ok := query[KeySort]; ok {
		p.Sort = v
	}
	if v, ok := query[KeyOrder]; ok {
		p.Order = Order(v)
	}
	var err error
	if p.Start, err = intParam(query, KeyStart, DefaultStart); err != nil {
		return Params{}, err
	}
	if p.End, err = intParam(query, KeyEnd, DefaultEnd); err != nil {
		return Params{}, err
	}
	if p.Start < 0 {
		return Params{}, apperr.Validation("cannot process request: %s must not be negative", KeyStart)
	}
	if p.End < 0 {
		return Params{}, apperr.Validation("cannot process request: %s must not be negative", KeyEnd)
	}
	return p, nil
}

func intParam(query map[string]string, key string, def int) (int, error) {
	v, ok := query[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.Validation("cannot process request: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

// Comparator orders two items, returning a negative number when a sorts first.
type Comparator[T any] func(a, b T) int

// Fields maps the sortable field tags of an entity to comparators. A tag
// missing from the map is not sortable.
type Fields[T any] map[string]Comparator[T]

// comparator resolves the field and order into a single comparator, failing
// with a validation error for anything outside the enumeration.
func (f Fields[T]) comparator(field string, order Order) (Comparator[T], error) {
	c, ok := f[field]
	if !ok {
		return nil, apperr.Validation("cannot process request: invalid sort field %q", field)
	}
	switch order {
	case Asc:
		return c, nil
	case Desc:
		return func(a, b T) int { return c(b, a) }, nil
	default:
		return nil, apperr.Validation("cannot process request: invalid sort order %q", string(order))
	}
}

// Apply sorts items by p and cuts the window out of the result. It returns
// the page and the number of items before windowing. items is sorted in place.
func Apply[T any](items []T, p Params, fields Fields[T]) ([]T, int, error) {
	c, err := fields.comparator(p.Sort, p.Order)
	if err != nil {
		return nil, 0, err
	}
	slices.SortStableFunc(items, c)
	return Window(items, p.Start, p.End), len(items), nil
}

// Window returns items[start..end] inclusive, clipped to the slice. An
// inverted or out-of-range window yields an empty page.
func Window[T any](items []T, start, end int) []T {
	if start < 0 {
		start = 0
	}
	if end < start || start >= len(items) {
		return []T{}
	}
	stop := len(items)
	if end < len(items)-1 {
		stop = end + 1
	}
	return items[start:stop]
}

// Nullable compares two optional values with nil sorting first.
func Nullable[V cmp.Ordered](a, b *V) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

// Times compares two timestamps.
func Times(a, b time.Time) int {
	return a.Compare(b)
}
