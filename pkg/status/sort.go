package status

import (
	"cmp"
	"strings"

	"task-manager/pkg/listing"
)

// SortFields are the sortable fields of a task status.
var SortFields = listing.Fields[Status]{
	"id":        func(a, b Status) int { return cmp.Compare(a.ID, b.ID) },
	"name":      func(a, b Status) int { return strings.Compare(a.Name, b.Name) },
	"slug":      func(a, b Status) int { return strings.Compare(a.Slug, b.Slug) },
	"createdAt": func(a, b Status) int { return listing.Times(a.CreatedAt, b.CreatedAt) },
}
