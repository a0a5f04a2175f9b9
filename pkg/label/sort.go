package label

import (
	"cmp"
	"strings"

	"task-manager/pkg/listing"
)

// SortFields are the sortable fields of a label.
var SortFields = listing.Fields[Label]{
	"id":        func(a, b Label) int { return cmp.Compare(a.ID, b.ID) },
	"name":      func(a, b Label) int { return strings.Compare(a.Name, b.Name) },
	"createdAt": func(a, b Label) int { return listing.Times(a.CreatedAt, b.CreatedAt) },
}
