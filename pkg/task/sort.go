package task

import (
	"cmp"
	"strings"

	"task-manager/pkg/listing"
)

// SortFields are the sortable fields of a task. title and content are the
// wire names of name and description.
var SortFields = listing.Fields[Task]{
	"id":          func(a, b Task) int { return cmp.Compare(a.ID, b.ID) },
	"index":       func(a, b Task) int { return listing.Nullable(a.Index, b.Index) },
	"name":        byName,
	"title":       byName,
	"description": byDescription,
	"content":     byDescription,
	"createdAt":   func(a, b Task) int { return listing.Times(a.CreatedAt, b.CreatedAt) },
}

func byName(a, b Task) int { return strings.Compare(a.Name, b.Name) }

func byDescription(a, b Task) int { return listing.Nullable(a.Description, b.Description) }
