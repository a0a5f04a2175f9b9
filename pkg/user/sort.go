package user

import (
	"cmp"
	"strings"

	"task-manager/pkg/listing"
)

// SortFields are the sortable fields of a user.
var SortFields = listing.Fields[User]{
	"id":        func(a, b User) int { return cmp.Compare(a.ID, b.ID) },
	"email":     func(a, b User) int { return strings.Compare(a.Email, b.Email) },
	"firstName": func(a, b User) int { return listing.Nullable(a.FirstName, b.FirstName) },
	"lastName":  func(a, b User) int { return listing.Nullable(a.LastName, b.LastName) },
	"createdAt": func(a, b User) int { return listing.Times(a.CreatedAt, b.CreatedAt) },
}
