// Package auth issues and verifies bearer tokens and identifies the caller.
package auth

import "context"

// Principal is the authenticated caller. It is passed explicitly to every
// service call that mutates state.
type Principal struct {
	UserID int64
	Email  string
}

// String identifies the principal in logs.
func (p Principal) String() string {
	return p.Email
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by the middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
