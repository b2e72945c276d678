package auth

import (
	"context"

	"github.com/google/uuid"
)

type principalKey struct{}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID          uuid.UUID
	Username        string
	Email           string
	IsStaff         bool
	IsBusinessOwner bool
}

// PrincipalFromClaims builds a Principal from verified token claims.
func PrincipalFromClaims(c *Claims) Principal {
	return Principal{
		UserID:          c.UserID,
		Username:        c.Username,
		Email:           c.Email,
		IsStaff:         c.IsStaff,
		IsBusinessOwner: c.IsBusinessOwner,
	}
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
