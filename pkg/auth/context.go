package auth

import (
	"context"

	"github.com/rolodex-dev/rolodex/pkg/api"
)

// principalKey is a private type for the principal context key.
type principalKey struct{}

// SetPrincipal stores the authenticated user in the context.
func SetPrincipal(ctx context.Context, u *api.User) context.Context {
	return context.WithValue(ctx, principalKey{}, u)
}

// PrincipalFromContext retrieves the authenticated user.
// Returns nil if no principal is set (unauthenticated route).
func PrincipalFromContext(ctx context.Context) *api.User {
	if v, ok := ctx.Value(principalKey{}).(*api.User); ok {
		return v
	}
	return nil
}
