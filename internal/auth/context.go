package auth

import (
	"context"

	"github.com/coursekeep/coursekeep/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// identityContextKey is the context key for the authenticated user.
	identityContextKey contextKey = "identity"
)

// ContextWithIdentity adds the authenticated user to the context.
func ContextWithIdentity(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, identityContextKey, user)
}

// IdentityFromContext retrieves the authenticated user from the context.
// Returns nil if not present.
func IdentityFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(identityContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// MustIdentityFromContext retrieves the authenticated user from the context.
// Panics if not present (use only when auth middleware has run).
func MustIdentityFromContext(ctx context.Context) *model.User {
	user := IdentityFromContext(ctx)
	if user == nil {
		panic("identity not found - ensure auth middleware is applied")
	}
	return user
}

// UserIDFromContext returns the authenticated user's ID, or 0 when the
// request is anonymous.
func UserIDFromContext(ctx context.Context) int64 {
	user := IdentityFromContext(ctx)
	if user == nil {
		return 0
	}
	return user.ID
}
