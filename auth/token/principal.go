package token

import "context"

// Principal is the authenticated identity resolved from a verified token.
// It is attached to the request context by the authorization guard and is
// immutable for the lifetime of the request.
type Principal struct {
	UserID string
	Role   string
}

type contextKey struct{}

// NewContext returns a context carrying the resolved principal.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the principal attached by the guard.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
