package auth

import "context"

// ctxKey keys the acting user's claims in a context. Unexported so claims
// can only be attached through WithClaims.
type ctxKey struct{}

// WithClaims attaches the acting user's verified claims to the context.
// The session core reads them back to decide who is performing a mutation.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext returns the acting user's claims, or nil when the
// context carries no identity. A nil result means the caller never
// authenticated; the session core rejects mutations in that case.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}
