package auth

import "context"

// contextKey is unexported so no other package can collide with our keys.
type contextKey string

const claimsContextKey contextKey = "auth_claims"

// NewContextWithClaims returns a child context carrying verified claims.
// Only the gate writes claims; handlers read them and never re-parse tokens.
func NewContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts verified claims attached by the gate. The
// second return value is false on unprotected routes, where the gate never
// ran.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
