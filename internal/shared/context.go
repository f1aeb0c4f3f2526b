package shared

import "context"

// Claims is the verified content of a bearer token, attached to the request
// context by the auth middleware. It is a snapshot taken at issuance and is
// never re-resolved against the live role registry.
type Claims struct {
	Subject     string
	Username    string
	PrimaryRole string
	Authorities []string
}

type claimsContextKey struct{}

// ContextWithClaims stores verified token claims in context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts verified token claims from context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}
