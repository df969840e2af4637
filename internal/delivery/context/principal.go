package context

import (
	"context"

	"passport/internal/domain/service"
)

// GetPrincipal extracts the authenticated caller's claims from context.Context.
// If the request carried no valid token, returns nil.
func GetPrincipal(ctx context.Context) *service.AccessClaims {
	if claims, ok := ctx.Value(KeyPrincipal).(*service.AccessClaims); ok {
		return claims
	}

	return nil
}

// WithPrincipal returns a new context carrying the authenticated caller's claims.
func WithPrincipal(ctx context.Context, claims *service.AccessClaims) context.Context {
	return context.WithValue(ctx, KeyPrincipal, claims)
}
