package auth

import "context"

type contextKey struct{ name string }

var (
	claimsContextKey = contextKey{"auth_claims"}
	tokenContextKey  = contextKey{"auth_token"}
)

// WithClaims returns a child context carrying the authenticated claims.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the claims placed by the middleware. Returns
// ErrNotAuthenticated when called on a request that did not pass through
// RequireAuth.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(Claims)
	if !ok {
		return Claims{}, ErrNotAuthenticated
	}
	return claims, nil
}

// UserIDFromContext is a convenience accessor for the authenticated
// subject identifier.
func UserIDFromContext(ctx context.Context) (string, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// withToken stashes the raw bearer token so logout can revoke the exact
// credential that authenticated the request.
func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the raw bearer token for the current request.
func TokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}
