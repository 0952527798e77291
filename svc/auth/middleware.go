package auth

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/careeros/backend/pkg/httpx"
	"github.com/careeros/backend/pkg/logger"
)

const bearerPrefix = "Bearer "

// RequireAuth guards a route subtree. It demands an exact
// "Bearer <token>" Authorization header, validates the token, optionally
// consults the denylist, and stores the claims and raw token on the
// request context. Response messages are fixed so clients can rely on
// them; header parse failures and validation failures are reported
// distinctly but token validation failures never reveal whether the
// token was expired, forged, or revoked.
func RequireAuth(tokens *TokenService, denylist Denylist, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.Error(w, httpx.ErrUnauthorized.WithMessage("missing authorization header"))
				return
			}

			// Case-sensitive scheme, single space. "bearer x" and
			// "Bearer" alone are both malformed.
			token, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || token == "" || strings.ContainsRune(token, ' ') {
				httpx.Error(w, httpx.ErrUnauthorized.WithMessage("invalid authorization format"))
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				// Cause stays server-side; the response never reveals
				// whether the token was expired, forged, or malformed.
				log.DebugContext(r.Context(), "token rejected", logger.Error(err))
				httpx.Error(w, httpx.ErrUnauthorized.WithMessage("invalid or expired token"))
				return
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), token)
				if err != nil {
					// Fail closed: an unreachable denylist must not
					// turn revoked tokens back into valid ones.
					log.ErrorContext(r.Context(), "denylist check failed", logger.Error(err))
					httpx.Error(w, httpx.ErrUnauthorized.WithMessage("invalid or expired token"))
					return
				}
				if revoked {
					httpx.Error(w, httpx.ErrUnauthorized.WithMessage("invalid or expired token"))
					return
				}
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = withToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RemainingLifetime computes how long a token's claims stay valid from
// now, clamped at zero.
func RemainingLifetime(claims Claims) time.Duration {
	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if remaining < 0 {
		return 0
	}
	return remaining
}
