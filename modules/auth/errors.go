package auth

import (
	"errors"

	"github.com/careeros/backend/pkg/httpx"
	authsvc "github.com/careeros/backend/svc/auth"
)

// mapAuthError translates domain sentinels to HTTP errors. Validation
// errors pass through for httpx.Error's 422 handling; anything unmapped
// surfaces as an opaque 500.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, authsvc.ErrEmailAlreadyExists):
		return httpx.ErrConflict.WithMessage("email already registered")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return httpx.ErrUnauthorized.WithMessage("invalid email or password")
	case errors.Is(err, authsvc.ErrUserNotFound):
		return httpx.ErrNotFound.WithMessage("user not found")
	case errors.Is(err, authsvc.ErrNotAuthenticated):
		return httpx.ErrUnauthorized.WithMessage("user not authenticated")
	default:
		return err
	}
}
