package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Token-related errors.
var (
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenRevoked     = errors.New("token revoked")
	ErrNotAuthenticated = errors.New("user not authenticated")
)
