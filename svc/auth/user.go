package auth

import "time"

// User represents a user account. IDs are opaque provider-style strings
// ("user_" + UUID) generated at signup. PasswordHash is nil for accounts
// created through future OAuth flows.
type User struct {
	ID           string
	Email        string
	Name         string // display name, optional
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
