package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a self-describing salted bcrypt digest at the
// given cost. Costs outside bcrypt's valid range fall back to the default.
// An error here is a server fault (e.g. input beyond bcrypt's 72-byte
// limit), never a user error.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// Mismatches and malformed digests both return false; a corrupt hash in
// the database must read as "does not match", not crash the login path.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
