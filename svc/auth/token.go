package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careeros/backend/pkg/jwt"
)

// Claims is the payload embedded in session tokens. Tokens are immutable
// once issued: ExpiresAt is fixed at IssuedAt + TTL and expiry is the only
// invalidation mechanism (plus the optional denylist).
type Claims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// Valid rejects expired claims. Called by the JWT codec during Parse.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() >= c.ExpiresAt {
		return jwt.ErrExpiredToken
	}
	return nil
}

// TokenService issues and validates session tokens. It holds the signing
// secret via the underlying JWT codec; constructed once at startup and
// read-only thereafter, so it is safe for unsynchronized concurrent use.
type TokenService struct {
	signer *jwt.Service
	ttl    time.Duration
}

// NewTokenService builds a token service from the signing secret and token
// lifetime. An empty secret is refused; there is no insecure fallback.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	signer, err := jwt.NewFromString(secret)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenService{signer: signer, ttl: ttl}, nil
}

// Issue creates a signed token carrying the subject and email. Purely
// computational; deterministic given the clock.
func (s *TokenService) Issue(subject, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject:   subject,
		Email:     email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	token, err := s.signer.Generate(claims)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Validate parses and verifies a token, returning its claims. Every
// cryptographic or temporal failure collapses to ErrTokenInvalid so
// callers cannot distinguish expired from forged; the underlying cause is
// wrapped for server-side diagnostics.
func (s *TokenService) Validate(token string) (Claims, error) {
	var claims Claims
	if err := s.signer.Parse(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// GenerateUserID produces a globally-unique opaque subject identifier for
// a new user.
func GenerateUserID() string {
	return "user_" + uuid.NewString()
}
