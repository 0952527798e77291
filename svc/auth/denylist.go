package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked tokens until their natural expiry. Implemented
// by RedisDenylist; nil disables revocation entirely and tokens remain
// valid until they expire.
type Denylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisDenylist keys revoked tokens by SHA-256 digest so raw credentials
// never land in Redis. Entries carry a TTL equal to the token's remaining
// lifetime and vanish on their own once the token would have expired
// anyway.
type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:denylist:" + hex.EncodeToString(sum[:])
}

// Revoke marks a token as invalid for ttl. Non-positive ttl means the
// token is already expired and there is nothing to record.
func (d *RedisDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, denylistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was revoked. Errors propagate so the
// middleware can fail closed rather than accept a possibly revoked token.
func (d *RedisDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
