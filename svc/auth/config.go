package auth

import "time"

// Config holds authentication settings. JWTSecret has no default on
// purpose: starting with an unset secret would silently issue forgeable
// tokens, so the loader fails instead.
type Config struct {
	JWTSecret  string        `env:"JWT_SECRET,required"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"720h"` // 30 days
	BcryptCost int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}
