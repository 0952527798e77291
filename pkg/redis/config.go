package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:""`                // ConnectionURL in the format "redis://:password@localhost:6379/0". Empty disables Redis-backed features.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of retry attempts to connect.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`   // RetryInterval is the interval between retry attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // ConnectTimeout bounds the whole connection phase.
}

// Enabled reports whether a Redis connection is configured. The token
// denylist is optional; without Redis the server runs with expiry-only
// invalidation.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
