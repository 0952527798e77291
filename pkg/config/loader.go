package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load populates the given configuration struct from environment variables
// based on `env` field tags. A .env file in the working directory is loaded
// once per process before the first parse; its absence is not an error.
//
// Fields tagged with `env:"NAME,required"` cause Load to fail when the
// variable is unset, which is how the application refuses to start without
// critical secrets.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics on failure. Intended for startup-time
// configuration that the application cannot run without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
