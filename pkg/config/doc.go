// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env, with optional .env file support
// via godotenv for local development.
//
// Each package that needs configuration declares its own Config struct with
// env tags and default values; main composes them at startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
// Required variables (tagged with ",required") make startup fail fast
// instead of falling back to insecure defaults.
package config
