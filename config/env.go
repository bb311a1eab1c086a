package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is built once at startup and injected into the services; the
// signing key and token lifetime are never re-read after that.
type Config struct {
	Port          string        `env:"PORT" envDefault:"3000"`
	PostgresURI   string        `env:"POSTGRESQL_URI,required"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"720h"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
