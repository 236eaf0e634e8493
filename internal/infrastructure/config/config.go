package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

// AuthConfig carries the signing material and session policy. Both secrets
// are mandatory and must differ: a leaked access key must not be able to
// forge refresh tokens, and vice versa.
type AuthConfig struct {
	AccessSecret  string        `env:"JWT_SECRET"`
	RefreshSecret string        `env:"REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_EXPIRES_IN,     default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_EXPIRES_IN, default=168h"`
	RotateRefresh bool          `env:"REFRESH_ROTATE,     default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=diary"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsProduction reports whether the process runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig
// and rejects startup conditions the service cannot run under.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Auth.AccessSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	if cfg.Auth.RefreshSecret == "" {
		return nil, errors.New("config: REFRESH_SECRET is required")
	}
	if cfg.Auth.AccessSecret == cfg.Auth.RefreshSecret {
		return nil, errors.New("config: JWT_SECRET and REFRESH_SECRET must differ")
	}

	return &cfg, nil
}
