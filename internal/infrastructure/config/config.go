package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// PublicOrigin is the origin embedded in card verification URLs.
	PublicOrigin string `env:"PUBLIC_ORIGIN, default=http://localhost:8080"`

	// SessionSecret signs the session-ID cookie. Required outside development.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=24h"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

// UpstreamConfig points at the remote member API.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:9000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=membership_portal"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
