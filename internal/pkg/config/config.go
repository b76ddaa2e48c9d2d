package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL,           required"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,      default=10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,      default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,   default=30m"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type CacheConfig struct {
	Enabled bool          `env:"CACHE_ENABLED, default=true"`
	TTL     time.Duration `env:"CACHE_TTL,     default=5m"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file, then the process environment. Variables
// already set in the environment win over the file.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
