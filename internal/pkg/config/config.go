package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	JWTSecret   string        `env:"JWT_SECRET,   required"`
	SessionTTL  time.Duration `env:"SESSION_TTL,  default=24h"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string      `env:"CORS_ORIGINS, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
	Auth  AuthConfig
	Order OrderConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=renovate"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuthConfig struct {
	// RevocationEnabled turns on the Redis deny-list checked on every request.
	RevocationEnabled  bool `env:"REVOCATION_ENABLED,    default=true"`
	LoginRatePerMinute int  `env:"LOGIN_RATE_PER_MINUTE, default=10"`
	LoginBurst         int  `env:"LOGIN_BURST,           default=5"`
}

type OrderConfig struct {
	// StrictTransitions enforces pending -> in_progress -> completed, with
	// cancellation from either non-terminal state.
	StrictTransitions bool `env:"ORDER_STRICT_TRANSITIONS, default=false"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file if present, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith processes configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.Auth.LoginRatePerMinute <= 0 || cfg.Auth.LoginBurst <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive")
	}
	origins, err := corsOrigins(cfg.CORSOrigins)
	if err != nil {
		return nil, err
	}
	cfg.CORSOrigins = origins
	return &cfg, nil
}

// corsOrigins trims the configured origins. Session cookies are sent with
// credentialed CORS, which browsers refuse for a wildcard origin, so the list
// must name at least one explicit origin.
func corsOrigins(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, o := range raw {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			return nil, fmt.Errorf("CORS_ORIGINS must list explicit origins, \"*\" cannot be used with credentials")
		}
		out = append(out, o)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must name at least one origin")
	}
	return out, nil
}
