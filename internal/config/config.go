package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// AdminStore selects the backend used for the council_admins table.
type AdminStore string

const (
	// AdminStoreREST talks to the provider's table API over HTTP.
	AdminStoreREST AdminStore = "rest"
	// AdminStorePostgres connects to the provider's Postgres directly.
	AdminStorePostgres AdminStore = "postgres"
)

// Config holds every environment-driven setting of the server.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Provider
	SupabaseURL            string        `env:"SUPABASE_URL,required"`
	SupabaseServiceRoleKey string        `env:"SUPABASE_SERVICE_ROLE_KEY,required"`
	SupabaseJWTSecret      string        `env:"SUPABASE_JWT_SECRET"`
	ProviderTimeout        time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"15s"`

	AdminStore  AdminStore `env:"ADMIN_STORE" envDefault:"rest"`
	DatabaseURL string     `env:"DATABASE_URL"`

	// Wheel picker
	WheelAPIKey string `env:"WHEEL_OF_NAMES_API_KEY"`
	WheelAPIURL string `env:"WHEEL_API_URL" envDefault:"https://wheelofnames.com"`

	// Password gate
	AdminPasswordSHA256 string        `env:"ADMIN_PASSWORD_SHA256"`
	LoginMaxFailures    int           `env:"LOGIN_MAX_FAILURES" envDefault:"5"`
	LoginBlockDuration  time.Duration `env:"LOGIN_BLOCK_DURATION" envDefault:"15m"`

	// Optional Redis for the shared login guard
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For / X-Real-IP. Enable only
	// behind a reverse proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SupabaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SUPABASE_URL must be an absolute URL, got %q", c.SupabaseURL)
	}
	c.SupabaseURL = strings.TrimRight(c.SupabaseURL, "/")
	c.WheelAPIURL = strings.TrimRight(c.WheelAPIURL, "/")

	switch c.AdminStore {
	case AdminStoreREST:
	case AdminStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("ADMIN_STORE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("ADMIN_STORE must be %q or %q, got %q", AdminStoreREST, AdminStorePostgres, c.AdminStore)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.LoginMaxFailures < 1 {
		return fmt.Errorf("LOGIN_MAX_FAILURES must be at least 1")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
