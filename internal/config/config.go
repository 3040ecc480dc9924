// Package config loads the service configuration.
//
// Values come from three layers, later layers winning:
//   - built-in defaults
//   - the ASTRO_DB_URL / ASTRO_DB_AUTH_TOKEN variables older deployments use
//   - QUIZDB_ prefixed environment variables
//
// A `.env` file in the working directory is loaded into the process
// environment first. Nested keys use a double underscore:
// QUIZDB_DATABASE__URL -> database.url -> Config.Database.URL.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix   = "QUIZDB_"
	ServiceName = "quizdb"
)

// Supported values of database.driver.
const (
	DriverLibSQL   = "libsql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration object.
//
// Observability is optional; a missing block gets DefaultObservabilityConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig configures the admin HTTP API. Timeouts are in seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=0"`
	// ExpiresIn is how long an idle client's limiter is kept, in seconds.
	ExpiresIn int `koanf:"expires_in" validate:"gte=0"`
}

// DatabaseConfig selects the store and tunes its pool. Lifetimes are in
// seconds.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=libsql sqlite postgres"`
	URL             string `koanf:"url" validate:"required"`
	AuthToken       string `koanf:"auth_token"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
	MigrateOnStart  bool   `koanf:"migrate_on_start"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                           "development",
		"server.port":                           "8080",
		"server.read_timeout":                   30,
		"server.write_timeout":                  30,
		"server.idle_timeout":                   60,
		"server.cors_allowed_origins":           []string{"*"},
		"server.rate_limit.enabled":             true,
		"server.rate_limit.requests_per_second": 20.0,
		"server.rate_limit.burst":               40,
		"server.rate_limit.expires_in":          180,
		"database.driver":                       DriverLibSQL,
		"database.max_open_conns":               10,
		"database.max_idle_conns":               5,
		"database.conn_max_lifetime":            300,
		"database.conn_max_idle_time":           60,
		"database.migrate_on_start":             false,

		"observability.service_name":                          ServiceName,
		"observability.environment":                           "development",
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          100 * time.Millisecond,
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.interval":                30 * time.Second,
		"observability.health_checks.timeout":                 5 * time.Second,
		"observability.health_checks.checks":                  []string{"database"},
	}
}

// astroKeys maps the legacy connection variables onto config keys.
var astroKeys = map[string]string{
	"ASTRO_DB_URL":        "database.url",
	"ASTRO_DB_AUTH_TOKEN": "database.auth_token",
}

// LoadConfig reads, validates and completes the configuration.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	err := k.Load(env.Provider("ASTRO_DB_", ".", func(s string) string {
		return astroKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load ASTRO_DB_ variables: %w", err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s variables: %w", EnvPrefix, err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
