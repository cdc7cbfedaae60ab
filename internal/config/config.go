// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before any
	// variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix OED_.
	Keys are lowercased, the prefix is removed, and a double underscore
	marks nesting:

	  OED_SERVER__PORT              -> server.port       -> Config.Server.Port
	  OED_DATABASE__MAX_OPEN_CONNS  -> database.max_open_conns
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "OED_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required"`
	RequestTimeout     int             `koanf:"request_timeout" validate:"gte=0"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-IP request limiter.
// A zero Rate disables limiting.
type RateLimitConfig struct {
	Rate      float64 `koanf:"rate" validate:"gte=0"`
	Burst     int     `koanf:"burst" validate:"gte=0"`
	ExpiresIn int     `koanf:"expires_in" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	QueryTimeout    int    `koanf:"query_timeout" validate:"gte=0"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig holds credential-hashing settings.
type AuthConfig struct {
	// BcryptCost is the work factor for password hashes.
	BcryptCost int `koanf:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// IntegrationConfig stores third-party API credentials.
//
// An empty ResendAPIKey disables outgoing email.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// Defaults applied when the corresponding variables are unset.
const (
	DefaultRequestTimeout = 30
	DefaultQueryTimeout   = 5
	DefaultBcryptCost     = 10
	DefaultEmailFrom      = "Energy Dashboard <onboarding@resend.dev>"
	ServiceName           = "oed-server"
)

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Database.QueryTimeout == 0 {
		c.Database.QueryTimeout = DefaultQueryTimeout
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = DefaultBcryptCost
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = DefaultEmailFrom
	}
}
