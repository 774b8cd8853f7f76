package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigFile is read from the working directory when present.
const ConfigFile = "config.yaml"

// MinTokenSecretLength is the shortest HS256 signing secret accepted at startup.
const MinTokenSecretLength = 32

// Config holds all configuration for coopnet.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, signing keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`
}

// AuthConfig holds bearer token configuration.
type AuthConfig struct {
	// TokenSecret signs and verifies HS256 access tokens.
	TokenSecret string `yaml:"-" env:"TOKEN_SECRET"` // Secret - not in YAML

	// TokenTTL is how long an issued access token stays valid.
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"168h"`

	// Issuer is written to and required in the iss claim.
	Issuer string `yaml:"token_issuer" env:"TOKEN_ISSUER" env-default:"coopnet"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"coopnet"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"coopnet"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`

	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `yaml:"auto_migrate" env:"AUTO_MIGRATE" env-default:"true"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// When config.yaml does not exist, configuration comes from the environment alone.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(ConfigFile); err == nil {
		if err := cleanenv.ReadConfig(ConfigFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", ConfigFile, err)
	}

	cfg.Version = version

	if err := cfg.validateAuth(); err != nil {
		return nil, fmt.Errorf("invalid auth configuration: %w", err)
	}

	return cfg, nil
}

// validateAuth ensures tokens can be signed safely.
func (c *Config) validateAuth() error {
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET must be set")
	}
	if len(c.Auth.TokenSecret) < MinTokenSecretLength {
		return fmt.Errorf("TOKEN_SECRET must be at least %d characters", MinTokenSecretLength)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// URL returns a postgres:// connection URL for pgxpool and database/sql.
// The host is rewritten for Docker when it points at the local machine.
func (c *DatabaseConfig) URL() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   ResolveHostForDocker(c.Host) + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.Database,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
