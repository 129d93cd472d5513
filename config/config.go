// Package config handles loading and managing application configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment names for the payment processor credentials.
const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Payments PaymentsConfig
	DB       DBConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`
}

// PaymentsConfig holds Mercado Pago configuration.
type PaymentsConfig struct {
	Environment         string        `envconfig:"MP_ENVIRONMENT" default:"sandbox"`
	AccessTokenTest     string        `envconfig:"MP_ACCESS_TOKEN_TEST"`
	AccessTokenProd     string        `envconfig:"MP_ACCESS_TOKEN_PROD"`
	BaseURL             string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	Currency            string        `envconfig:"MP_CURRENCY" default:"MXN"`
	StatementDescriptor string        `envconfig:"MP_STATEMENT_DESCRIPTOR" default:"HOYO EN UNO"`
	CheckoutTimeout     time.Duration `envconfig:"MP_CHECKOUT_TIMEOUT" default:"5s"`
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"require"`
}

// AccessToken returns the processor credential for the active environment.
func (p PaymentsConfig) AccessToken() string {
	if p.Environment == EnvProduction {
		return p.AccessTokenProd
	}
	return p.AccessTokenTest
}

// PublicBaseURL returns the externally visible base URL without a trailing
// slash, ready for redirect-URL concatenation.
func (p PaymentsConfig) PublicBaseURL() string {
	return strings.TrimRight(p.BaseURL, "/")
}

// BuildDSN assembles the PostgreSQL connection string.
func (c DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable for the chosen
// environment.
func (c *Config) Validate() error {
	switch c.Payments.Environment {
	case EnvSandbox, EnvProduction:
	default:
		return fmt.Errorf("MP_ENVIRONMENT must be %q or %q, got %q",
			EnvSandbox, EnvProduction, c.Payments.Environment)
	}
	if c.Payments.AccessToken() == "" {
		return fmt.Errorf("no Mercado Pago access token configured for environment %q",
			c.Payments.Environment)
	}
	return nil
}
