package config

import (
	"time"

	"github.com/formrelay/formrelay/internal/form"
)

// Config is the complete application configuration, resolved once at
// startup and passed into components. Sources, lowest precedence
// first: built-in defaults, optional YAML config file, FORMRELAY_*
// environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mail      MailConfig      `mapstructure:"mail"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`

	// AllowedSites is the raw comma-separated allowlist. An empty
	// value yields an empty set and every submission is rejected.
	AllowedSites string `mapstructure:"allowed_sites"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MailConfig contains the outbound notification settings. APIKey is
// the Resend API key; From and To are the sender and recipient
// addresses. All three are required for sending.
type MailConfig struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
}

// Complete reports whether every value required for sending is set.
func (m MailConfig) Complete() bool {
	return m.APIKey != "" && m.From != "" && m.To != ""
}

// RateLimitConfig contains the sliding-window admission settings.
type RateLimitConfig struct {
	Window time.Duration `mapstructure:"window"`
	Quota  int           `mapstructure:"quota"`
}

// LoggingConfig contains logging configuration.
// Valid levels: trace, debug, info, warn, error.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Sites parses the configured allowlist.
func (c *Config) Sites() form.AllowedSites {
	return form.ParseAllowedSites(c.AllowedSites)
}
