// Package config provides centralized configuration management for
// formrelay: built-in defaults, an optional YAML config file, and
// FORMRELAY_* environment variable overrides, resolved once into a
// Config struct.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix, e.g.
// FORMRELAY_MAIL_API_KEY maps to mail.api_key.
const EnvPrefix = "FORMRELAY"

// Defaults applied before file and environment resolution. The rate
// limit values are the documented product defaults: 5 submissions per
// client per 10 minutes.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("rate_limit.window", 10*time.Minute)
	v.SetDefault("rate_limit.quota", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("metrics.enabled", true)

	v.SetDefault("allowed_sites", "")
	v.SetDefault("mail.api_key", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
}

// Load resolves configuration. cfgFile may be empty, in which case
// only defaults and environment variables apply. A named config file
// that cannot be read is an error; missing optional config is not.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects values the server cannot run with. Mail and
// allowlist settings are deliberately not required here: an incomplete
// mail config surfaces as a 500 per request, and an empty allowlist
// fails closed.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.RateLimit.Window)
	}
	if c.RateLimit.Quota <= 0 {
		return fmt.Errorf("rate limit quota must be positive, got %d", c.RateLimit.Quota)
	}
	return nil
}
