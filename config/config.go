// Package config loads walletauth settings from flags, environment and an
// optional config file.
package config

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 21/12/2025
 * Time: 08:55
 */

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. WALLETAUTH_ADDR.
const EnvPrefix = "WALLETAUTH"

// Config is the full set of settings.
type Config struct {
	Addr         string        `mapstructure:"addr"`
	DataDir      string        `mapstructure:"data_dir"`
	Profile      string        `mapstructure:"profile"`
	Domain       string        `mapstructure:"domain"`
	ChallengeTTL time.Duration `mapstructure:"challenge_ttl"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"addr":          ":8080",
	"data_dir":      "./tmp",
	"profile":       "default",
	"domain":        "aasdf.app",
	"challenge_ttl": 5 * time.Minute,
	"session_ttl":   24 * time.Hour,
	"log_level":     "info",
	"log_format":    "console",
}

// NewViper returns a viper instance with defaults and environment binding set up.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if v has one set) and returns the validated settings.
func Load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for consistency.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if cfg.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if cfg.Profile == "" {
		errs = append(errs, errors.New("profile is required"))
	}
	if cfg.ChallengeTTL <= 0 {
		errs = append(errs, fmt.Errorf("challenge_ttl must be positive, got %s", cfg.ChallengeTTL))
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", cfg.SessionTTL))
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", cfg.LogFormat))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
