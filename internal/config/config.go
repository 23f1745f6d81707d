// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
)

// envPrefix is prepended to every variable name in Config's tags.
const envPrefix = "OPENEDX_PLUGIN_"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr  string              `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	DBPath      string              `env:"DB_PATH" envDefault:"openedx_plugin.db"`
	ProjectType plugin.ProjectType  `env:"PROJECT_TYPE" envDefault:"lms"`
	Environment plugin.SettingsType `env:"ENVIRONMENT" envDefault:"production"`
	LogLevel    string              `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string              `env:"LOG_FORMAT" envDefault:"text"`

	// ReleaseRepo ("owner/repo") enables the startup release check when set.
	ReleaseRepo    string        `env:"RELEASE_REPO"`
	GitHubToken    string        `env:"GITHUB_TOKEN"`
	ReleaseTimeout time.Duration `env:"RELEASE_TIMEOUT" envDefault:"5s"`
}

// Load reads configuration from OPENEDX_PLUGIN_* environment variables and
// returns a validated Config. Every variable is optional.
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.ProjectType.Valid() {
		return fmt.Errorf("%sPROJECT_TYPE has invalid value %q: expected lms or cms", envPrefix, c.ProjectType)
	}
	if !c.Environment.Valid() {
		return fmt.Errorf("%sENVIRONMENT has invalid value %q: expected common, production, devstack or test", envPrefix, c.Environment)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%sLOG_FORMAT has invalid value %q: expected text or json", envPrefix, c.LogFormat)
	}
	if c.ReleaseTimeout <= 0 {
		return fmt.Errorf("%sRELEASE_TIMEOUT must be positive, got %s", envPrefix, c.ReleaseTimeout)
	}
	return nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%sLOG_LEVEL has invalid value %q: %w", envPrefix, c.LogLevel, err)
	}
	return level, nil
}

// ReleaseCheckEnabled reports whether the startup release check should run.
func (c *Config) ReleaseCheckEnabled() bool {
	return c.ReleaseRepo != ""
}
