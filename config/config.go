// Package config loads the service configuration from a YAML or JSON file
// with K_ prefixed environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/energydash/core/dashboard"
	"github.com/kilianp07/energydash/core/factory"
	"github.com/kilianp07/energydash/core/metrics"
)

type Config struct {
	Server    ServerConfig         `json:"server"`
	Dashboard dashboard.Config     `json:"dashboard"`
	Source    factory.ModuleConfig `json:"source"`
	Metrics   metrics.Config       `json:"metrics"`
	Logging   LoggingConfig        `json:"logging"`
	Sentry    SentryConfig         `json:"sentry"`
}

// Load reads path, applies environment overrides, defaults and validation.
// Environment variables look like K_SERVER__ADDR for server.addr.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Dashboard.SetDefaults()
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
	if c.Source.Type == "" {
		c.Source.Type = "file"
		if c.Source.Conf == nil {
			c.Source.Conf = map[string]any{"path": "data/{date}.json"}
		}
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Dashboard.Validate(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Sentry.Validate(); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	return nil
}
