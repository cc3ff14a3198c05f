// Package config loads the assistant's YAML configuration. API keys may
// reference environment variables with ${VAR} syntax.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure, mirroring config.yaml.
type Config struct {
	Providers      Providers `yaml:"providers"`
	RateLimit      RateLimit `yaml:"rate_limit"`
	MaxRounds      int       `yaml:"max_rounds"`
	RequestTimeout string    `yaml:"request_timeout"` // per provider attempt, e.g. "30s"
}

// Providers selects which vendor is primary and configures both.
type Providers struct {
	Primary string   `yaml:"primary"` // "openai" or "gemini"
	OpenAI  Provider `yaml:"openai"`
	Gemini  Provider `yaml:"gemini"`
}

// Provider holds one vendor's credentials and defaults.
type Provider struct {
	APIKey      string  `yaml:"api_key"` // supports ${VAR}
	BaseURL     string  `yaml:"base_url,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
}

// RateLimit configures the inbound per-key request gate.
type RateLimit struct {
	Max    int    `yaml:"max"`
	Window string `yaml:"window"` // e.g. "1m"
}

// Default returns a config with all defaults applied, for callers that
// configure providers from the environment instead of a file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Providers.OpenAI.APIKey = os.ExpandEnv(cfg.Providers.OpenAI.APIKey)
	cfg.Providers.Gemini.APIKey = os.ExpandEnv(cfg.Providers.Gemini.APIKey)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Providers.Primary == "" {
		c.Providers.Primary = "openai"
	}
	if c.MaxRounds == 0 {
		c.MaxRounds = 5
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = 60
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
}

func (c *Config) validate() error {
	switch c.Providers.Primary {
	case "openai", "gemini":
	default:
		return fmt.Errorf("providers.primary must be openai or gemini, got %q", c.Providers.Primary)
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("request_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.RateLimit.Window); err != nil {
		return fmt.Errorf("rate_limit.window: %w", err)
	}
	return nil
}

// Timeout returns the parsed per-attempt timeout.
func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// RateWindow returns the parsed rate-limit window.
func (c *Config) RateWindow() time.Duration {
	d, _ := time.ParseDuration(c.RateLimit.Window)
	return d
}
