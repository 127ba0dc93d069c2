package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Keyed news API credential. Empty is valid and disables the keyed path.
	NewsAPIKey string `json:"-" yaml:"news_api_key"`

	HTTPTimeout     time.Duration `json:"http_timeout" yaml:"http_timeout"`
	UserAgent       string        `json:"user_agent" yaml:"user_agent"`
	RefreshInterval time.Duration `json:"refresh_interval" yaml:"refresh_interval"`

	LogLevel       string `json:"log_level" yaml:"log_level"`
	LogFormat      string `json:"log_format" yaml:"log_format"`
	TracingEnabled bool   `json:"tracing_enabled" yaml:"tracing_enabled"`
	Debug          bool   `json:"debug" yaml:"debug"`
}

func defaults() *Config {
	return &Config{
		HTTPTimeout:     10 * time.Second,
		UserAgent:       "Arandu/1.0 (+market-intelligence)",
		RefreshInterval: 60 * time.Second,

		LogLevel:       "info",
		LogFormat:      "console",
		TracingEnabled: false,
		Debug:          false,
	}
}

func DefaultConfig() *Config {
	cfg := defaults()

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return cfg
}

// LoadFile reads a YAML config file over the defaults. Environment variables
// still take precedence over the file.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.NewsAPIKey = strings.TrimSpace(cfg.NewsAPIKey)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("NEWSAPI_KEY"); val != "" {
		c.NewsAPIKey = strings.TrimSpace(val)
	}
	if val := os.Getenv("ARANDU_USER_AGENT"); val != "" {
		c.UserAgent = val
	}

	if val := os.Getenv("ARANDU_HTTP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.HTTPTimeout = d
		}
	}
	if val := os.Getenv("ARANDU_REFRESH_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.RefreshInterval = d
		}
	}

	if val := os.Getenv("ARANDU_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
	}
	if val := os.Getenv("ARANDU_LOG_FORMAT"); val != "" {
		c.LogFormat = strings.ToLower(val)
	}

	if val := os.Getenv("ARANDU_TRACING"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.TracingEnabled = enabled
		}
	}
	if val := os.Getenv("ARANDU_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format '%s': must be json or console", c.LogFormat)
	}
	return nil
}

// HasNewsAPIKey reports whether the keyed news path can be used.
func (c *Config) HasNewsAPIKey() bool {
	return strings.TrimSpace(c.NewsAPIKey) != ""
}
