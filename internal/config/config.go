package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		SecureCookies bool   `yaml:"secure_cookies" env:"SERVER_SECURE_COOKIES"`
	} `yaml:"server"`

	// API describes the REST backend the front-end talks to.
	// BaseURL is the API_BASE origin; "/api" is appended by the client.
	API struct {
		BaseURL string `yaml:"base_url" env:"API_BASE"`
		Origin  string `yaml:"origin" env:"API_ORIGIN"`
	} `yaml:"api"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		FlashTTL string `yaml:"flash_ttl" env:"REDIS_FLASH_TTL"`
	} `yaml:"redis"`

	Security struct {
		CSRFKey string `yaml:"csrf_key" env:"CSRF_KEY"`
	} `yaml:"security"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Trailing slashes are dropped once here so the client can join paths blindly.
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")
	config.API.Origin = strings.TrimRight(config.API.Origin, "/")

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"

	// Empty base means "same origin as the backend", see Origin.
	config.API.BaseURL = ""
	config.API.Origin = "http://localhost:8000"

	config.Redis.DB = 0
	config.Redis.FlashTTL = "5m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %w", err)
	}

	if config.API.BaseURL == "" && config.API.Origin == "" {
		return fmt.Errorf("either api base_url or api origin is required")
	}

	if config.API.BaseURL != "" {
		if err := validateAbsoluteURL(config.API.BaseURL); err != nil {
			return fmt.Errorf("invalid api base_url: %w", err)
		}
	}

	if config.API.Origin != "" {
		if err := validateAbsoluteURL(config.API.Origin); err != nil {
			return fmt.Errorf("invalid api origin: %w", err)
		}
	}

	if _, err := time.ParseDuration(config.Redis.FlashTTL); err != nil {
		return fmt.Errorf("invalid redis flash_ttl format: %w", err)
	}

	if strings.ToLower(config.Server.Mode) == "production" && len(config.Security.CSRFKey) < 32 {
		return fmt.Errorf("csrf_key of at least 32 bytes is required in production")
	}

	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// APIBase returns the origin the HTTP JSON client should prefix to "/api".
// An empty API_BASE falls back to the configured origin.
func (c *Config) APIBase() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return c.API.Origin
}

// RedisEnabled reports whether flash notifications should be kept in Redis.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}
