// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/letterdrop/letterdrop/internal/model"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Public base URL of this application, used to build confirmation
	// links (e.g. https://news.letterdrop.io)
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Email gateway
	EmailBaseURL   string        `env:"EMAIL_BASE_URL,required"`
	EmailSender    string        `env:"EMAIL_SENDER,required"`
	EmailAuthToken string        `env:"EMAIL_AUTH_TOKEN,required"`
	EmailTimeout   time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SenderEmail returns the validated sender address.
func (c *Config) SenderEmail() (model.SubscriberEmail, error) {
	return model.ParseSubscriberEmail(c.EmailSender)
}

// Validate checks the parts of the configuration that env tags cannot:
// URL shapes, the sender address, the timeout. Called once at startup;
// components receive the already-validated struct.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"BASE_URL":       c.BaseURL,
		"EMAIL_BASE_URL": c.EmailBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s %q is not an absolute URL", name, raw)
		}
	}

	if _, err := c.SenderEmail(); err != nil {
		return fmt.Errorf("EMAIL_SENDER: %w", err)
	}

	if c.EmailTimeout <= 0 {
		return fmt.Errorf("EMAIL_TIMEOUT must be positive, got %s", c.EmailTimeout)
	}

	return nil
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
