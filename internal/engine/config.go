package engine

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds connection parameters for the proofreading engine.
type Config struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout string `toml:"request_timeout"`
	UploadTimeout  string `toml:"upload_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL        string
	RequestTimeout string
	UploadTimeout  string
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *Config) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// UploadTimeoutDuration returns UploadTimeout as a time.Duration.
func (c *Config) UploadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.UploadTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.UploadTimeout != "" {
		c.UploadTimeout = overlay.UploadTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:5000/api"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "2m"
	}
	if c.UploadTimeout == "" {
		c.UploadTimeout = "5m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.RequestTimeout != "" {
		if v := os.Getenv(env.RequestTimeout); v != "" {
			c.RequestTimeout = v
		}
	}
	if env.UploadTimeout != "" {
		if v := os.Getenv(env.UploadTimeout); v != "" {
			c.UploadTimeout = v
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.UploadTimeout); err != nil {
		return fmt.Errorf("invalid upload_timeout: %w", err)
	}
	return nil
}
