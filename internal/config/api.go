package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/formatting"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/middleware"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROOFREADER_CORS_ENABLED",
	Origins:          "PROOFREADER_CORS_ORIGINS",
	AllowedMethods:   "PROOFREADER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROOFREADER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROOFREADER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROOFREADER_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PROOFREADER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PROOFREADER_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, upload, retention, CORS, and pagination settings.
type APIConfig struct {
	BasePath        string                `toml:"base_path"`
	MaxUploadSize   string                `toml:"max_upload_size"`
	ReportRetention string                `toml:"report_retention"`
	CORS            middleware.CORSConfig `toml:"cors"`
	Pagination      pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// ReportRetentionDuration returns ReportRetention as a time.Duration.
// Zero disables report retention sweeping.
func (c *APIConfig) ReportRetentionDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReportRetention)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.ReportRetention != "" {
		c.ReportRetention = overlay.ReportRetention
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.ReportRetention == "" {
		c.ReportRetention = "720h"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PROOFREADER_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PROOFREADER_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv("PROOFREADER_API_REPORT_RETENTION"); v != "" {
		c.ReportRetention = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if _, err := time.ParseDuration(c.ReportRetention); err != nil {
		return fmt.Errorf("invalid report_retention: %w", err)
	}
	return nil
}
