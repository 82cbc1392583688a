package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/palmer/pkg/formatting"
	"github.com/JaimeStill/palmer/pkg/middleware"
	"github.com/JaimeStill/palmer/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PALMER_CORS_ENABLED",
	Origins:          "PALMER_CORS_ORIGINS",
	AllowedMethods:   "PALMER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PALMER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PALMER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PALMER_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PALMER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PALMER_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request limits, CORS, and pagination
// settings. Title and Description head the OpenAPI document and the
// reference UI.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	Title       string                `toml:"title"`
	Description string                `toml:"description"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxBodySize)
	return size
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
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
	if c.Title == "" {
		c.Title = "Palmer API"
	}
	if c.Description == "" {
		c.Description = "Classifies Palmer penguins into Adelie, Chinstrap or Gentoo with one of four fitted models."
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PALMER_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PALMER_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv("PALMER_API_TITLE"); v != "" {
		c.Title = v
	}
	if v := os.Getenv("PALMER_API_DESCRIPTION"); v != "" {
		c.Description = v
	}
}

func (c *APIConfig) validate() error {
	if c.BasePath != "/" && (!strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1) {
		return fmt.Errorf("base_path must be / or a single-level prefix: %s", c.BasePath)
	}
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive: %s", c.MaxBodySize)
	}
	return nil
}
