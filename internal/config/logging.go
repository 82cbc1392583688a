package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

const (
	EnvLogLevel      = "PALMER_LOG_LEVEL"
	EnvLogFormat     = "PALMER_LOG_FORMAT"
	EnvLogFile       = "PALMER_LOG_FILE"
	EnvLogMaxSize    = "PALMER_LOG_MAX_SIZE"
	EnvLogMaxBackups = "PALMER_LOG_MAX_BACKUPS"
	EnvLogMaxAge     = "PALMER_LOG_MAX_AGE"
	EnvLogCompress   = "PALMER_LOG_COMPRESS"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LoggingConfig selects the log level, format and destination. An empty
// File logs to stderr; otherwise the file is rotated at MaxSize megabytes.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   *bool  `toml:"compress"`
}

// SlogLevel returns Level as a slog.Level.
func (c *LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	level.UnmarshalText([]byte(c.Level))
	return level
}

// CompressRotated reports whether rotated files are gzipped.
func (c *LoggingConfig) CompressRotated() bool {
	return c.Compress != nil && *c.Compress
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LoggingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.MaxSize != 0 {
		c.MaxSize = overlay.MaxSize
	}
	if overlay.MaxBackups != 0 {
		c.MaxBackups = overlay.MaxBackups
	}
	if overlay.MaxAge != 0 {
		c.MaxAge = overlay.MaxAge
	}
	if overlay.Compress != nil {
		c.Compress = overlay.Compress
	}
}

func (c *LoggingConfig) loadDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = LogFormatText
	}
	if c.MaxSize == 0 {
		c.MaxSize = 100
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 3
	}
	if c.MaxAge == 0 {
		c.MaxAge = 28
	}
	if c.Compress == nil {
		compress := true
		c.Compress = &compress
	}
}

func (c *LoggingConfig) loadEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.File = v
	}
	for env, dst := range map[string]*int{
		EnvLogMaxSize:    &c.MaxSize,
		EnvLogMaxBackups: &c.MaxBackups,
		EnvLogMaxAge:     &c.MaxAge,
	} {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	if v := os.Getenv(EnvLogCompress); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Compress = &b
		}
	}
}

func (c *LoggingConfig) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid level %q: %w", c.Level, err)
	}
	if c.Format != LogFormatText && c.Format != LogFormatJSON {
		return fmt.Errorf("invalid format %q: expected %s or %s", c.Format, LogFormatText, LogFormatJSON)
	}
	if c.MaxSize < 1 {
		return fmt.Errorf("max_size must be positive: %d", c.MaxSize)
	}
	if c.MaxBackups < 0 || c.MaxAge < 0 {
		return fmt.Errorf("max_backups and max_age cannot be negative")
	}
	return nil
}
