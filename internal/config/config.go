// Package config loads the service configuration from TOML files and
// PALMER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/pkg/database"
	"github.com/JaimeStill/palmer/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPalmerEnv             = "PALMER_ENV"
	EnvPalmerConfigDir       = "PALMER_CONFIG_DIR"
	EnvPalmerShutdownTimeout = "PALMER_SHUTDOWN_TIMEOUT"
	EnvPalmerVersion         = "PALMER_VERSION"
)

var databaseEnv = &database.Env{
	Enabled:         "PALMER_DB_ENABLED",
	DSN:             "PALMER_DB_DSN",
	Host:            "PALMER_DB_HOST",
	Port:            "PALMER_DB_PORT",
	Name:            "PALMER_DB_NAME",
	User:            "PALMER_DB_USER",
	Password:        "PALMER_DB_PASSWORD",
	SSLMode:         "PALMER_DB_SSL_MODE",
	MaxOpenConns:    "PALMER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PALMER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PALMER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PALMER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "PALMER_STORAGE_PROVIDER",
	Path:             "PALMER_STORAGE_PATH",
	ContainerName:    "PALMER_STORAGE_CONTAINER_NAME",
	ConnectionString: "PALMER_STORAGE_CONNECTION_STRING",
}

var artifactsEnv = &artifacts.Env{
	LogisticRegression: "PALMER_ARTIFACTS_LOGISTIC_REGRESSION",
	SVM:                "PALMER_ARTIFACTS_SVM",
	DecisionTree:       "PALMER_ARTIFACTS_DECISION_TREE",
	KNN:                "PALMER_ARTIFACTS_KNN",
	Encoder:            "PALMER_ARTIFACTS_ENCODER",
	Scaler:             "PALMER_ARTIFACTS_SCALER",
	LoadTimeout:        "PALMER_ARTIFACTS_LOAD_TIMEOUT",
}

// Config is the root configuration for the Palmer service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Logging         LoggingConfig    `toml:"logging"`
	Storage         storage.Config   `toml:"storage"`
	Artifacts       artifacts.Config `toml:"artifacts"`
	Database        database.Config  `toml:"database"`
	API             APIConfig        `toml:"api"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the PALMER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPalmerEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml from PALMER_CONFIG_DIR (default: the working
// directory) if present, applies the config.<PALMER_ENV>.toml overlay, and
// finalizes all values. Without any file, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadDir(os.Getenv(EnvPalmerConfigDir))
}

// LoadDir is Load with an explicit config directory.
func LoadDir(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.Artifacts.Merge(&overlay.Artifacts)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Artifacts.Finalize(artifactsEnv); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPalmerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPalmerVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive: %s", c.ShutdownTimeout)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvPalmerEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
