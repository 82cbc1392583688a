package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/palmer/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5001", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, config.LogFormatText, cfg.Logging.Format)
	assert.True(t, cfg.Logging.CompressRotated())
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "svm.json", cfg.Artifacts.SVM)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "/", cfg.API.BasePath)
	assert.Equal(t, int64(64*1024), cfg.API.MaxBodySizeBytes())
	assert.Equal(t, 25, cfg.API.Pagination.DefaultPageSize)
	assert.Equal(t, "Palmer API", cfg.API.Title)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeoutDuration())
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeoutDuration())
}

func TestLoadBaseAndOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, `
version = "1.2.0"

[server]
port = 6000

[logging]
level = "debug"

[artifacts]
knn = "models/knn-v2.json"

[api]
max_body_size = "1MB"
`)
	writeFile(t, dir, "config.prod.toml", `
[server]
port = 7000

[logging]
format = "json"
compress = false
`)
	t.Setenv(config.EnvPalmerEnv, "prod")

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
	assert.Equal(t, config.LogFormatJSON, cfg.Logging.Format)
	assert.False(t, cfg.Logging.CompressRotated())
	assert.Equal(t, "models/knn-v2.json", cfg.Artifacts.KNN)
	assert.Equal(t, "svm.json", cfg.Artifacts.SVM)
	assert.Equal(t, int64(1024*1024), cfg.API.MaxBodySizeBytes())
	assert.Equal(t, "prod", cfg.Env())
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, `
[server]
port = 6000
`)

	t.Setenv("PALMER_SERVER_PORT", "9090")
	t.Setenv("PALMER_LOG_LEVEL", "warn")
	t.Setenv("PALMER_LOG_MAX_SIZE", "10")
	t.Setenv("PALMER_STORAGE_PATH", "/srv/models")
	t.Setenv("PALMER_ARTIFACTS_LOAD_TIMEOUT", "5s")
	t.Setenv("PALMER_API_MAX_BODY_SIZE", "2KB")
	t.Setenv("PALMER_VERSION", "9.9.9")
	t.Setenv("PALMER_SERVER_IDLE_TIMEOUT", "5m")
	t.Setenv("PALMER_API_TITLE", "Penguins")

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, slog.LevelWarn, cfg.Logging.SlogLevel())
	assert.Equal(t, 10, cfg.Logging.MaxSize)
	assert.Equal(t, "/srv/models", cfg.Storage.Path)
	assert.Equal(t, 5*time.Second, cfg.Artifacts.LoadTimeoutDuration())
	assert.Equal(t, int64(2048), cfg.API.MaxBodySizeBytes())
	assert.Equal(t, "9.9.9", cfg.Version)
	assert.Equal(t, 5*time.Minute, cfg.Server.IdleTimeoutDuration())
	assert.Equal(t, "Penguins", cfg.API.Title)
}

func TestLoadMissingOverlayIgnored(t *testing.T) {
	t.Setenv(config.EnvPalmerEnv, "staging")

	_, err := config.LoadDir(t.TempDir())
	assert.NoError(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `[server`},
		{"bad port", "[server]\nport = 70000"},
		{"bad idle timeout", "[server]\nidle_timeout = \"forever\""},
		{"zero write timeout", "[server]\nwrite_timeout = \"0s\""},
		{"bad log level", "[logging]\nlevel = \"loud\""},
		{"bad log format", "[logging]\nformat = \"xml\""},
		{"bad shutdown timeout", `shutdown_timeout = "soon"`},
		{"bad body size", "[api]\nmax_body_size = \"lots\""},
		{"nested base path", "[api]\nbase_path = \"/api/v1\""},
		{"bad storage provider", "[storage]\nprovider = \"ftp\""},
		{"duplicate artifact keys", "[artifacts]\nknn = \"svm.json\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, config.BaseConfigFile, tt.content)

			_, err := config.LoadDir(dir)
			assert.Error(t, err)
		})
	}
}

func TestServerAddrAndMerge(t *testing.T) {
	base := config.ServerConfig{Host: "::1", Port: 5001, ReadTimeout: "15s", IdleTimeout: "120s"}
	base.Merge(&config.ServerConfig{Port: 6000, IdleTimeout: "10s"})

	assert.Equal(t, "[::1]:6000", base.Addr())
	assert.Equal(t, "15s", base.ReadTimeout)
	assert.Equal(t, "10s", base.IdleTimeout)
}

func TestLoggingMergeKeepsBase(t *testing.T) {
	base := config.LoggingConfig{Level: "info", File: "/var/log/palmer.log", MaxSize: 50}
	base.Merge(&config.LoggingConfig{Level: "debug"})

	assert.Equal(t, "debug", base.Level)
	assert.Equal(t, "/var/log/palmer.log", base.File)
	assert.Equal(t, 50, base.MaxSize)
}
