// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, storage, optional database, metrics)
// that domain systems require.
package infrastructure

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JaimeStill/palmer/internal/config"
	"github.com/JaimeStill/palmer/pkg/database"
	"github.com/JaimeStill/palmer/pkg/lifecycle"
	"github.com/JaimeStill/palmer/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil when the audit database is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Metrics   *prometheus.Registry

	logOutput io.Closer
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger, logOutput := NewLogger(&cfg.Logging)

	infra, err := assemble(cfg, logger)
	if err != nil {
		if logOutput != nil {
			logOutput.Close()
		}
		return nil, err
	}

	infra.logOutput = logOutput
	return infra, nil
}

func assemble(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil && !errors.Is(err, database.ErrDisabled) {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Metrics:   registry,
	}, nil
}

// Start registers the database, when enabled, with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	return nil
}

// Close releases the log file. Call it once shutdown has completed.
func (i *Infrastructure) Close() error {
	if i.logOutput == nil {
		return nil
	}
	return i.logOutput.Close()
}
