package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/internal/config"
	"github.com/JaimeStill/palmer/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
	logger  *slog.Logger
}

// NewServer loads every artifact before any module is built, so the
// listener never starts without a complete model set.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	store, err := loadArtifacts(cfg, infra)
	if err != nil {
		infra.Close()
		return nil, err
	}

	modules, err := NewModules(infra, cfg, store)
	if err != nil {
		infra.Close()
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"models", store.Names(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, cfg.ShutdownTimeoutDuration(), router, infra.Logger),
		logger:  infra.Logger,
	}, nil
}

func loadArtifacts(cfg *config.Config, infra *infrastructure.Infrastructure) (*artifacts.Store, error) {
	ctx, cancel := context.WithTimeout(infra.Lifecycle.Context(), cfg.Artifacts.LoadTimeoutDuration())
	defer cancel()

	store, err := artifacts.Load(ctx, infra.Storage, &cfg.Artifacts, infra.Logger)
	if err != nil {
		return nil, fmt.Errorf("load artifacts from %s: %w", infra.Storage.Location(), err)
	}
	return store, nil
}

// Start registers infrastructure hooks and begins listening.
func (s *Server) Start() error {
	s.logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.logger.Error("startup failed, service will not report ready", "error", err)
			return
		}
		s.logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown cancels the lifecycle context and waits for shutdown hooks.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

// Close releases the log output.
func (s *Server) Close() error {
	return s.infra.Close()
}
