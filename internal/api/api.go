// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/internal/config"
	"github.com/JaimeStill/palmer/internal/infrastructure"
	"github.com/JaimeStill/palmer/pkg/middleware"
	"github.com/JaimeStill/palmer/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// store must hold the fully loaded artifacts.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, store *artifacts.Store) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra, store)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recovery(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.MaxBody(cfg.API.MaxBodySizeBytes()))

	return m, nil
}
