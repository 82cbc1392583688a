package main

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/palmer/internal/api"
	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/internal/config"
	"github.com/JaimeStill/palmer/internal/infrastructure"
	"github.com/JaimeStill/palmer/pkg/middleware"
	"github.com/JaimeStill/palmer/pkg/module"
	"github.com/JaimeStill/palmer/web/scalar"
)

// Modules holds every module mounted on the router.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

// NewModules builds the API module over the loaded artifacts and the
// reference UI for its OpenAPI document.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config, store *artifacts.Store) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra, store)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule(
		"/docs",
		cfg.API.Title,
		path.Join(cfg.API.BasePath, "openapi.json"),
	)
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

// Mount registers every module with router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}))

	router.HandleNative("GET /metrics", promhttp.HandlerFor(infra.Metrics, promhttp.HandlerOpts{}))

	return router
}
