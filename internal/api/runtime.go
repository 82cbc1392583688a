package api

import (
	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/internal/config"
	"github.com/JaimeStill/palmer/internal/infrastructure"
	"github.com/JaimeStill/palmer/pkg/pagination"
)

// Runtime extends Infrastructure with the loaded artifacts and API-specific
// configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Artifacts  *artifacts.Store
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure, store *artifacts.Store) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Metrics:   infra.Metrics,
		},
		Artifacts:  store,
		Pagination: cfg.API.Pagination,
	}
}
