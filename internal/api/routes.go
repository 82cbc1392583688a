package api

import (
	"net/http"

	"github.com/JaimeStill/palmer/internal/config"
	"github.com/JaimeStill/palmer/internal/predictions"
	"github.com/JaimeStill/palmer/pkg/openapi"
	"github.com/JaimeStill/palmer/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	service := newServiceHandler(runtime.Artifacts, runtime.Logger, cfg.Version, cfg.API.BasePath)

	groups := []routes.Group{
		service.routes(),
		predictions.NewHandler(
			domain.Predictions,
			runtime.Logger,
			runtime.Pagination,
			domain.History,
		).Routes(),
	}

	spec := openapi.NewSpec(openapi.Info{
		Title:       cfg.API.Title,
		Version:     cfg.Version,
		Description: cfg.API.Description,
	}, cfg.API.BasePath)
	routes.Document(spec, groups...)

	serveSpec, err := spec.Handler()
	if err != nil {
		return err
	}

	groups = append(groups, routes.Group{
		Tags: []string{"Service"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/openapi.json",
				Handler: serveSpec,
				OpenAPI: &openapi.Operation{Summary: "OpenAPI document"},
			},
		},
	})

	service.endpoints = routes.Endpoints(groups...)
	routes.Register(mux, groups...)
	return nil
}
