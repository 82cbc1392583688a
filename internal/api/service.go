package api

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/pkg/handlers"
	"github.com/JaimeStill/palmer/pkg/openapi"
	"github.com/JaimeStill/palmer/pkg/routes"
)

const serviceName = "Penguins Classification API"

type serviceHandler struct {
	store     *artifacts.Store
	logger    *slog.Logger
	version   string
	basePath  string
	endpoints []routes.Endpoint
}

func newServiceHandler(store *artifacts.Store, logger *slog.Logger, version, basePath string) *serviceHandler {
	return &serviceHandler{
		store:    store,
		logger:   logger.With("handler", "service"),
		version:  version,
		basePath: basePath,
	}
}

func (h *serviceHandler) routes() routes.Group {
	return routes.Group{
		Tags:    []string{"Service"},
		Schemas: serviceSchemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.index, OpenAPI: indexOp},
			{Method: "GET", Pattern: "/health", Handler: h.health, OpenAPI: healthOp},
		},
	}
}

func (h *serviceHandler) index(w http.ResponseWriter, r *http.Request) {
	endpoints := make(map[string]string, len(h.endpoints))
	for _, e := range h.endpoints {
		endpoints[e.Method+" "+path.Join(h.basePath, e.Path)] = e.Summary
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"name":             serviceName,
		"version":          h.version,
		"endpoints":        endpoints,
		"available_models": h.store.Names(),
	})
}

func (h *serviceHandler) health(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"status":               "ok",
		"models_loaded":        h.store.ModelCount(),
		"preprocessors_loaded": h.store.PreprocessorCount(),
	})
}

var serviceSchemas = map[string]*openapi.Schema{
	"Health": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"status":               {Type: "string", Example: "ok"},
			"models_loaded":        {Type: "integer", Example: 4},
			"preprocessors_loaded": {Type: "integer", Example: 2},
		},
	},
	"ServiceInfo": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":             {Type: "string"},
			"version":          {Type: "string"},
			"endpoints":        {Type: "object", Description: "Route (method and path) to summary"},
			"available_models": {Type: "array", Items: &openapi.Schema{Type: "string"}},
		},
	},
}

var indexOp = &openapi.Operation{
	Summary: "Describe the service",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Service name, version, endpoints and models", "ServiceInfo"),
	},
}

var healthOp = &openapi.Operation{
	Summary: "Report loaded artifacts",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Service health", "Health"),
	},
}
