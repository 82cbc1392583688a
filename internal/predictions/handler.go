package predictions

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/palmer/pkg/handlers"
	"github.com/JaimeStill/palmer/pkg/openapi"
	"github.com/JaimeStill/palmer/pkg/pagination"
	"github.com/JaimeStill/palmer/pkg/routes"
)

// Handler provides HTTP endpoints for prediction operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	history    bool
}

// NewHandler creates a Handler. The history endpoint is only routed when
// history is true.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, history bool) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "predictions"),
		pagination: pagination,
		history:    history,
	}
}

// Routes returns the route group definition for prediction endpoints.
func (h *Handler) Routes() routes.Group {
	group := routes.Group{
		Tags:    []string{"Predictions"},
		Schemas: h.schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/predict/{model_name}", Handler: h.Predict, OpenAPI: h.predictOp()},
			{Method: "GET", Pattern: "/models", Handler: h.Models, OpenAPI: modelsOp},
		},
	}

	if h.history {
		group.Routes = append(group.Routes, routes.Route{
			Method: "GET", Pattern: "/predictions", Handler: h.History, OpenAPI: historyOp,
		})
	}

	return group
}

// Predict classifies the JSON record in the request body with the model
// named in the path.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sys.Predict(r.Context(), r.PathValue("model_name"), r.Body)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Models lists the served model names.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{"models": h.sys.Models()})
}

// History returns a page of audited predictions filtered by query parameters.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	filters, err := FiltersFromQuery(values)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	page := pagination.PageRequestFromQuery(values, h.pagination)

	result, err := h.sys.History(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Penguin": {
			Type:        "object",
			Description: "One penguin measurement record. Extra keys are accepted and echoed.",
			Properties: map[string]*openapi.Schema{
				"island":            {Type: "string", Example: "Biscoe"},
				"sex":               {Type: "string", Example: "Male"},
				"bill_length_mm":    {Type: "number", Example: 45.2},
				"bill_depth_mm":     {Type: "number", Example: 15.8},
				"flipper_length_mm": {Type: "number", Example: 215},
				"body_mass_g":       {Type: "number", Example: 5500},
			},
			Required: []string{"island", "sex", "bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g"},
		},
		"Prediction": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"model":      {Type: "string"},
				"prediction": {Type: "string", Example: "Gentoo"},
				"input":      openapi.SchemaRef("Penguin"),
			},
			Required: []string{"model", "prediction", "input"},
		},
		"ModelList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"models": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"PredictionRecord": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"request_id":  {Type: "string"},
				"model":       {Type: "string"},
				"prediction":  {Type: "string"},
				"input":       openapi.SchemaRef("Penguin"),
				"duration_ms": {Type: "number"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"PredictionPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("PredictionRecord")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}

func (h *Handler) predictOp() *openapi.Operation {
	names := make([]any, 0)
	for _, n := range h.sys.Models() {
		names = append(names, n)
	}

	return &openapi.Operation{
		Summary:     "Predict penguin species",
		Description: "Validates and vectorizes one record, then classifies it with the named model.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("model_name", "Model to classify with", names...)},
		RequestBody: openapi.RequestBodyJSON("Penguin", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Predicted species", "Prediction"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	}
}

var modelsOp = &openapi.Operation{
	Summary: "List available models",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Model names", "ModelList"),
	},
}

var historyOp = &openapi.Operation{
	Summary: "List audited predictions",
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-based)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("sort", "string", "Comma-separated fields, prefix - for descending", false),
		openapi.QueryParam("model", "string", "Filter by model name", false),
		openapi.QueryParam("prediction", "string", "Filter by predicted species", false),
		openapi.QueryParam("since", "string", "RFC 3339 lower bound, inclusive", false),
		openapi.QueryParam("until", "string", "RFC 3339 upper bound, exclusive", false),
	},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Paginated predictions", "PredictionPage"),
		400: openapi.ResponseRef("BadRequest"),
		500: openapi.ResponseRef("InternalError"),
	},
}
