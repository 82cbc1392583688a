package routes

import (
	"net/http"

	"github.com/JaimeStill/palmer/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler. OpenAPI is optional
// and feeds both the generated spec and the endpoint listing.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Summary returns the route's OpenAPI summary, or an empty string.
func (r Route) Summary() string {
	if r.OpenAPI == nil {
		return ""
	}
	return r.OpenAPI.Summary
}
