package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/palmer/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
	Schemas  map[string]*openapi.Schema
}

// Endpoint is a flattened view of a registered route.
type Endpoint struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	walk(groups, func(prefix string, _ Group, route Route) {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	})
}

// Endpoints lists every route in the given groups in declaration order.
func Endpoints(groups ...Group) []Endpoint {
	var endpoints []Endpoint
	walk(groups, func(prefix string, _ Group, route Route) {
		endpoints = append(endpoints, Endpoint{
			Method:  route.Method,
			Path:    specPath(prefix + route.Pattern),
			Summary: route.Summary(),
		})
	})
	return endpoints
}

// Document adds the operations and schemas of the given groups to spec.
// Paths are module-relative; the module prefix belongs in spec.Servers.
func Document(spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		documentSchemas(spec, g)
	}

	walk(groups, func(prefix string, g Group, route Route) {
		if route.OpenAPI == nil {
			return
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		path := specPath(prefix + route.Pattern)
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch route.Method {
		case http.MethodGet:
			item.Get = &op
		case http.MethodPost:
			item.Post = &op
		}
	})
}

func documentSchemas(spec *openapi.Spec, g Group) {
	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}
	for _, child := range g.Children {
		documentSchemas(spec, child)
	}
}

func walk(groups []Group, fn func(prefix string, g Group, route Route)) {
	for _, g := range groups {
		walkGroup("", g, fn)
	}
}

func walkGroup(parentPrefix string, g Group, fn func(string, Group, Route)) {
	fullPrefix := parentPrefix + g.Prefix
	for _, route := range g.Routes {
		fn(fullPrefix, g, route)
	}
	for _, child := range g.Children {
		walkGroup(fullPrefix, child, fn)
	}
}

// specPath drops ServeMux-only syntax such as the {$} anchor and
// trailing wildcards so the path reads as a plain URL template.
func specPath(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "{$}", "")
	pattern = strings.ReplaceAll(pattern, "...}", "}")
	if pattern == "" {
		return "/"
	}
	return pattern
}
