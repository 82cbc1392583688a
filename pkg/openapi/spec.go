// Package openapi builds the OpenAPI 3.1 document describing the HTTP API.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Version is the OpenAPI release the document conforms to.
const Version = "3.1.0"

// Spec is the root of an OpenAPI document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec starts a document for an API module mounted at basePath. Paths
// are documented relative to the module, so a base path other than "/"
// becomes the document's only server.
func NewSpec(info Info, basePath string) *Spec {
	s := &Spec{
		OpenAPI:    Version,
		Info:       &info,
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}

	if basePath != "" && basePath != "/" {
		s.Servers = []*Server{{URL: basePath}}
	}
	return s
}

// Handler serializes the document once and returns a handler serving the
// bytes. Changes made to s afterwards are not served.
func (s *Spec) Handler() (http.HandlerFunc, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}, nil
}
