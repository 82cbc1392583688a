// Package scalar serves the Scalar API reference UI for the service's
// OpenAPI document.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/palmer/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

var tmpl = template.Must(template.ParseFS(staticFS, "index.html"))

// NewModule creates a module at prefix that renders the reference UI for
// the OpenAPI document served at specURL.
func NewModule(prefix, title, specURL string) *module.Module {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, map[string]string{
			"Title":   title,
			"SpecURL": specURL,
		})
	})

	return module.New(prefix, mux)
}
