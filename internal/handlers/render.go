package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// render executes the named template. html/template contextual escaping is the
// output-encoding boundary: every echoed field renders as literal text.
func render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
	}
}

// renderServerError is the single generic page for faults (store unreachable,
// template failures). Internal details are never exposed.
func renderServerError(w http.ResponseWriter, err error) {
	slog.Error("server error", "error", err)
	render(w, http.StatusInternalServerError, "error.html", nil)
}
