package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/hoanghai1803/postdesk/internal/auth"
	"go.uber.org/zap"
)

//go:embed templates/admin_blog.html
var templatesFS embed.FS

var adminBlogTmpl = template.Must(template.ParseFS(templatesFS, "templates/admin_blog.html"))

type adminBlogData struct {
	Allowed  bool
	Endpoint string
}

// AdminBlogPage handles GET /admin/blog. Admins get the create form, which
// submits to endpoint; everyone else gets a 403 "Unauthorized" page.
func AdminBlogPage(gate auth.Gate, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := gate.IsAdmin(r)
		if err != nil {
			zap.S().Errorw("admin check failed", "path", r.URL.Path, "error", err)
			http.Error(w, msgServerError, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if !ok {
			w.WriteHeader(http.StatusForbidden)
		}
		if err := adminBlogTmpl.Execute(w, adminBlogData{Allowed: ok, Endpoint: endpoint}); err != nil {
			zap.S().Errorw("rendering admin page", "error", err)
		}
	}
}

// Health handles GET /healthz.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
