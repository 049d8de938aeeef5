package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/postdesk/internal/api/handlers"
	"github.com/hoanghai1803/postdesk/internal/auth"
	"github.com/hoanghai1803/postdesk/internal/config"
)

// CreatePostPath is where the create endpoint is mounted.
const CreatePostPath = "/api/admin/blog"

// NewRouter creates the HTTP router with the admin API, the admin page and
// the health probe.
func NewRouter(gate auth.Gate, creator handlers.PostCreator, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(Recovery)
	if cfg.Server.AllowedOrigin != "" {
		r.Use(CORS(cfg.Server.AllowedOrigin))
	}

	r.Get("/healthz", handlers.Health())

	r.Route("/api/admin", func(api chi.Router) {
		api.Post("/blog", handlers.CreatePost(gate, creator))
	})

	r.Get("/admin/blog", handlers.AdminBlogPage(gate, CreatePostPath))

	return r
}
