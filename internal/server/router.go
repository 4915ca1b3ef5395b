package server

import (
	"net/http"

	"github.com/duitai/purview/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates the HTTP router with all routes registered.
func NewRouter(h *handler.Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         86400,
		}))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Anonymous preview routes. The bare path variants keep old links
	// working that pass the token as a query parameter.
	r.Route("/api", func(r chi.Router) {
		r.Get("/purview-preview/{token}", h.GetPreview)
		r.Get("/purview-preview", h.GetPreview)
		r.Get("/purview-image/{token}", h.ServeImage)
		r.Get("/purview-image", h.ServeImage)
	})

	return r
}
