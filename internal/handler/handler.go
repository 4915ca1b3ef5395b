package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/duitai/purview/internal/blob"
	"github.com/duitai/purview/internal/cache"
	"github.com/duitai/purview/internal/preview"
	"github.com/duitai/purview/internal/render"
)

// probeTokens are platform health probes hitting the token route; they
// get an empty 204 instead of a preview.
var probeTokens = map[string]bool{
	"":            true,
	"health":      true,
	"favicon.ico": true,
	"warmup":      true,
	"ready":       true,
}

// Handler serves the preview and image endpoints.
type Handler struct {
	repo            *preview.Repository
	renderer        *render.Renderer
	renderCache     *cache.RenderCache // nil when disabled
	store           *blob.Store        // nil when object storage is not configured
	defaultImageURL string
	cacheMaxAge     time.Duration
}

// Dependencies holds all dependencies for the Handler.
type Dependencies struct {
	Repo            *preview.Repository
	Renderer        *render.Renderer
	RenderCache     *cache.RenderCache
	Store           *blob.Store
	DefaultImageURL string
	CacheMaxAge     time.Duration
}

// New creates a new Handler with all dependencies.
func New(deps Dependencies) *Handler {
	return &Handler{
		repo:            deps.Repo,
		renderer:        deps.Renderer,
		renderCache:     deps.RenderCache,
		store:           deps.Store,
		defaultImageURL: deps.DefaultImageURL,
		cacheMaxAge:     deps.CacheMaxAge,
	}
}

// tokenFromRequest reads the token from the route, falling back to the
// ?token= and ?t= query parameters.
func tokenFromRequest(r *http.Request, routeToken string) string {
	if routeToken != "" {
		return routeToken
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	return r.URL.Query().Get("t")
}

func (h *Handler) writeHTML(w http.ResponseWriter, status int, doc []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheMaxAge.Seconds())))
	}
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}
