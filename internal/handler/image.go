package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Images barely change once provisioned, and messengers cache them
// aggressively anyway.
const imageCacheControl = "public, max-age=604800, immutable"

// ServeImage resolves a token's hero image and streams it from object
// storage. When storage is not configured, or the image lives
// elsewhere, the client is redirected to the image URL instead.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r, chi.URLParam(r, "token"))
	if probeTokens[token] {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ctx := r.Context()

	rec, err := h.repo.GetByToken(ctx, token)
	if err != nil {
		slog.Error("image lookup failed", "token", token, "error", err)
		http.Error(w, "image temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	imageURL := h.defaultImageURL
	if rec != nil && rec.OGImageURL != "" {
		imageURL = rec.OGImageURL
	}

	if h.store == nil || !h.store.Holds(imageURL) {
		http.Redirect(w, r, imageURL, http.StatusFound)
		return
	}

	obj, contentType, err := h.store.Fetch(ctx, imageURL)
	if err != nil {
		// Let the client fetch the blob directly rather than failing.
		slog.Warn("streaming image failed, redirecting", "token", token, "error", err)
		http.Redirect(w, r, imageURL, http.StatusFound)
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", imageCacheControl)
	if _, err := io.Copy(w, obj); err != nil {
		slog.Debug("image copy interrupted", "token", token, "error", err)
	}
}
