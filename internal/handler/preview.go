package handler

import (
	"log/slog"
	"net/http"

	"github.com/duitai/purview/internal/render"
	"github.com/duitai/purview/internal/useragent"
	"github.com/go-chi/chi/v5"
)

// GetPreview renders the preview for a redirect token. Crawlers get a
// meta-tag-only document; browsers get the full page. Every failure is
// converted into best-effort HTML here: the consumer is usually an
// automated fetcher that cannot interpret error payloads.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r, chi.URLParam(r, "token"))
	if probeTokens[token] {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ctx := r.Context()
	bot := useragent.IsBot(r.UserAgent())
	shape := "page"
	if bot {
		shape = "bot"
	}

	if h.renderCache != nil {
		if doc := h.renderCache.Get(ctx, token, shape); doc != nil {
			h.writeHTML(w, http.StatusOK, doc)
			return
		}
	}

	rec, err := h.repo.GetByToken(ctx, token)
	if err != nil {
		slog.Error("preview lookup failed", "token", token, "error", err)
		h.serveFallback(w, token, bot, http.StatusServiceUnavailable)
		return
	}

	if rec == nil {
		// Unknown token still renders: social fetchers drop previews on
		// non-2xx responses, so serve the generic page with 200.
		slog.Info("no preview for token", "token", token)
		h.serveFallback(w, token, bot, http.StatusOK)
		return
	}

	page := h.renderer.FromRecord(rec, token)
	doc, err := h.renderShape(page, bot)
	if err != nil {
		slog.Error("rendering preview failed", "token", token, "error", err)
		h.serveFallback(w, token, bot, http.StatusInternalServerError)
		return
	}

	if h.renderCache != nil {
		h.renderCache.Set(ctx, token, shape, doc)
	}

	slog.Debug("preview served", "token", token, "lender", rec.Lender, "bot", bot)
	h.writeHTML(w, http.StatusOK, doc)
}

func (h *Handler) renderShape(page render.Page, bot bool) ([]byte, error) {
	if bot {
		return h.renderer.Bot(page)
	}
	return h.renderer.Browser(page)
}

// serveFallback writes the generic fallback page. Even when that render
// fails the response stays HTML: fetchers on the other end cannot
// interpret anything else.
func (h *Handler) serveFallback(w http.ResponseWriter, token string, bot bool, status int) {
	doc, err := h.renderShape(h.renderer.Fallback(token), bot)
	if err != nil {
		slog.Error("rendering fallback failed", "token", token, "error", err)
		h.writeHTML(w, http.StatusServiceUnavailable, []byte(staticFallbackDoc))
		return
	}
	h.writeHTML(w, status, doc)
}

const staticFallbackDoc = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8" /><title>Preview unavailable</title></head>
<body><p>Preview temporarily unavailable.</p></body>
</html>
`
