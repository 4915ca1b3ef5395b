package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/duitai/purview/internal/preview"
	"github.com/duitai/purview/internal/render"
	"github.com/duitai/purview/internal/testutil"
	"github.com/go-chi/chi/v5"
)

const (
	botUA     = "facebookexternalhit/1.1"
	browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

func testHandler(t *testing.T) (*Handler, *sql.DB) {
	t.Helper()

	db := testutil.TestDB(t)
	h := New(Dependencies{
		Repo: preview.NewRepository(db),
		Renderer: render.New(render.Options{
			PublicBaseURL:     "https://r.duitai.in",
			DefaultOGImageURL: "https://r.duitai.in/static/default-og.png",
			DefaultThemeColor: "#0047AB",
			CTAPathPrefix:     "DUITAI",
		}),
		DefaultImageURL: "https://r.duitai.in/static/default-og.png",
		CacheMaxAge:     60 * time.Second,
	})
	return h, db
}

func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/purview-preview/{token}", h.GetPreview)
	r.Get("/api/purview-preview", h.GetPreview)
	r.Get("/api/purview-image/{token}", h.ServeImage)
	return r
}

func get(t *testing.T, router http.Handler, path, userAgent string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetPreview_BotRender(t *testing.T) {
	h, db := testHandler(t)
	testutil.CreateTestPreview(t, db, "abc123", "acme",
		"https://x/hero.jpg",
		`["https://x/1.jpg","https://x/2.jpg"]`,
		"https://r.duitai.in/DUITAI/abc123")

	w := get(t, testRouter(h), "/api/purview-preview/abc123", botUA)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("cache-control = %q, want public, max-age=60", cc)
	}

	body := w.Body.String()
	if !strings.Contains(body, `content="https://x/hero.jpg"`) {
		t.Error("bot render missing og:image for record hero")
	}
	if strings.Contains(body, "carousel") {
		t.Error("bot render must not contain carousel markup")
	}
	if strings.Contains(body, "<img") {
		t.Error("bot render must not contain visible images")
	}
}

func TestGetPreview_BrowserRender(t *testing.T) {
	h, db := testHandler(t)
	testutil.CreateTestPreview(t, db, "abc123", "acme",
		"https://x/hero.jpg",
		`["https://x/1.jpg","https://x/2.jpg"]`,
		"https://r.duitai.in/DUITAI/abc123")

	w := get(t, testRouter(h), "/api/purview-preview/abc123", browserUA)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		`src="https://x/hero.jpg"`,
		`src="https://x/1.jpg"`,
		`src="https://x/2.jpg"`,
		`href="https://r.duitai.in/DUITAI/abc123"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("browser render missing %s", want)
		}
	}
	// Carousel order preserved.
	if strings.Index(body, "https://x/1.jpg") > strings.Index(body, "https://x/2.jpg") {
		t.Error("carousel images out of order")
	}
	if strings.Count(body, "<a ") != 1 {
		t.Error("expected exactly one CTA link")
	}
}

func TestGetPreview_UnknownTokenFallsBack(t *testing.T) {
	h, _ := testHandler(t)

	w := get(t, testRouter(h), "/api/purview-preview/zzz", browserUA)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (crawler-friendly fallback)", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "https://r.duitai.in/static/default-og.png") {
		t.Error("fallback must use the default hero image")
	}
	if !strings.Contains(body, `href="https://r.duitai.in/DUITAI/zzz"`) {
		t.Error("fallback CTA must point at the redirect endpoint for the raw token")
	}
	if strings.Contains(body, `class="carousel"`) {
		t.Error("fallback must not contain a carousel")
	}
}

func TestGetPreview_StoreUnavailable(t *testing.T) {
	h, db := testHandler(t)
	db.Close()

	w := get(t, testRouter(h), "/api/purview-preview/abc123", botUA)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	// Still an HTML fallback, not a raw error.
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html fallback", ct)
	}
	if !strings.Contains(w.Body.String(), "og:image") {
		t.Error("503 body should still carry meta tags")
	}
}

func TestGetPreview_ProbeTokens(t *testing.T) {
	h, _ := testHandler(t)
	router := testRouter(h)

	for _, token := range []string{"health", "favicon.ico", "warmup", "ready"} {
		w := get(t, router, "/api/purview-preview/"+token, browserUA)
		if w.Code != http.StatusNoContent {
			t.Errorf("token %q: status = %d, want 204", token, w.Code)
		}
	}
}

func TestGetPreview_QueryTokenFallback(t *testing.T) {
	h, db := testHandler(t)
	testutil.CreateTestPreview(t, db, "qtok", "acme", "https://x/hero.jpg", "", "https://r.duitai.in/DUITAI/qtok")
	router := testRouter(h)

	for _, path := range []string{
		"/api/purview-preview?token=qtok",
		"/api/purview-preview?t=qtok",
	} {
		w := get(t, router, path, botUA)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, w.Code)
			continue
		}
		if !strings.Contains(w.Body.String(), "https://x/hero.jpg") {
			t.Errorf("%s: expected record hero image in render", path)
		}
	}
}

func TestGetPreview_EmptyUserAgentGetsBotRender(t *testing.T) {
	h, db := testHandler(t)
	testutil.CreateTestPreview(t, db, "noua", "acme", "https://x/hero.jpg", "", "https://r.duitai.in/DUITAI/noua")

	w := get(t, testRouter(h), "/api/purview-preview/noua", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "<img") {
		t.Error("empty user agent should receive the meta-only render")
	}
}

func TestGetPreview_MalformedCarouselNonFatal(t *testing.T) {
	h, db := testHandler(t)
	testutil.CreateTestPreview(t, db, "badcar", "acme", "https://x/hero.jpg",
		`[not valid json`, "https://r.duitai.in/DUITAI/badcar")

	w := get(t, testRouter(h), "/api/purview-preview/badcar", browserUA)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (malformed carousel is non-fatal)", w.Code)
	}
	if !strings.Contains(w.Body.String(), "https://x/hero.jpg") {
		t.Error("hero image should still render")
	}
}

func TestServeFallback_ErrorStatusStaysHTML(t *testing.T) {
	h, _ := testHandler(t)

	w := httptest.NewRecorder()
	h.serveFallback(w, "abc123", false, http.StatusInternalServerError)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "" {
		t.Errorf("error responses must not be cacheable, got %q", cc)
	}
	if !strings.Contains(w.Body.String(), "https://r.duitai.in/DUITAI/abc123") {
		t.Error("fallback body should still carry the CTA link")
	}
}

func TestServeImage_RedirectsWithoutStorage(t *testing.T) {
	h, db := testHandler(t)
	testutil.CreateTestPreview(t, db, "imgtok", "acme", "https://x/hero.jpg", "", "https://r.duitai.in/DUITAI/imgtok")

	w := get(t, testRouter(h), "/api/purview-image/imgtok", botUA)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://x/hero.jpg" {
		t.Errorf("location = %q, want record hero image", loc)
	}
}

func TestServeImage_UnknownTokenRedirectsToDefault(t *testing.T) {
	h, _ := testHandler(t)

	w := get(t, testRouter(h), "/api/purview-image/zzz", botUA)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://r.duitai.in/static/default-og.png" {
		t.Errorf("location = %q, want default hero image", loc)
	}
}

func TestServeImage_StoreUnavailable(t *testing.T) {
	h, db := testHandler(t)
	db.Close()

	w := get(t, testRouter(h), "/api/purview-image/any", botUA)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
