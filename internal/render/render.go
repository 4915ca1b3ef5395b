// Package render produces the three HTML shapes served by the preview
// endpoint: a meta-tag-only document for link-preview fetchers, the full
// human-facing page, and a generic fallback for unknown tokens.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/duitai/purview/internal/preview"
)

const ctaLabel = "Check my offer ↗"

// Options holds the configured fallbacks used when a record leaves a
// field empty.
type Options struct {
	PublicBaseURL     string
	DefaultOGImageURL string
	DefaultThemeColor string
	CTAPathPrefix     string
}

// Page is the fully resolved input to the templates.
type Page struct {
	Title        string
	Description  string
	ImageURL     string
	CanonicalURL string
	ThemeColor   string
	CTAURL       string
	CTALabel     string
	Carousel     []string
}

// Renderer renders preview pages. Safe for concurrent use.
type Renderer struct {
	opts Options
	bot  *template.Template
	page *template.Template
}

func New(opts Options) *Renderer {
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &Renderer{
		opts: opts,
		bot:  template.Must(template.New("bot").Parse(botTemplate)),
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// CTAURL builds the canonical redirect link for a token.
func (r *Renderer) CTAURL(token string) string {
	return r.opts.PublicBaseURL + "/" + r.opts.CTAPathPrefix + "/" + token
}

// FromRecord resolves a record into a Page. Image selection priority:
// the record's og_image_url when non-empty, else the configured default.
func (r *Renderer) FromRecord(rec *preview.Record, token string) Page {
	imageURL := rec.OGImageURL
	if imageURL == "" {
		imageURL = r.opts.DefaultOGImageURL
	}

	ctaURL := rec.CTAURL
	if ctaURL == "" {
		ctaURL = r.CTAURL(token)
	}

	title := "Your loan offer is ready"
	if rec.LenderDisplayName != "" {
		title = "Your " + rec.LenderDisplayName + " offer is ready"
	}

	return Page{
		Title:        title,
		Description:  "Tap to view your personalised loan offer.",
		ImageURL:     imageURL,
		CanonicalURL: ctaURL,
		ThemeColor:   r.opts.DefaultThemeColor,
		CTAURL:       ctaURL,
		CTALabel:     ctaLabel,
		Carousel:     rec.Carousel(),
	}
}

// Fallback builds the generic page used when no record exists for the
// token: default hero image, no carousel, CTA pointing back at the
// redirect endpoint.
func (r *Renderer) Fallback(token string) Page {
	ctaURL := r.CTAURL(token)
	return Page{
		Title:        "Your loan preview is ready",
		Description:  "Tap to view your personalised loan offer.",
		ImageURL:     r.opts.DefaultOGImageURL,
		CanonicalURL: ctaURL,
		ThemeColor:   r.opts.DefaultThemeColor,
		CTAURL:       ctaURL,
		CTALabel:     ctaLabel,
	}
}

// Bot renders the compact document for crawlers: full <head> metadata,
// no visible body.
func (r *Renderer) Bot(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.bot.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Browser renders the full page: hero image, carousel when non-empty,
// and a single CTA link, with the same head metadata for consistency.
func (r *Renderer) Browser(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const headTemplate = `    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <meta name="description" content="{{.Description}}" />
    <meta name="theme-color" content="{{.ThemeColor}}" />
    <link rel="canonical" href="{{.CanonicalURL}}" />

    <meta property="og:type" content="website" />
    <meta property="og:title" content="{{.Title}}" />
    <meta property="og:description" content="{{.Description}}" />
    <meta property="og:url" content="{{.CanonicalURL}}" />
    <meta property="og:image" content="{{.ImageURL}}" />

    <meta name="twitter:card" content="summary_large_image" />
    <meta name="twitter:title" content="{{.Title}}" />
    <meta name="twitter:description" content="{{.Description}}" />
    <meta name="twitter:image" content="{{.ImageURL}}" />
`

const botTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
` + headTemplate + `</head>
<body></body>
</html>
`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
` + headTemplate + `
    <style>
        body {
            margin: 0;
            font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto;
            background: #050816;
            color: #f4f4f5;
            display: flex;
            align-items: center;
            justify-content: center;
            min-height: 100vh;
            flex-direction: column;
        }

        .hero {
            width: 100%;
            max-width: 480px;
            margin-bottom: 1.5rem;
            border-radius: 1rem;
            overflow: hidden;
            box-shadow: 0 20px 40px rgba(0,0,0,0.45);
        }

        .hero img {
            width: 100%;
            display: block;
        }

        .carousel {
            max-width: 480px;
            display: flex;
            gap: 0.75rem;
            overflow-x: auto;
            margin-bottom: 1.5rem;
        }

        .carousel img {
            height: 140px;
            border-radius: 0.75rem;
        }

        .card {
            max-width: 480px;
            padding: 1.5rem;
            border-radius: 1.25rem;
            background: radial-gradient(circle at top, #111827 0, #020617 55%);
            box-shadow:
                0 18px 45px rgba(0, 0, 0, 0.6),
                0 0 0 1px rgba(148, 163, 184, 0.2);
        }

        .card-title {
            font-size: 1.3rem;
            font-weight: 600;
            margin-bottom: 0.5rem;
        }

        .card-desc {
            font-size: 1rem;
            color: #d1d5db;
            margin-bottom: 1.25rem;
        }

        .card-button {
            display: inline-block;
            padding: 0.65rem 1.2rem;
            border-radius: 999px;
            background: {{.ThemeColor}};
            color: #0b1020;
            font-weight: 600;
            font-size: 0.95rem;
            text-decoration: none;
        }
    </style>
</head>
<body>
    <div class="hero">
        <img src="{{.ImageURL}}" alt="Offer preview" />
    </div>
{{if .Carousel}}
    <div class="carousel">
{{range .Carousel}}        <img src="{{.}}" alt="" loading="lazy" />
{{end}}    </div>
{{end}}
    <main class="card">
        <div class="card-title">{{.Title}}</div>
        <div class="card-desc">{{.Description}}</div>
        <a class="card-button" href="{{.CTAURL}}">{{.CTALabel}}</a>
    </main>
</body>
</html>
`
