// Package seed loads sample preview rows for local development. In
// production the redirect_previews table is provisioned by the campaign
// pipeline; this stands in for it.
package seed

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/duitai/purview/internal/preview"
	"github.com/oklog/ulid/v2"
)

type lenderSample struct {
	code        string
	displayName string
	carousel    string
}

var samples = []lenderSample{
	{
		code:        "acme",
		displayName: "Acme Finance",
		carousel:    `["https://storage.duitai.in/previews/lenders/acme/carousel/1.jpg","https://storage.duitai.in/previews/lenders/acme/carousel/2.jpg"]`,
	},
	{
		code:        "big_bank",
		displayName: "Big Bank",
		carousel:    "https://storage.duitai.in/previews/lenders/big_bank/carousel/1.jpg,https://storage.duitai.in/previews/lenders/big_bank/carousel/2.jpg",
	},
	{
		code:        "quickloan",
		displayName: "QuickLoan",
	},
}

// Run inserts one sample row per lender and logs the generated tokens.
func Run(ctx context.Context, db *sql.DB, publicBaseURL, ctaPathPrefix string) error {
	repo := preview.NewRepository(db)
	base := strings.TrimRight(publicBaseURL, "/")

	for _, s := range samples {
		token := strings.ToLower(ulid.Make().String())
		rec := &preview.Record{
			Token:             token,
			Lender:            s.code,
			LenderDisplayName: s.displayName,
			OGImageURL:        "https://storage.duitai.in/previews/lenders/" + s.code + "/hero.jpg",
			CarouselImages:    s.carousel,
			CTAURL:            base + "/" + ctaPathPrefix + "/" + token,
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			return err
		}
		slog.Info("seeded preview", "token", token, "lender", s.code)
	}

	return nil
}
