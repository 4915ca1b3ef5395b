package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/duitai/purview/internal/database"
)

// TestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test completes.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		t.Fatalf("running migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db.DB
}

// TestPreview holds the column values of a seeded preview row.
type TestPreview struct {
	Token             string
	Lender            string
	LenderDisplayName string
	OGImageURL        string
	CarouselImages    string
	CTAURL            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateTestPreview inserts a preview row directly, bypassing the
// repository, the way external provisioning would.
func CreateTestPreview(t *testing.T, db *sql.DB, token, lender, ogImageURL, carouselImages, ctaURL string) *TestPreview {
	t.Helper()

	now := time.Now().UTC()
	displayName := lender + " Finance"

	var carousel sql.NullString
	if carouselImages != "" {
		carousel = sql.NullString{String: carouselImages, Valid: true}
	}

	_, err := db.ExecContext(context.Background(), `
		INSERT INTO redirect_previews (token, lender, lender_display_name, og_image_url, carousel_images, cta_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, token, lender, displayName, ogImageURL, carousel, ctaURL, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("creating test preview: %v", err)
	}

	return &TestPreview{
		Token:             token,
		Lender:            lender,
		LenderDisplayName: displayName,
		OGImageURL:        ogImageURL,
		CarouselImages:    carouselImages,
		CTAURL:            ctaURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
