package preview

import (
	"context"
	"database/sql"
	"time"
)

// Repository reads preview records from the store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByToken returns the record for a token, or nil if none exists.
// A non-nil error means the store itself failed, not that the token is
// unknown.
func (r *Repository) GetByToken(ctx context.Context, token string) (*Record, error) {
	var rec Record
	var carousel sql.NullString
	var createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx, `
		SELECT token, lender, lender_display_name, og_image_url, carousel_images, cta_url, created_at, updated_at
		FROM redirect_previews WHERE token = ?
	`, token).Scan(&rec.Token, &rec.Lender, &rec.LenderDisplayName, &rec.OGImageURL, &carousel, &rec.CTAURL, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.CarouselImages = carousel.String
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &rec, nil
}

// Upsert inserts or replaces a record. Production rows are provisioned
// externally; this exists for the seed tool and tests.
func (r *Repository) Upsert(ctx context.Context, rec *Record) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO redirect_previews (token, lender, lender_display_name, og_image_url, carousel_images, cta_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET
			lender = excluded.lender,
			lender_display_name = excluded.lender_display_name,
			og_image_url = excluded.og_image_url,
			carousel_images = excluded.carousel_images,
			cta_url = excluded.cta_url,
			updated_at = excluded.updated_at
	`, rec.Token, rec.Lender, rec.LenderDisplayName, rec.OGImageURL, nullString(rec.CarouselImages), rec.CTAURL,
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))
	return err
}

// nullString returns sql.NullString for optional text fields.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
