package preview

import "time"

// Record is one row of the redirect_previews table. The token is unique
// and immutable; rows are provisioned by an external process and are
// read-only from this service's perspective (the write path exists only
// for seeding and tests).
type Record struct {
	Token             string
	Lender            string
	LenderDisplayName string
	OGImageURL        string
	CarouselImages    string // raw column value: JSON array or comma list
	CTAURL            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Carousel returns the parsed, normalized carousel image sequence.
func (r *Record) Carousel() []string {
	return ParseCarousel(r.CarouselImages)
}
