// Package domain contains the core data types for the ViajaStore backend.
// It has no dependencies on other internal packages and is imported by every
// layer (repo, service, audit, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a travel package listed by an agency.
// Slug is unique among trips regardless of the owning agency.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	AgencyID    uuid.UUID  `json:"agency_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Destination string     `json:"destination,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // nil for open-ended listings
	PriceCents  int64      `json:"price_cents"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SlugRecord projects the trip onto the fields the slug audit reads.
// The trip title plays the role of the display name.
func (t Trip) SlugRecord() SlugRecord {
	return SlugRecord{ID: t.ID, Name: t.Title, Slug: t.Slug}
}
