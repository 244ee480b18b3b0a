package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agency is a travel agency with its own public microsite.
// Slug is the path segment of that microsite and is unique among agencies.
type Agency struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SlugRecord projects the agency onto the fields the slug audit reads.
func (a Agency) SlugRecord() SlugRecord {
	return SlugRecord{ID: a.ID, Name: a.Name, Slug: a.Slug}
}
