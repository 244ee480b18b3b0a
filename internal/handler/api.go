package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types for the JSON API. They mirror the schemas in openapi.yaml and
// keep the domain types free of transport concerns.

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListParams are the query parameters shared by list endpoints.
type ListParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// AgencyRequest is the body of POST /agencies and PUT /agencies/{id}.
// An omitted slug is generated from the name.
type AgencyRequest struct {
	Name           string  `json:"name"`
	Slug           *string `json:"slug,omitempty"`
	Description    *string `json:"description,omitempty"`
	ContactEmail   *string `json:"contact_email,omitempty"`
	Active         *bool   `json:"active,omitempty"`
	RegenerateSlug *bool   `json:"regenerate_slug,omitempty"`
}

// Agency is the API representation of domain.Agency.
type Agency struct {
	Id           openapi_types.UUID `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Description  *string            `json:"description,omitempty"`
	ContactEmail *string            `json:"contact_email,omitempty"`
	Active       bool               `json:"active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// AgencyList is a page of agencies.
type AgencyList struct {
	Data       []Agency   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// TripRequest is the body of POST /agencies/{id}/trips and PUT /trips/{id}.
type TripRequest struct {
	Title          string              `json:"title"`
	Slug           *string             `json:"slug,omitempty"`
	Destination    *string             `json:"destination,omitempty"`
	StartDate      openapi_types.Date  `json:"start_date"`
	EndDate        *openapi_types.Date `json:"end_date,omitempty"`
	PriceCents     *int64              `json:"price_cents,omitempty"`
	RegenerateSlug *bool               `json:"regenerate_slug,omitempty"`
}

// Trip is the API representation of domain.Trip.
type Trip struct {
	Id          openapi_types.UUID  `json:"id"`
	AgencyId    openapi_types.UUID  `json:"agency_id"`
	Title       string              `json:"title"`
	Slug        string              `json:"slug"`
	Destination *string             `json:"destination,omitempty"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	PriceCents  int64               `json:"price_cents"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TripList is a page of trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SlugPreview is returned by GET /slugs/preview.
type SlugPreview struct {
	Name       string `json:"name"`
	Collection string `json:"collection"`
	Slug       string `json:"slug"`
}

// SlugValidation is returned by GET /slugs/validate.
type SlugValidation struct {
	Slug  string `json:"slug"`
	Valid bool   `json:"valid"`
}
