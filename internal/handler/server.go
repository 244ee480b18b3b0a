// Package handler implements the HTTP handlers for the ViajaStore API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, agency.go, trip.go, slug.go, audit.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viajastore/backend/internal/audit"
	"github.com/viajastore/backend/internal/domain"
)

// AgencyServicer defines the agency operations the handlers depend on.
// Declared here, in the consumer package, so tests can inject a mock.
type AgencyServicer interface {
	Create(ctx context.Context, a domain.Agency) (domain.Agency, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error)
	GetBySlug(ctx context.Context, slug string) (domain.Agency, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error)
	Update(ctx context.Context, a domain.Agency, regenerateSlug bool) (domain.Agency, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	GetBySlug(ctx context.Context, slug string) (domain.Trip, error)
	ListPaged(ctx context.Context, agencyID *uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, t domain.Trip, regenerateSlug bool) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SlugGenerator is the dry-run side of the unique slug generator.
// Release drops any reservation Generate took, since a preview writes nothing.
type SlugGenerator interface {
	Generate(ctx context.Context, name string, c domain.Collection, excludeID *uuid.UUID) (string, error)
	Release(ctx context.Context, c domain.Collection, slug string)
}

// Auditor runs the slug audit over the current data.
type Auditor interface {
	Run(ctx context.Context) (audit.Result, error)
}

// Server holds every handler dependency. Nil dependencies are allowed in
// tests that only exercise the routes which do not use them.
type Server struct {
	agencies AgencyServicer
	trips    TripServicer
	slugs    SlugGenerator
	audits   Auditor
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(agencies AgencyServicer, trips TripServicer, slugs SlugGenerator, audits Auditor, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{agencies: agencies, trips: trips, slugs: slugs, audits: audits, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes returns the API router. Cross-cutting middleware (request IDs,
// logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/agencies", func(r chi.Router) {
		r.Get("/", s.ListAgencies)
		r.Post("/", s.CreateAgency)
		r.Get("/by-slug/{slug}", s.GetAgencyBySlug)
		r.Get("/{id}", s.GetAgency)
		r.Put("/{id}", s.UpdateAgency)
		r.Delete("/{id}", s.DeleteAgency)
		r.Post("/{id}/trips", s.CreateTrip)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Get("/by-slug/{slug}", s.GetTripBySlug)
		r.Get("/{id}", s.GetTrip)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})

	r.Get("/slugs/preview", s.PreviewSlug)
	r.Get("/slugs/validate", s.ValidateSlug)
	r.Get("/admin/slugs/audit", s.GetSlugAudit)

	return r
}
