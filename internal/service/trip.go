// Package service contains the business logic for the ViajaStore backend.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/repo"
	"github.com/viajastore/backend/internal/slug"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo  repo.TripRepo
	slugs *SlugGenerator
	log   *slog.Logger
}

// NewTripService constructs a TripService.
func NewTripService(r repo.TripRepo, slugs *SlugGenerator, log *slog.Logger) *TripService {
	return &TripService{repo: r, slugs: slugs, log: log}
}

// Create validates and persists a new trip. Slug handling follows
// AgencyService.Create, in the trips namespace.
func (s *TripService) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if err := validateTrip(&t); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if t.AgencyID == uuid.Nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: agency_id is required", domain.ErrValidation)
	}

	if t.Slug != "" {
		created, err := s.repo.Create(ctx, t)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
		return created, nil
	}

	var created domain.Trip
	err := s.slugs.WriteUnique(ctx, domain.CollectionTrips, t.Title, nil, func(sl string) error {
		t.Slug = sl
		var err error
		created, err = s.repo.Create(ctx, t)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.log.InfoContext(ctx, "trip created", "trip_id", created.ID, "agency_id", created.AgencyID, "slug", created.Slug)
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// GetBySlug resolves a public trip path segment.
func (s *TripService) GetBySlug(ctx context.Context, sl string) (domain.Trip, error) {
	if !slug.IsValid(sl) {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetBySlug: %w", domain.ErrNotFound)
	}
	t, err := s.repo.GetBySlug(ctx, sl)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetBySlug: %w", err)
	}
	return t, nil
}

// ListPaged returns one page of trips, optionally for a single agency.
func (s *TripService) ListPaged(ctx context.Context, agencyID *uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, agencyID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip. Slug selection follows
// AgencyService.Update. The owning agency is never changed.
func (s *TripService) Update(ctx context.Context, t domain.Trip, regenerate bool) (domain.Trip, error) {
	if err := validateTrip(&t); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	current, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	t.AgencyID = current.AgencyID

	if t.Slug == "" && !regenerate {
		t.Slug = current.Slug
		regenerate = strings.TrimSpace(current.Slug) == ""
	}

	if !regenerate {
		updated, err := s.repo.Update(ctx, t)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
		return updated, nil
	}

	var updated domain.Trip
	err = s.slugs.WriteUnique(ctx, domain.CollectionTrips, t.Title, &t.ID, func(sl string) error {
		t.Slug = sl
		var err error
		updated, err = s.repo.Update(ctx, t)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if updated.Slug != current.Slug {
		s.log.InfoContext(ctx, "trip slug changed", "trip_id", t.ID, "from", current.Slug, "to", updated.Slug)
	}
	return updated, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip trims input and enforces business rules shared by Create and Update.
func validateTrip(t *domain.Trip) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Slug = strings.TrimSpace(t.Slug)
	t.Destination = strings.TrimSpace(t.Destination)

	if t.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if t.Slug != "" && !slug.IsValid(t.Slug) {
		return fmt.Errorf("%w: slug %q must be lowercase letters, digits and single hyphens", domain.ErrValidation, t.Slug)
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if t.PriceCents < 0 {
		return fmt.Errorf("%w: price_cents must not be negative", domain.ErrValidation)
	}
	return nil
}
