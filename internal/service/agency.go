package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/repo"
	"github.com/viajastore/backend/internal/slug"
)

// AgencyService implements business logic for Agency operations.
// Slugs are generated from the agency name unless the caller supplies one.
type AgencyService struct {
	repo  repo.AgencyRepo
	slugs *SlugGenerator
	log   *slog.Logger
}

// NewAgencyService constructs an AgencyService.
func NewAgencyService(r repo.AgencyRepo, slugs *SlugGenerator, log *slog.Logger) *AgencyService {
	return &AgencyService{repo: r, slugs: slugs, log: log}
}

// Create validates and persists a new agency.
//
// With an empty a.Slug the slug is generated from the name and regenerated if
// a concurrent registration takes it first. An explicit a.Slug must be valid
// and free; a taken one surfaces as domain.ErrConflict.
func (s *AgencyService) Create(ctx context.Context, a domain.Agency) (domain.Agency, error) {
	if err := normalizeAgency(&a); err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.Create: %w", err)
	}

	if a.Slug != "" {
		created, err := s.repo.Create(ctx, a)
		if err != nil {
			return domain.Agency{}, fmt.Errorf("service.AgencyService.Create: %w", err)
		}
		return created, nil
	}

	var created domain.Agency
	err := s.slugs.WriteUnique(ctx, domain.CollectionAgencies, a.Name, nil, func(sl string) error {
		a.Slug = sl
		var err error
		created, err = s.repo.Create(ctx, a)
		return err
	})
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.Create: %w", err)
	}

	s.log.InfoContext(ctx, "agency created", "agency_id", created.ID, "slug", created.Slug)
	return created, nil
}

// GetByID returns a single agency by ID.
func (s *AgencyService) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.GetByID: %w", err)
	}
	return a, nil
}

// GetBySlug resolves a public microsite path segment to its agency.
// Malformed slugs short-circuit to domain.ErrNotFound without a query.
func (s *AgencyService) GetBySlug(ctx context.Context, sl string) (domain.Agency, error) {
	if !slug.IsValid(sl) {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.GetBySlug: %w", domain.ErrNotFound)
	}
	a, err := s.repo.GetBySlug(ctx, sl)
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.GetBySlug: %w", err)
	}
	return a, nil
}

// ListPaged returns one page of agencies and the total count.
func (s *AgencyService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error) {
	agencies, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.AgencyService.ListPaged: %w", err)
	}
	if agencies == nil {
		agencies = []domain.Agency{}
	}
	return agencies, total, nil
}

// Update validates and updates an existing agency.
//
// The slug is chosen in this order:
//   - regenerate=true: generated from the (new) name, excluding the agency's
//     own row so an unchanged name keeps its slug;
//   - a.Slug set: used as given, must be valid;
//   - otherwise the stored slug is kept, or generated if the stored one is blank.
func (s *AgencyService) Update(ctx context.Context, a domain.Agency, regenerate bool) (domain.Agency, error) {
	if err := normalizeAgency(&a); err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.Update: %w", err)
	}

	current, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.Update: %w", err)
	}

	if a.Slug == "" && !regenerate {
		a.Slug = current.Slug
		regenerate = strings.TrimSpace(current.Slug) == ""
	}

	if !regenerate {
		updated, err := s.repo.Update(ctx, a)
		if err != nil {
			return domain.Agency{}, fmt.Errorf("service.AgencyService.Update: %w", err)
		}
		return updated, nil
	}

	var updated domain.Agency
	err = s.slugs.WriteUnique(ctx, domain.CollectionAgencies, a.Name, &a.ID, func(sl string) error {
		a.Slug = sl
		var err error
		updated, err = s.repo.Update(ctx, a)
		return err
	})
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.Update: %w", err)
	}

	if updated.Slug != current.Slug {
		s.log.InfoContext(ctx, "agency slug changed", "agency_id", a.ID, "from", current.Slug, "to", updated.Slug)
	}
	return updated, nil
}

// Delete removes an agency and its trips.
func (s *AgencyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.AgencyService.Delete: %w", err)
	}
	return nil
}

// normalizeAgency trims input and enforces business rules shared by Create
// and Update.
func normalizeAgency(a *domain.Agency) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Slug = strings.TrimSpace(a.Slug)
	a.ContactEmail = strings.TrimSpace(a.ContactEmail)

	if a.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if a.Slug != "" && !slug.IsValid(a.Slug) {
		return fmt.Errorf("%w: slug %q must be lowercase letters, digits and single hyphens", domain.ErrValidation, a.Slug)
	}
	if a.ContactEmail != "" {
		if _, err := mail.ParseAddress(a.ContactEmail); err != nil {
			return fmt.Errorf("%w: contact_email is not a valid address", domain.ErrValidation)
		}
	}
	return nil
}
