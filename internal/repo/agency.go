package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/viajastore/backend/internal/domain"
)

// AgencyRepo defines the persistence operations for Agencies.
// The service layer depends on this interface, not the Postgres implementation.
type AgencyRepo interface {
	// Create inserts a new agency and returns the persisted record.
	// Returns domain.ErrConflict if the slug is already taken.
	Create(ctx context.Context, a domain.Agency) (domain.Agency, error)

	// GetByID retrieves a single agency. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error)

	// GetBySlug retrieves the agency owning slug. Returns domain.ErrNotFound if absent.
	GetBySlug(ctx context.Context, slug string) (domain.Agency, error)

	// ListPaged returns one page of agencies ordered by name, plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error)

	// ListAll returns every agency ordered by name. Used by the slug audit.
	ListAll(ctx context.Context) ([]domain.Agency, error)

	// Update overwrites the mutable fields of an agency, including its slug.
	// Returns domain.ErrNotFound or domain.ErrConflict.
	Update(ctx context.Context, a domain.Agency) (domain.Agency, error)

	// Delete removes an agency and, through the foreign key, its trips.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgAgencyRepo is the Postgres implementation of AgencyRepo.
type pgAgencyRepo struct {
	db db
}

// NewAgencyRepo constructs an AgencyRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewAgencyRepo(db db) AgencyRepo {
	return &pgAgencyRepo{db: db}
}

const agencyColumns = `id, name, slug, description, contact_email, active, created_at, updated_at`

func (r *pgAgencyRepo) Create(ctx context.Context, a domain.Agency) (domain.Agency, error) {
	const q = `
		INSERT INTO agencies (name, slug, description, contact_email, active)
		VALUES (@name, @slug, @description, @contact_email, @active)
		RETURNING ` + agencyColumns

	args := pgx.NamedArgs{
		"name":          a.Name,
		"slug":          a.Slug,
		"description":   a.Description,
		"contact_email": a.ContactEmail,
		"active":        a.Active,
	}

	result, err := scanAgency(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgAgencyRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	const q = `SELECT ` + agencyColumns + ` FROM agencies WHERE id = @id`

	result, err := scanAgency(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgAgencyRepo) GetBySlug(ctx context.Context, slug string) (domain.Agency, error) {
	const q = `SELECT ` + agencyColumns + ` FROM agencies WHERE slug = @slug`

	result, err := scanAgency(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.GetBySlug: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgAgencyRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM agencies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.AgencyRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + agencyColumns + `
		FROM agencies
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AgencyRepo.ListPaged: %w", err)
	}
	agencies, err := collect(rows, scanAgency)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AgencyRepo.ListPaged: %w", err)
	}
	return agencies, total, nil
}

func (r *pgAgencyRepo) ListAll(ctx context.Context) ([]domain.Agency, error) {
	rows, err := r.db.Query(ctx, `SELECT `+agencyColumns+` FROM agencies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("repo.AgencyRepo.ListAll: %w", err)
	}
	agencies, err := collect(rows, scanAgency)
	if err != nil {
		return nil, fmt.Errorf("repo.AgencyRepo.ListAll: %w", err)
	}
	return agencies, nil
}

func (r *pgAgencyRepo) Update(ctx context.Context, a domain.Agency) (domain.Agency, error) {
	const q = `
		UPDATE agencies
		SET name          = @name,
		    slug          = @slug,
		    description   = @description,
		    contact_email = @contact_email,
		    active        = @active,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + agencyColumns

	args := pgx.NamedArgs{
		"id":            a.ID,
		"name":          a.Name,
		"slug":          a.Slug,
		"description":   a.Description,
		"contact_email": a.ContactEmail,
		"active":        a.Active,
	}

	result, err := scanAgency(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgAgencyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM agencies WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.AgencyRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AgencyRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanAgency maps a single database row into a domain.Agency.
func scanAgency(s scanner) (domain.Agency, error) {
	var (
		a  domain.Agency
		id pgtype.UUID
	)
	err := s.Scan(&id, &a.Name, &a.Slug, &a.Description, &a.ContactEmail, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Agency{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}
