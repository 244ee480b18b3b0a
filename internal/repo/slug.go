package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/viajastore/backend/internal/domain"
)

// SlugStore is the read side the unique slug generator depends on.
type SlugStore interface {
	// ListSlugs returns every slug in collection c that starts with prefix.
	// The row whose id equals excludeID (when non-nil) is left out so an entity
	// re-saving its own slug does not see itself as a collision.
	// Pass prefix="" to list the whole collection.
	ListSlugs(ctx context.Context, c domain.Collection, prefix string, excludeID *uuid.UUID) ([]string, error)
}

// pgSlugStore reads slugs from the agencies and trips tables.
type pgSlugStore struct {
	db db
}

// NewSlugStore constructs a SlugStore backed by the provided db connection.
func NewSlugStore(db db) SlugStore {
	return &pgSlugStore{db: db}
}

// slugQueries holds one query per collection. Table names never come from input.
var slugQueries = map[domain.Collection]string{
	domain.CollectionAgencies: `
		SELECT slug FROM agencies
		WHERE slug LIKE @prefix || '%'
		  AND (@exclude_id::uuid IS NULL OR id <> @exclude_id)
		ORDER BY slug`,
	domain.CollectionTrips: `
		SELECT slug FROM trips
		WHERE slug LIKE @prefix || '%'
		  AND (@exclude_id::uuid IS NULL OR id <> @exclude_id)
		ORDER BY slug`,
}

// ListSlugs runs a prefix scan over the slug unique index. Prefixes are
// produced by slug.Make and never contain LIKE wildcards.
func (s *pgSlugStore) ListSlugs(ctx context.Context, c domain.Collection, prefix string, excludeID *uuid.UUID) ([]string, error) {
	q, ok := slugQueries[c]
	if !ok {
		return nil, fmt.Errorf("repo.SlugStore.ListSlugs: %w: unknown collection %q", domain.ErrValidation, c)
	}

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix, "exclude_id": excludeID})
	if err != nil {
		return nil, fmt.Errorf("repo.SlugStore.ListSlugs: %w", err)
	}

	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.SlugStore.ListSlugs: %w", err)
	}
	return slugs, nil
}
