package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajastore/backend/internal/domain"
)

func TestSlugStore_ListSlugs_Prefix(t *testing.T) {
	r := newTestRepos(t)
	mustCreateAgency(t, r, "Sol", "sol")
	mustCreateAgency(t, r, "Sol", "sol-2")
	mustCreateAgency(t, r, "Solar", "solar")
	mustCreateAgency(t, r, "Mar", "mar")

	got, err := r.slugs.ListSlugs(context.Background(), domain.CollectionAgencies, "sol", nil)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sol", "sol-2", "solar"}, got)
}

func TestSlugStore_ListSlugs_ExcludesOwnRow(t *testing.T) {
	r := newTestRepos(t)
	own := mustCreateAgency(t, r, "Sol", "sol")

	got, err := r.slugs.ListSlugs(context.Background(), domain.CollectionAgencies, "sol", &own.ID)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSlugStore_ListSlugs_CollectionsAreSeparate(t *testing.T) {
	r := newTestRepos(t)
	agency := mustCreateAgency(t, r, "Bonito", "bonito")
	mustCreateTrip(t, r, agency, "Bonito", "bonito-2")

	agencies, err := r.slugs.ListSlugs(context.Background(), domain.CollectionAgencies, "bonito", nil)
	require.NoError(t, err)
	trips, err := r.slugs.ListSlugs(context.Background(), domain.CollectionTrips, "bonito", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"bonito"}, agencies)
	assert.Equal(t, []string{"bonito-2"}, trips)
}

func TestSlugStore_ListSlugs_UnknownCollection(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.slugs.ListSlugs(context.Background(), domain.Collection("users"), "", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
