package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajastore/backend/internal/domain"
)

func TestAgencyRepo_Create(t *testing.T) {
	r := newTestRepos(t)

	got, err := r.agencies.Create(context.Background(), agencyFixture("Sol Viagens", "sol-viagens"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, "Sol Viagens", got.Name)
	assert.Equal(t, "sol-viagens", got.Slug)
	assert.True(t, got.Active)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestAgencyRepo_Create_DuplicateSlug(t *testing.T) {
	r := newTestRepos(t)
	mustCreateAgency(t, r, "Sol", "sol")

	_, err := r.agencies.Create(context.Background(), agencyFixture("Sol", "sol"))

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAgencyRepo_Create_MalformedSlugRejectedByCheck(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.agencies.Create(context.Background(), agencyFixture("Sol", "Sol Viagens"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAgencyRepo_GetBySlug(t *testing.T) {
	r := newTestRepos(t)
	created := mustCreateAgency(t, r, "Mar Azul", "mar-azul")

	got, err := r.agencies.GetBySlug(context.Background(), "mar-azul")

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAgencyRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.agencies.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAgencyRepo_ListPaged(t *testing.T) {
	r := newTestRepos(t)
	mustCreateAgency(t, r, "Zeta Turismo", "zeta-turismo")
	mustCreateAgency(t, r, "Alfa Turismo", "alfa-turismo")

	got, total, err := r.agencies.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 100})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))
	assert.GreaterOrEqual(t, len(got), 2)
}

func TestAgencyRepo_Update_Slug(t *testing.T) {
	r := newTestRepos(t)
	created := mustCreateAgency(t, r, "Sol", "sol")

	created.Name = "Sol Nascente"
	created.Slug = "sol-nascente"
	updated, err := r.agencies.Update(context.Background(), created)

	require.NoError(t, err)
	assert.Equal(t, "sol-nascente", updated.Slug)
	assert.Equal(t, "Sol Nascente", updated.Name)
}

func TestAgencyRepo_Update_SlugTakenByOther(t *testing.T) {
	r := newTestRepos(t)
	mustCreateAgency(t, r, "Sol", "sol")
	other := mustCreateAgency(t, r, "Mar", "mar")

	other.Slug = "sol"
	_, err := r.agencies.Update(context.Background(), other)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAgencyRepo_Delete_CascadesTrips(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	agency := mustCreateAgency(t, r, "Sol", "sol")
	trip := mustCreateTrip(t, r, agency, "Praia do Forte", "praia-do-forte")

	require.NoError(t, r.agencies.Delete(ctx, agency.ID))

	_, err := r.trips.GetByID(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be removed with its agency")
}

func TestAgencyRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepos(t)

	err := r.agencies.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
