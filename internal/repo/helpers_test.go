package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/repo"
	"github.com/viajastore/backend/testutil"
)

// repos bundles every repo backed by one rolled-back transaction so tests
// can build agency → trip hierarchies without cleanup SQL.
type repos struct {
	agencies repo.AgencyRepo
	trips    repo.TripRepo
	slugs    repo.SlugStore
}

func newTestRepos(t *testing.T) repos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repos{
		agencies: repo.NewAgencyRepo(tx),
		trips:    repo.NewTripRepo(tx),
		slugs:    repo.NewSlugStore(tx),
	}
}

// agencyFixture returns a domain.Agency with sensible defaults.
func agencyFixture(name, slug string) domain.Agency {
	return domain.Agency{
		Name:         name,
		Slug:         slug,
		Description:  "Pacotes pelo litoral",
		ContactEmail: "contato@example.com",
		Active:       true,
	}
}

// tripFixture returns a domain.Trip owned by agency with sensible defaults.
func tripFixture(agency domain.Agency, title, slug string) domain.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		AgencyID:    agency.ID,
		Title:       title,
		Slug:        slug,
		Destination: "Bahia",
		StartDate:   start,
		EndDate:     &end,
		PriceCents:  259900,
	}
}

func mustCreateAgency(t *testing.T, r repos, name, slug string) domain.Agency {
	t.Helper()
	a, err := r.agencies.Create(context.Background(), agencyFixture(name, slug))
	require.NoError(t, err)
	return a
}

func mustCreateTrip(t *testing.T, r repos, agency domain.Agency, title, slug string) domain.Trip {
	t.Helper()
	trip, err := r.trips.Create(context.Background(), tripFixture(agency, title, slug))
	require.NoError(t, err)
	return trip
}
