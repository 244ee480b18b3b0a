package service_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/repo"
	"github.com/viajastore/backend/internal/service"
)

// Hand-written test doubles. Each repo method is a function field: set only
// the ones a test needs.

type mockAgencyRepo struct {
	create    func(ctx context.Context, a domain.Agency) (domain.Agency, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Agency, error)
	getBySlug func(ctx context.Context, slug string) (domain.Agency, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error)
	listAll   func(ctx context.Context) ([]domain.Agency, error)
	update    func(ctx context.Context, a domain.Agency) (domain.Agency, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAgencyRepo) Create(ctx context.Context, a domain.Agency) (domain.Agency, error) {
	return m.create(ctx, a)
}
func (m *mockAgencyRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	return m.getByID(ctx, id)
}
func (m *mockAgencyRepo) GetBySlug(ctx context.Context, slug string) (domain.Agency, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockAgencyRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockAgencyRepo) ListAll(ctx context.Context) ([]domain.Agency, error) {
	return m.listAll(ctx)
}
func (m *mockAgencyRepo) Update(ctx context.Context, a domain.Agency) (domain.Agency, error) {
	return m.update(ctx, a)
}
func (m *mockAgencyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.AgencyRepo = (*mockAgencyRepo)(nil)

type mockTripRepo struct {
	create    func(ctx context.Context, t domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getBySlug func(ctx context.Context, slug string) (domain.Trip, error)
	listPaged func(ctx context.Context, agencyID *uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listAll   func(ctx context.Context) ([]domain.Trip, error)
	update    func(ctx context.Context, t domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, agencyID *uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, agencyID, p)
}
func (m *mockTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	return m.listAll(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// fakeSlugStore is an in-memory repo.SlugStore. Rows are keyed by id so
// exclusion behaves like the Postgres implementation.
type fakeSlugStore struct {
	mu    sync.Mutex
	rows  map[domain.Collection]map[uuid.UUID]string
	err   error
	calls int
}

func newFakeSlugStore() *fakeSlugStore {
	return &fakeSlugStore{rows: map[domain.Collection]map[uuid.UUID]string{}}
}

// add stores slug under a fresh id and returns that id.
func (f *fakeSlugStore) add(c domain.Collection, slug string) uuid.UUID {
	id := uuid.New()
	f.put(c, id, slug)
	return id
}

func (f *fakeSlugStore) put(c domain.Collection, id uuid.UUID, slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[c] == nil {
		f.rows[c] = map[uuid.UUID]string{}
	}
	f.rows[c][id] = slug
}

func (f *fakeSlugStore) ListSlugs(_ context.Context, c domain.Collection, prefix string, excludeID *uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for id, s := range f.rows[c] {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ repo.SlugStore = (*fakeSlugStore)(nil)

// fakeReserver is an in-memory service.SlugReserver.
type fakeReserver struct {
	mu       sync.Mutex
	held     map[string]bool
	err      error
	released []string
}

func newFakeReserver() *fakeReserver {
	return &fakeReserver{held: map[string]bool{}}
}

func (f *fakeReserver) Reserve(_ context.Context, c domain.Collection, slug string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	key := string(c) + ":" + slug
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeReserver) Release(_ context.Context, c domain.Collection, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, string(c)+":"+slug)
	f.released = append(f.released, slug)
	return nil
}

var _ service.SlugReserver = (*fakeReserver)(nil)

// fixedNow is the clock used by generators under test.
var fixedNow = time.UnixMilli(1700000000000)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGenerator(store repo.SlugStore, opts ...service.SlugGeneratorOption) *service.SlugGenerator {
	opts = append([]service.SlugGeneratorOption{
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithLogger(discardLogger()),
	}, opts...)
	return service.NewSlugGenerator(store, opts...)
}
