package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/viajastore/backend/internal/audit"
	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/handler"
)

// Hand-written test doubles. Set only the method fields a test needs.

type mockAgencyServicer struct {
	create    func(ctx context.Context, a domain.Agency) (domain.Agency, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Agency, error)
	getBySlug func(ctx context.Context, slug string) (domain.Agency, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error)
	update    func(ctx context.Context, a domain.Agency, regenerate bool) (domain.Agency, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAgencyServicer) Create(ctx context.Context, a domain.Agency) (domain.Agency, error) {
	return m.create(ctx, a)
}
func (m *mockAgencyServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	return m.getByID(ctx, id)
}
func (m *mockAgencyServicer) GetBySlug(ctx context.Context, slug string) (domain.Agency, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockAgencyServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Agency, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockAgencyServicer) Update(ctx context.Context, a domain.Agency, regenerate bool) (domain.Agency, error) {
	return m.update(ctx, a, regenerate)
}
func (m *mockAgencyServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.AgencyServicer = (*mockAgencyServicer)(nil)

type mockTripServicer struct {
	create    func(ctx context.Context, t domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getBySlug func(ctx context.Context, slug string) (domain.Trip, error)
	listPaged func(ctx context.Context, agencyID *uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, t domain.Trip, regenerate bool) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) GetBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, agencyID *uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, agencyID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip, regenerate bool) (domain.Trip, error) {
	return m.update(ctx, t, regenerate)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockSlugGenerator struct {
	generate func(ctx context.Context, name string, c domain.Collection, excludeID *uuid.UUID) (string, error)
	released []string
}

func (m *mockSlugGenerator) Generate(ctx context.Context, name string, c domain.Collection, excludeID *uuid.UUID) (string, error) {
	return m.generate(ctx, name, c, excludeID)
}
func (m *mockSlugGenerator) Release(_ context.Context, _ domain.Collection, slug string) {
	m.released = append(m.released, slug)
}

var _ handler.SlugGenerator = (*mockSlugGenerator)(nil)

type mockAuditor struct {
	run func(ctx context.Context) (audit.Result, error)
}

func (m *mockAuditor) Run(ctx context.Context) (audit.Result, error) { return m.run(ctx) }

var _ handler.Auditor = (*mockAuditor)(nil)

// ---- helpers ---------------------------------------------------------------

type deps struct {
	agencies *mockAgencyServicer
	trips    *mockTripServicer
	slugs    *mockSlugGenerator
	audits   *mockAuditor
}

// newHTTPHandler wires a Server with the given mocks into its router,
// the same way main.go does in production.
func newHTTPHandler(d deps) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	var (
		agencies handler.AgencyServicer
		trips    handler.TripServicer
		slugs    handler.SlugGenerator
		audits   handler.Auditor
	)
	if d.agencies != nil {
		agencies = d.agencies
	}
	if d.trips != nil {
		trips = d.trips
	}
	if d.slugs != nil {
		slugs = d.slugs
	}
	if d.audits != nil {
		audits = d.audits
	}
	return handler.NewServer(agencies, trips, slugs, audits, log).Routes()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
