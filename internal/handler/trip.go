package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/viajastore/backend/internal/domain"
)

// CreateTrip handles POST /agencies/{id}/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	agencyID, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body TripRequest
	if !readBody(w, r, &body) {
		return
	}

	t := requestToTrip(body)
	t.AgencyID = agencyID
	created, err := s.trips.Create(r.Context(), t)
	if err != nil {
		// The only foreign key on trips is the agency.
		s.writeError(w, r, err, "agency not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?agency_id=, ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, err := bindList(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	agencyID, err := queryUUID(r, "agency_id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trips, total, err := s.trips.ListPaged(r.Context(), agencyID, params)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{Data: data, Pagination: pagination(params, total)})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	t, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(t))
}

// GetTripBySlug handles GET /trips/by-slug/{slug}, the lookup behind
// /viagens/{slug} URLs.
func (s *Server) GetTripBySlug(w http.ResponseWriter, r *http.Request) {
	t, err := s.trips.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(t))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body TripRequest
	if !readBody(w, r, &body) {
		return
	}

	t := requestToTrip(body)
	t.ID = id
	updated, err := s.trips.Update(r.Context(), t, body.RegenerateSlug != nil && *body.RegenerateSlug)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a TripRequest body into a domain.Trip.
// ID and AgencyID come from the path and are set by the caller.
func requestToTrip(body TripRequest) domain.Trip {
	t := domain.Trip{
		Title:     body.Title,
		StartDate: body.StartDate.Time,
	}
	if body.Slug != nil {
		t.Slug = *body.Slug
	}
	if body.Destination != nil {
		t.Destination = *body.Destination
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		t.EndDate = &ed
	}
	if body.PriceCents != nil {
		t.PriceCents = *body.PriceCents
	}
	return t
}

// tripToResponse converts a domain.Trip into its API representation.
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		Id:         t.ID,
		AgencyId:   t.AgencyID,
		Title:      t.Title,
		Slug:       t.Slug,
		StartDate:  openapi_types.Date{Time: t.StartDate},
		PriceCents: t.PriceCents,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.Destination != "" {
		resp.Destination = &t.Destination
	}
	if t.EndDate != nil {
		ed := openapi_types.Date{Time: *t.EndDate}
		resp.EndDate = &ed
	}
	return resp
}
