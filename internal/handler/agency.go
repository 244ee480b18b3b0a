package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viajastore/backend/internal/domain"
)

// CreateAgency handles POST /agencies.
func (s *Server) CreateAgency(w http.ResponseWriter, r *http.Request) {
	var body AgencyRequest
	if !readBody(w, r, &body) {
		return
	}

	created, err := s.agencies.Create(r.Context(), requestToAgency(body))
	if err != nil {
		s.writeError(w, r, err, "agency not found")
		return
	}
	writeJSON(w, http.StatusCreated, agencyToResponse(created))
}

// ListAgencies handles GET /agencies.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListAgencies(w http.ResponseWriter, r *http.Request) {
	params, err := bindList(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	agencies, total, err := s.agencies.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "agency not found")
		return
	}

	data := make([]Agency, len(agencies))
	for i, a := range agencies {
		data[i] = agencyToResponse(a)
	}
	writeJSON(w, http.StatusOK, AgencyList{Data: data, Pagination: pagination(params, total)})
}

// GetAgency handles GET /agencies/{id}.
func (s *Server) GetAgency(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	a, err := s.agencies.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "agency not found")
		return
	}
	writeJSON(w, http.StatusOK, agencyToResponse(a))
}

// GetAgencyBySlug handles GET /agencies/by-slug/{slug}, the lookup behind
// /agencias/{slug} microsite URLs.
func (s *Server) GetAgencyBySlug(w http.ResponseWriter, r *http.Request) {
	a, err := s.agencies.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err, "agency not found")
		return
	}
	writeJSON(w, http.StatusOK, agencyToResponse(a))
}

// UpdateAgency handles PUT /agencies/{id}.
// Set "regenerate_slug": true to derive a fresh slug from the new name.
func (s *Server) UpdateAgency(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body AgencyRequest
	if !readBody(w, r, &body) {
		return
	}

	a := requestToAgency(body)
	a.ID = id
	updated, err := s.agencies.Update(r.Context(), a, body.RegenerateSlug != nil && *body.RegenerateSlug)
	if err != nil {
		s.writeError(w, r, err, "agency not found")
		return
	}
	writeJSON(w, http.StatusOK, agencyToResponse(updated))
}

// DeleteAgency handles DELETE /agencies/{id}. The agency's trips go with it.
func (s *Server) DeleteAgency(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.agencies.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "agency not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToAgency(body AgencyRequest) domain.Agency {
	a := domain.Agency{Name: body.Name, Active: true}
	if body.Slug != nil {
		a.Slug = *body.Slug
	}
	if body.Description != nil {
		a.Description = *body.Description
	}
	if body.ContactEmail != nil {
		a.ContactEmail = *body.ContactEmail
	}
	if body.Active != nil {
		a.Active = *body.Active
	}
	return a
}

func agencyToResponse(a domain.Agency) Agency {
	resp := Agency{
		Id:        a.ID,
		Name:      a.Name,
		Slug:      a.Slug,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Description != "" {
		resp.Description = &a.Description
	}
	if a.ContactEmail != "" {
		resp.ContactEmail = &a.ContactEmail
	}
	return resp
}
