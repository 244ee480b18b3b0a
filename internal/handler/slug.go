package handler

import (
	"net/http"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/slug"
)

// PreviewSlug handles GET /slugs/preview?name=&collection=&exclude=.
// It runs the unique slug generator without writing anything, so forms can
// show the URL a name would get. Pass exclude=<id> when editing an entity.
func (s *Server) PreviewSlug(w http.ResponseWriter, r *http.Request) {
	name, err := queryString(r, "name", true)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rawCollection, err := queryString(r, "collection", false)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if rawCollection == "" {
		rawCollection = string(domain.CollectionAgencies)
	}
	c, err := domain.ParseCollection(rawCollection)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	exclude, err := queryUUID(r, "exclude")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	generated, err := s.slugs.Generate(r.Context(), name, c, exclude)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.slugs.Release(r.Context(), c, generated)

	writeJSON(w, http.StatusOK, SlugPreview{Name: name, Collection: string(c), Slug: generated})
}

// ValidateSlug handles GET /slugs/validate?slug=. It checks the grammar only;
// availability is what /slugs/preview answers.
func (s *Server) ValidateSlug(w http.ResponseWriter, r *http.Request) {
	candidate, err := queryString(r, "slug", true)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SlugValidation{Slug: candidate, Valid: slug.IsValid(candidate)})
}
