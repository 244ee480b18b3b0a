package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/viajastore/backend/internal/domain"
)

// pathUUID binds the {name} path segment as a UUID.
func pathUUID(r *http.Request, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}

// bindList binds ?page= and ?limit= into domain pagination.
// Absent or non-positive values fall back to the defaults.
func bindList(r *http.Request) (domain.PaginationParams, error) {
	var params ListParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &params.Page); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("invalid format for parameter page: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return domain.NewPaginationParams(params.Page, params.Limit), nil
}

// queryString binds an optional string query parameter.
func queryString(r *http.Request, name string, required bool) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// queryUUID binds an optional UUID query parameter.
func queryUUID(r *http.Request, name string) (*openapi_types.UUID, error) {
	var id *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &id); err != nil {
		return nil, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}

func pagination(p domain.PaginationParams, total int64) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: int(total)}
}
