package openapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/viajastore/backend/openapi"
)

// TestDocument_listsEveryRoute keeps the embedded document in step with the
// routes registered in handler.Server.Routes.
func TestDocument_listsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(openapi.Document, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	routes := map[string][]string{
		"/healthz":                 {"get"},
		"/agencies":                {"get", "post"},
		"/agencies/by-slug/{slug}": {"get"},
		"/agencies/{id}":           {"get", "put", "delete"},
		"/agencies/{id}/trips":     {"post"},
		"/trips":                   {"get"},
		"/trips/by-slug/{slug}":    {"get"},
		"/trips/{id}":              {"get", "put", "delete"},
		"/slugs/preview":           {"get"},
		"/slugs/validate":          {"get"},
		"/admin/slugs/audit":       {"get"},
	}
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "path %s missing", path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s missing", m, path)
		}
	}
}
