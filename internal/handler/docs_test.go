package handler_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/bookstore-service/internal/handler"
)

func useOpenAPIPath(t *testing.T, path string) {
	t.Helper()
	prev := handler.OpenAPIPath
	handler.OpenAPIPath = path
	t.Cleanup(func() { handler.OpenAPIPath = prev })
}

func TestDocs_ServesOpenAPIFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\ninfo:\n  title: catalog\n"), 0o644))
	useOpenAPIPath(t, path)

	w := do(newRouter(&stubCategoryService{}), "/openapi.yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "title: catalog")
}

func TestDocs_MissingOpenAPIFile(t *testing.T) {
	useOpenAPIPath(t, filepath.Join(t.TempDir(), "absent.yaml"))

	w := do(newRouter(&stubCategoryService{}), "/openapi.yaml")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to read openapi spec")
}

func TestDocs_SwaggerUI(t *testing.T) {
	w := do(newRouter(&stubCategoryService{}), "/docs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/openapi.yaml")
}

func TestDocs_RepositoryOpenAPIDocumentsCatalogRoutes(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "api", "openapi.yaml"))
	require.NoError(t, err)
	for _, route := range []string{"/api/v1/product-categories:", "/api/v1/product-categories/{id}:", "/api/v1/product-categories/{id}/products:"} {
		assert.Contains(t, string(data), route)
	}
}
