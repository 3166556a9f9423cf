package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/bookstore-service/internal/repository"
	"github.com/maxviazov/bookstore-service/internal/service"
	"github.com/maxviazov/bookstore-service/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", service.NewInvalidInputError([]service.FieldError{{Field: "size", Message: "bad"}}), 400, "invalid_input"},
		{"category_not_found", &service.NotFoundError{Entity: "Category", ID: 99}, 404, "not_found"},
		{"wrapped_not_found", fmt.Errorf("lookup: %w", repository.ErrNotFound), 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			assert.Equal(t, tc.wantCode, payload.Status)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestMapError_NotFoundMessage(t *testing.T) {
	_, payload := response.MapError(&service.NotFoundError{Entity: "Category", ID: 99})
	assert.Equal(t, "Category with id = 99 could not be found.", payload.Message)
}

func TestMapError_InternalHidesDetails(t *testing.T) {
	_, payload := response.MapError(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Empty(t, payload.Message)
}

func TestWriteError_AbortsWithPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	response.WriteError(c, &service.NotFoundError{Entity: "Category", ID: 5})

	require.True(t, c.IsAborted())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Category with id = 5 could not be found.")
	assert.Len(t, c.Errors, 1)
}
