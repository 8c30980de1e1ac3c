package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(name, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	if name != "" {
		rctx.URLParams.Add(name, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		want := uuid.New()
		got, err := getPathUUID(requestWithParam("id", want.String()), "id")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := getPathUUID(requestWithParam("", ""), "id")
		assert.ErrorIs(t, err, ErrInvalidSessionID)
		assert.Contains(t, err.Error(), "id is required")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := getPathUUID(requestWithParam("id", "not-a-uuid"), "id")
		assert.ErrorIs(t, err, ErrInvalidSessionID)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
