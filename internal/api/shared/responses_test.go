package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/calculator-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"message": "success"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"success"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-1"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Session not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Session not found", resp["error"])
	assert.Equal(t, "trace-1", resp["trace_id"])
	assert.NotContains(t, resp, "Code")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{"client error logs at debug", http.StatusBadRequest, "DEBUG"},
		{"unavailable logs at warn", http.StatusServiceUnavailable, "WARN"},
		{"rate limited logs at warn", http.StatusTooManyRequests, "WARN"},
		{"server error logs at error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, logBuf := logger.NewTestLogger(t)
			req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
			ctx := logger.WithLogger(WithTraceID(req.Context(), "trace-2"), l)
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, req, tc.status, "Safe message", errors.New("internal detail"))

			assert.Equal(t, tc.status, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Safe message", resp["error"])
			assert.NotContains(t, w.Body.String(), "internal detail")

			entry := logger.FindLogEntry(t, logBuf, "API error response")
			assert.Equal(t, tc.expectedLevel, entry["level"])
			assert.Equal(t, "internal detail", entry["error"])
		})
	}
}
