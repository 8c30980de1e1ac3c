package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/calculator-api/internal/api/middleware"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/events"
	"github.com/phrazzld/calculator-api/internal/session"
	"github.com/stretchr/testify/require"
)

// testAPI bundles a router with the collaborators behind it.
type testAPI struct {
	router  http.Handler
	manager *session.Manager
	emitter *events.InMemoryEventEmitter
}

func newTestAPI(t *testing.T, config session.ManagerConfig) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := calc.NewDefaultService()
	emitter := events.NewInMemoryEventEmitter(logger)
	manager := session.NewManager(service, emitter, config, logger)
	t.Cleanup(manager.Stop)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r,
			NewSessionHandler(manager, service.Params(), logger),
			NewStreamHandler(manager, emitter, logger))
	})

	return &testAPI{router: r, manager: manager, emitter: emitter}
}

// do performs a request against the router and returns the recorder.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// createSession creates a session through the API and returns its response.
func (a *testAPI) createSession(t *testing.T) SessionResponse {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSession(t, w)
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func intPtr(i int) *int { return &i }
