package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/calculator-api/internal/api"
	"github.com/phrazzld/calculator-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 5,
		},
		Calculator: config.CalculatorConfig{
			MaxOperandLength: 4,
			MaxResultLength:  10,
		},
		Session: config.SessionConfig{
			MailboxSize:          8,
			MaxSessions:          10,
			IdleTTLMinutes:       5,
			SweepIntervalSeconds: 60,
		},
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(app.sessions.Stop)
	return app
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)

	require.NotNil(t, app.calcService)
	assert.Equal(t, 4, app.calcService.Params().MaxOperandLength)
	assert.Equal(t, 10, app.calcService.Params().MaxResultLength)
	require.NotNil(t, app.eventEmitter)
	require.NotNil(t, app.sessions)
}

func TestNewApplication_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newApplication(ctx, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestEndToEnd(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	post := func(path, body string) *http.Response {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		return resp
	}

	resp := post("/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	var created api.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()

	// The operand limit from config applies: the fifth digit is ignored.
	resp = post("/api/sessions/"+created.ID+"/keys", `{"keys":"12345*2="}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var computed api.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&computed))
	_ = resp.Body.Close()

	assert.Equal(t, "2468.0", computed.State.Display)
	assert.Equal(t, uint64(8), computed.Seq)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	s, err := app.sessions.Create(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.True(t, s.Closed())
	assert.Equal(t, 0, app.sessions.Len())
}
