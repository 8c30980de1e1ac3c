package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/phrazzld/calculator-api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + id + "/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) StreamMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStreamHandler(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t, session.DefaultManagerConfig())
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	created := a.createSession(t)
	conn := dialStream(t, srv, created.ID)

	initial := readMessage(t, conn)
	assert.Equal(t, StreamMessageState, initial.Type)
	require.NotNil(t, initial.State)
	assert.Equal(t, "", initial.State.Display)

	t.Run("actions sent on the socket are applied", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(ActionRequest{Type: "digit", Digit: intPtr(5)}))

		msg := readMessage(t, conn)
		assert.Equal(t, StreamMessageState, msg.Type)
		assert.Equal(t, uint64(1), msg.Seq)
		assert.Equal(t, "digit", msg.Action)
		require.NotNil(t, msg.State)
		assert.Equal(t, "5", msg.State.Display)
	})

	t.Run("actions over HTTP are pushed", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/actions",
			ActionRequest{Type: "operator", Operator: "+"})
		require.Equal(t, http.StatusOK, w.Code)

		msg := readMessage(t, conn)
		assert.Equal(t, uint64(2), msg.Seq)
		require.NotNil(t, msg.State)
		assert.Equal(t, "5+", msg.State.Display)
	})

	t.Run("rejected actions produce an error message", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(ActionRequest{Type: "square"}))

		msg := readMessage(t, conn)
		assert.Equal(t, StreamMessageError, msg.Type)
		assert.Equal(t, "Invalid Type: invalid value", msg.Error)
	})

	t.Run("closing the session ends the stream", func(t *testing.T) {
		w := a.do(t, http.MethodDelete, "/api/sessions/"+created.ID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		msg := readMessage(t, conn)
		assert.Equal(t, StreamMessageClosed, msg.Type)

		_, _, err := conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

		assert.Eventually(t, func() bool {
			return a.emitter.HandlerCount() == 0
		}, 5*time.Second, 10*time.Millisecond)
	})
}

func TestStreamHandler_UnknownSession(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t, session.DefaultManagerConfig())

	w := a.do(t, http.MethodGet, "/api/sessions/"+uuid.NewString()+"/stream", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamHandler_IgnoresOtherSessions(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t, session.DefaultManagerConfig())
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	watched := a.createSession(t)
	other := a.createSession(t)
	conn := dialStream(t, srv, watched.ID)
	readMessage(t, conn)

	w := a.do(t, http.MethodPost, "/api/sessions/"+other.ID+"/keys", KeysRequest{Keys: "42"})
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodPost, "/api/sessions/"+watched.ID+"/keys", KeysRequest{Keys: "7"})
	require.Equal(t, http.StatusOK, w.Code)

	msg := readMessage(t, conn)
	require.NotNil(t, msg.State)
	assert.Equal(t, "7", msg.State.Display)
	assert.Equal(t, uint64(1), msg.Seq)
}

func TestSeqGate(t *testing.T) {
	t.Parallel()

	var queued []uint64
	full := false
	gate := &seqGate{send: func(msg StreamMessage) bool {
		if full {
			return false
		}
		queued = append(queued, msg.Seq)
		return true
	}}

	tests := []struct {
		seq        uint64
		full       bool
		wantQueued bool
		wantStale  bool
	}{
		{seq: 0, wantQueued: true},
		{seq: 2, wantQueued: true},
		// A snapshot read before seq 2 landed.
		{seq: 1, wantStale: true},
		{seq: 2, wantStale: true},
		{seq: 3, full: true},
		{seq: 3, wantStale: true},
		{seq: 4, wantQueued: true},
	}

	for i, tt := range tests {
		full = tt.full
		gotQueued, gotStale := gate.forward(StreamMessage{Type: StreamMessageState, Seq: tt.seq})
		assert.Equal(t, tt.wantQueued, gotQueued, "step %d", i)
		assert.Equal(t, tt.wantStale, gotStale, "step %d", i)
	}
	assert.Equal(t, []uint64{0, 2, 4}, queued)
}
