package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/calculator-api/internal/api/shared"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/events"
	"github.com/phrazzld/calculator-api/internal/platform/logger"
	"github.com/phrazzld/calculator-api/internal/session"
)

// Stream message types.
const (
	StreamMessageState  = "state"
	StreamMessageError  = "error"
	StreamMessageClosed = "closed"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	defaultStreamBuffer = 32
)

// StreamMessage is sent from the server to a stream client.
type StreamMessage struct {
	Type   string         `json:"type"`
	Seq    uint64         `json:"seq,omitempty"`
	Action string         `json:"action,omitempty"`
	State  *StateResponse `json:"state,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// EventSubscriber lets the stream handler listen for state changes.
type EventSubscriber interface {
	RegisterHandler(handler events.EventHandler) (unregister func())
}

// StreamHandler pushes session state changes to WebSocket clients and accepts
// actions sent over the same socket.
type StreamHandler struct {
	sessions   SessionStore
	subscriber EventSubscriber
	upgrader   websocket.Upgrader
	bufferSize int
	logger     *slog.Logger
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(sessions SessionStore, subscriber EventSubscriber, logger *slog.Logger) *StreamHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StreamHandler")
	}

	return &StreamHandler{
		sessions:   sessions,
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // sessions are capability URLs; any origin may hold one
			},
		},
		bufferSize: defaultStreamBuffer,
		logger:     logger.With(slog.String("component", "stream_handler")),
	}
}

// Stream handles GET /api/sessions/{id}/stream requests.
//
// The first message is the current state. Every later transition of the
// session is pushed as a "state" message. Clients may send ActionRequest
// objects; their outcome arrives as a regular "state" message, or as an
// "error" message when the action is rejected. When the session closes the
// server sends "closed" and ends the connection.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		log.Warn("websocket upgrade failed", "session_id", id, "error", err)
		return
	}
	defer conn.Close()

	out := make(chan StreamMessage, h.bufferSize)
	send := func(msg StreamMessage) bool {
		select {
		case out <- msg:
			return true
		default:
			return false
		}
	}

	states := &seqGate{send: send}
	unregister := h.subscriber.RegisterHandler(events.EventHandlerFunc(
		func(_ context.Context, event *events.StateChangedEvent) error {
			if event.SessionID != id {
				return nil
			}
			if queued, stale := states.forward(stateMessage(event)); !queued && !stale {
				log.Warn("stream client too slow, dropping state", "session_id", id, "seq", event.Seq)
			}
			return nil
		}))
	defer unregister()

	state, seq := s.Snapshot()
	current := NewStateResponse(state)
	states.forward(StreamMessage{Type: StreamMessageState, Seq: seq, State: &current})

	stop := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(conn, out, s.Done(), stop, log)
	}()
	defer func() {
		close(stop)
		<-writerDone
	}()

	log.Info("stream client connected", "session_id", id)
	h.readLoop(r.Context(), conn, s, send, log)
	log.Info("stream client disconnected", "session_id", id)
}

// readLoop dispatches actions sent by the client until the connection or the
// session ends.
func (h *StreamHandler) readLoop(
	ctx context.Context,
	conn *websocket.Conn,
	s *session.Session,
	send func(StreamMessage) bool,
	log *slog.Logger,
) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req ActionRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("stream read ended", "session_id", s.ID(), "error", err)
			}
			return
		}

		action, err := parseStreamAction(req)
		if err != nil {
			send(StreamMessage{Type: StreamMessageError, Error: GetSafeErrorMessage(err)})
			continue
		}

		if _, err := s.Dispatch(ctx, action); err != nil {
			send(StreamMessage{Type: StreamMessageError, Action: string(action.Kind()), Error: GetSafeErrorMessage(err)})
			if errors.Is(err, session.ErrSessionClosed) {
				return
			}
		}
	}
}

// writeLoop is the only goroutine that writes to conn.
func (h *StreamHandler) writeLoop(
	conn *websocket.Conn,
	out <-chan StreamMessage,
	closed <-chan struct{},
	stop <-chan struct{},
	log *slog.Logger,
) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	write := func(msg StreamMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("stream write failed", "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-stop:
			return

		case msg := <-out:
			if !write(msg) {
				return
			}

		case <-closed:
			if !drain(out, write) {
				return
			}
			write(StreamMessage{Type: StreamMessageClosed})
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
				time.Now().Add(writeWait))
			return

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// drain writes every message already queued in out. It reports false if a
// write failed.
func drain(out <-chan StreamMessage, write func(StreamMessage) bool) bool {
	for {
		select {
		case msg := <-out:
			if !write(msg) {
				return false
			}
		default:
			return true
		}
	}
}

// seqGate queues state messages in increasing seq order. A message whose
// seq is not newer than the last one accepted is stale and skipped, so a
// snapshot taken before a concurrent action never follows that action's
// event.
type seqGate struct {
	mu      sync.Mutex
	last    uint64
	started bool
	send    func(StreamMessage) bool
}

// forward queues msg unless it is stale. queued is false when msg was stale
// or the queue was full.
func (g *seqGate) forward(msg StreamMessage) (queued, stale bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started && msg.Seq <= g.last {
		return false, true
	}
	g.started = true
	g.last = msg.Seq
	return g.send(msg), false
}

func parseStreamAction(req ActionRequest) (calc.Action, error) {
	if err := shared.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return req.ToAction()
}

func stateMessage(event *events.StateChangedEvent) StreamMessage {
	state := NewStateResponse(event.Next)
	return StreamMessage{
		Type:   StreamMessageState,
		Seq:    event.Seq,
		Action: string(event.Action),
		State:  &state,
	}
}
