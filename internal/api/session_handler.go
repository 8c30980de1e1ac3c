package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/calculator-api/internal/api/shared"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/platform/logger"
	"github.com/phrazzld/calculator-api/internal/session"
)

// SessionStore is the part of the session manager the handlers use.
type SessionStore interface {
	Create(ctx context.Context) (*session.Session, error)
	CreateWithState(ctx context.Context, state calc.State) (*session.Session, error)
	Get(id uuid.UUID) (*session.Session, error)
	Close(id uuid.UUID) error
}

// SessionHandler handles calculator session HTTP requests
type SessionHandler struct {
	sessions SessionStore
	params   *calc.Params
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. params are used to validate
// client-supplied snapshots and must match the service the sessions use.
func NewSessionHandler(sessions SessionStore, params *calc.Params, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	if params == nil {
		params = calc.NewDefaultParams()
	}

	return &SessionHandler{
		sessions: sessions,
		params:   params,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /api/sessions requests.
// The body is optional; when present it may seed the session with a state.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var (
		s   *session.Session
		err error
	)
	if req.State != nil {
		state, stateErr := req.State.ToState(h.params)
		if stateErr != nil {
			log.Debug("rejected session snapshot", "error", stateErr)
			HandleAPIError(w, r, stateErr, "")
			return
		}
		s, err = h.sessions.CreateWithState(r.Context(), state)
	} else {
		s, err = h.sessions.Create(r.Context())
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("session created via API", "session_id", s.ID())
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(s))
}

// GetSession handles GET /api/sessions/{id} requests
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(s))
}

// ApplyAction handles POST /api/sessions/{id}/actions requests.
// A well-formed action the calculator ignores still returns 200 with the
// unchanged state.
func (h *SessionHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req ActionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	action, err := req.ToAction()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("action received", "session_id", s.ID(), "action", action.Kind())

	next, err := s.Submit(r.Context(), action)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionTransitionToResponse(s, next))
}

// ApplyKeys handles POST /api/sessions/{id}/keys requests.
// Every key is mapped to an action and dispatched in order; an unknown key
// rejects the whole request before anything is dispatched.
func (h *SessionHandler) ApplyKeys(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req KeysRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	actions, err := calc.ParseKeys(req.Keys)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("keys received", "session_id", s.ID(), "count", len(actions))

	last, err := s.SubmitAll(r.Context(), actions)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionTransitionToResponse(s, last))
}

// DeleteSession handles DELETE /api/sessions/{id} requests
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sessions.Close(id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} path parameter to a live session, writing an
// error response when it cannot.
func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	if s.Closed() {
		HandleAPIError(w, r, session.ErrSessionClosed, "")
		return nil, false
	}
	return s, true
}
