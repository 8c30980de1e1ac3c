package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
)

// StateChangedEvent records one action applied by a session.
// Previous and Next are equal when the action was a no-op.
type StateChangedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// SessionID identifies the session that applied the action
	SessionID uuid.UUID `json:"session_id"`

	// Seq is the 1-based position of the action in the session's history
	Seq uint64 `json:"seq"`

	// Action is the kind of action that was applied
	Action calc.ActionKind `json:"action"`

	Previous calc.State `json:"previous"`
	Next     calc.State `json:"next"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewStateChangedEvent creates a new StateChangedEvent for action.
func NewStateChangedEvent(
	sessionID uuid.UUID,
	seq uint64,
	action calc.Action,
	previous, next calc.State,
) *StateChangedEvent {
	var kind calc.ActionKind
	if action != nil {
		kind = action.Kind()
	}

	return &StateChangedEvent{
		ID:        uuid.New(),
		SessionID: sessionID,
		Seq:       seq,
		Action:    kind,
		Previous:  previous,
		Next:      next,
		CreatedAt: time.Now().UTC(),
	}
}

// Changed reports whether the action altered the state.
func (e *StateChangedEvent) Changed() bool {
	return e.Previous != e.Next
}

// EventHandler defines an interface for components that can handle events.
// Handlers are called synchronously and must not block for long.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *StateChangedEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *StateChangedEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *StateChangedEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows sessions to publish transitions without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *StateChangedEvent) error
}
