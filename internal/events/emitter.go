package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter is a simple implementation of the EventEmitter interface
// that stores registered handlers in memory and dispatches events to them.
type InMemoryEventEmitter struct {
	handlers map[uint64]EventHandler
	nextID   uint64
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		handlers: make(map[uint64]EventHandler),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler adds a new event handler to receive events. The returned
// function removes the handler again; calling it more than once is safe.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) (unregister func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.handlers[id] = handler
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))

	var once sync.Once
	return func() {
		once.Do(func() { e.removeHandler(id) })
	}
}

func (e *InMemoryEventEmitter) removeHandler(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.handlers, id)
	e.logger.Debug("removed event handler", "handler_count", len(e.handlers))
}

// HandlerCount returns the number of registered handlers.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *StateChangedEvent) error {
	e.mu.RLock()
	handlers := make([]EventHandler, 0, len(e.handlers))
	for _, h := range e.handlers {
		handlers = append(handlers, h)
	}
	e.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"session_id", event.SessionID,
		"seq", event.Seq,
		"handler_count", len(handlers))

	var firstErr error
	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"event_id", event.ID,
				"session_id", event.SessionID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
