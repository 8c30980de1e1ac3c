package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/calculator-api/internal/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingHandler keeps every event it receives.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.StateChangedEvent
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.StateChangedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) Events() []*events.StateChangedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*events.StateChangedEvent, len(h.events))
	copy(out, h.events)
	return out
}
