package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/events"
)

// DefaultMailboxSize is the number of actions a session buffers before
// Dispatch starts failing with ErrMailboxFull.
const DefaultMailboxSize = 64

// request is one queued action together with the channel its caller waits on.
type request struct {
	ctx    context.Context
	action calc.Action
	reply  chan Transition
}

// Transition is the state an action produced and the sequence number the
// session assigned to it.
type Transition struct {
	State calc.State
	Seq   uint64
}

// Session serializes the actions of one calculator.
type Session struct {
	id      uuid.UUID
	service calc.Service
	emitter events.EventEmitter
	logger  *slog.Logger
	clock   Clock

	inbox  chan request
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	mu         sync.RWMutex
	state      calc.State
	seq        uint64
	createdAt  time.Time
	lastActive time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithMailboxSize sets how many actions may wait for the session goroutine.
// Non-positive values keep the default.
func WithMailboxSize(n int) Option {
	return func(s *Session) {
		if n <= 0 {
			return
		}
		s.inbox = make(chan request, n)
	}
}

// WithClock replaces the time source used for activity tracking.
func WithClock(clock Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger the session writes to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInitialState seeds the session with state instead of the empty state.
func WithInitialState(state calc.State) Option {
	return func(s *Session) { s.state = state }
}

// New creates a session that applies actions with service and publishes each
// transition to emitter. A nil emitter disables publication. The session does
// not process anything until Start is called.
func New(id uuid.UUID, service calc.Service, emitter events.EventEmitter, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      id,
		service: service,
		emitter: emitter,
		logger:  slog.Default(),
		clock:   RealClock{},
		inbox:   make(chan request, DefaultMailboxSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		state:   calc.NewState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("component", "session", "session_id", id)
	s.createdAt = s.clock.Now()
	s.lastActive = s.createdAt
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Start launches the session goroutine. Calling Start more than once has no effect.
func (s *Session) Start() {
	s.once.Do(func() { go s.loop() })
}

// Stop closes the session. Pending and future actions fail with
// ErrSessionClosed. Stop is safe to call multiple times.
func (s *Session) Stop() {
	s.cancel()
	// A session that never started has no loop to close done.
	s.once.Do(func() { close(s.done) })
}

// Done returns a channel that closes when the session goroutine exits.
func (s *Session) Done() <-chan struct{} { return s.done }

// Closed reports whether Stop has been called.
func (s *Session) Closed() bool {
	return s.ctx.Err() != nil
}

// State returns the current state.
func (s *Session) State() calc.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Seq returns the number of actions applied so far.
func (s *Session) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Snapshot returns the current state and the seq of the action that
// produced it, read together.
func (s *Session) Snapshot() (calc.State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.seq
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt
}

// LastActive returns when the session last applied an action.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// Dispatch queues action and waits for the state it produces.
//
// If ctx is done before the session picks the action up, the action is
// skipped. If ctx is done while the action is being applied, Dispatch returns
// ctx.Err() but the action still takes effect.
func (s *Session) Dispatch(ctx context.Context, action calc.Action) (calc.State, error) {
	t, err := s.Submit(ctx, action)
	if err != nil {
		return calc.State{}, err
	}
	return t.State, nil
}

// Submit is Dispatch, also reporting the seq assigned to the action.
func (s *Session) Submit(ctx context.Context, action calc.Action) (Transition, error) {
	if action == nil {
		return Transition{}, fmt.Errorf("%w: nil action", calc.ErrInvalidAction)
	}
	if s.Closed() {
		return Transition{}, ErrSessionClosed
	}

	req := request{ctx: ctx, action: action, reply: make(chan Transition, 1)}

	select {
	case s.inbox <- req:
	case <-ctx.Done():
		return Transition{}, ctx.Err()
	default:
		return Transition{}, fmt.Errorf("%w: %d actions pending", ErrMailboxFull, cap(s.inbox))
	}

	select {
	case t := <-req.reply:
		return t, nil
	case <-ctx.Done():
		return Transition{}, ctx.Err()
	case <-s.done:
		select {
		case t := <-req.reply:
			return t, nil
		default:
			return Transition{}, ErrSessionClosed
		}
	}
}

// DispatchAll dispatches actions in order and returns the final state. It
// stops at the first error and returns the state reached so far.
func (s *Session) DispatchAll(ctx context.Context, actions []calc.Action) (calc.State, error) {
	t, err := s.SubmitAll(ctx, actions)
	return t.State, err
}

// SubmitAll is DispatchAll, also reporting the seq of the last applied
// action. With no actions it reports the current snapshot.
func (s *Session) SubmitAll(ctx context.Context, actions []calc.Action) (Transition, error) {
	var last Transition
	last.State, last.Seq = s.Snapshot()
	for i, action := range actions {
		t, err := s.Submit(ctx, action)
		if err != nil {
			return last, fmt.Errorf("action %d (%s): %w", i, action.Kind(), err)
		}
		last = t
	}
	return last, nil
}

func (s *Session) loop() {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debug("session stopped", "pending", len(s.inbox))
			return
		case req := <-s.inbox:
			s.apply(req)
		}
	}
}

// apply runs one action through the service, publishes the transition and
// replies to the waiting caller.
func (s *Session) apply(req request) {
	if err := req.ctx.Err(); err != nil {
		s.logger.Debug("skipping cancelled action", "action", req.action.Kind(), "error", err)
		return
	}

	s.mu.Lock()
	prev := s.state
	next := s.service.Apply(prev, req.action)
	s.state = next
	s.seq++
	seq := s.seq
	s.lastActive = s.clock.Now()
	s.mu.Unlock()

	s.logger.Info("action applied",
		"action", req.action.Kind(),
		"seq", seq,
		"display", next.Display())

	if next == prev {
		if _, ok := req.action.(calc.Delete); ok && prev.IsEmpty() {
			s.logger.Debug("nothing to delete", "seq", seq)
		} else {
			s.logger.Debug("action had no effect", "action", req.action.Kind(), "seq", seq)
		}
	}

	if s.emitter != nil {
		event := events.NewStateChangedEvent(s.id, seq, req.action, prev, next)
		if err := s.emitter.EmitEvent(context.WithoutCancel(req.ctx), event); err != nil {
			s.logger.Warn("failed to publish state change", "seq", seq, "error", err)
		}
	}

	req.reply <- Transition{State: next, Seq: seq}
}
