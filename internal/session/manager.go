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

// ManagerConfig holds configuration for the session manager
type ManagerConfig struct {
	// MailboxSize is passed to every session the manager creates
	MailboxSize int

	// MaxSessions caps the number of live sessions
	MaxSessions int

	// IdleTTL is how long a session may go without applying an action
	// before the sweeper closes it
	IdleTTL time.Duration

	// SweepInterval defines how often to look for idle sessions
	// If zero, defaults to one minute
	SweepInterval time.Duration
}

// DefaultManagerConfig returns a ManagerConfig with reasonable defaults
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MailboxSize:   DefaultMailboxSize,
		MaxSessions:   1000,
		IdleTTL:       30 * time.Minute,
		SweepInterval: time.Minute,
	}
}

// Manager tracks the live sessions of the process.
type Manager struct {
	service calc.Service
	emitter events.EventEmitter
	config  ManagerConfig
	logger  *slog.Logger
	base    *slog.Logger
	clock   Clock

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewManager creates a new Manager. Sessions it creates share service and emitter.
func NewManager(
	service calc.Service,
	emitter events.EventEmitter,
	config ManagerConfig,
	logger *slog.Logger,
) *Manager {
	if config.SweepInterval <= 0 {
		config.SweepInterval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		service:    service,
		emitter:    emitter,
		config:     config,
		logger:     logger.With("component", "session_manager"),
		base:       logger,
		clock:      RealClock{},
		sessions:   make(map[uuid.UUID]*Session),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// SetClock replaces the time source of the manager and of sessions created afterwards.
func (m *Manager) SetClock(clock Clock) {
	m.clock = clock
}

// Create starts a new session seeded with the empty state.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	return m.CreateWithState(ctx, calc.NewState())
}

// CreateWithState starts a new session seeded with state.
func (m *Manager) CreateWithState(ctx context.Context, state calc.State) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Err() != nil {
		return nil, fmt.Errorf("session manager stopped: %w", ErrSessionClosed)
	}
	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, m.config.MaxSessions)
	}

	id := uuid.New()
	s := New(id, m.service, m.emitter,
		WithMailboxSize(m.config.MailboxSize),
		WithClock(m.clock),
		WithLogger(m.base),
		WithInitialState(state),
	)
	s.Start()
	m.sessions[id] = s

	m.logger.Info("session created", "session_id", id, "session_count", len(m.sessions))
	return s, nil
}

// Get returns the live session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close stops the session with the given id and forgets it.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	count := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.Stop()
	m.logger.Info("session closed", "session_id", id, "session_count", count)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start begins the idle session sweeper.
func (m *Manager) Start() error {
	if m.ctx.Err() != nil {
		return fmt.Errorf("session manager stopped: %w", ErrSessionClosed)
	}
	if m.config.IdleTTL <= 0 {
		m.logger.Info("idle session sweeper disabled")
		return nil
	}

	m.wg.Add(1)
	go m.sweeper()

	m.logger.Info("idle session sweeper started",
		"idle_ttl", m.config.IdleTTL,
		"sweep_interval", m.config.SweepInterval)
	return nil
}

// Stop shuts down the sweeper and closes every live session.
func (m *Manager) Stop() {
	m.cancelFunc()
	m.wg.Wait()

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
	for _, s := range sessions {
		<-s.Done()
	}

	m.logger.Info("session manager stopped", "closed_sessions", len(sessions))
}

// sweeper periodically closes sessions that have been idle for too long
func (m *Manager) sweeper() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if n := m.sweep(m.clock.Now()); n > 0 {
				m.logger.Info("closed idle sessions", "count", n)
			}
		}
	}
}

// sweep closes every session whose last activity is older than IdleTTL at now
// and returns how many were closed.
func (m *Manager) sweep(now time.Time) int {
	cutoff := now.Add(-m.config.IdleTTL)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Stop()
		m.logger.Debug("idle session evicted",
			"session_id", s.ID(),
			"last_active", s.LastActive())
	}
	return len(idle)
}
