package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/calculator-api/internal/config"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/events"
	"github.com/phrazzld/calculator-api/internal/session"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	calcService  calc.Service
	eventEmitter *events.InMemoryEventEmitter
	sessions     *session.Manager
}

// newApplication creates a new application instance with all dependencies initialized
// and the idle session sweeper running.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	params := calc.NewParams(calc.ParamsConfig{
		MaxOperandLength: cfg.Calculator.MaxOperandLength,
		MaxResultLength:  cfg.Calculator.MaxResultLength,
	})
	app.calcService = calc.NewServiceWithParams(params)
	logger.Info("Calculator service initialized",
		"max_operand_length", params.MaxOperandLength,
		"max_result_length", params.MaxResultLength)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.sessions = session.NewManager(app.calcService, app.eventEmitter, session.ManagerConfig{
		MailboxSize:   cfg.Session.MailboxSize,
		MaxSessions:   cfg.Session.MaxSessions,
		IdleTTL:       cfg.Session.IdleTTL(),
		SweepInterval: cfg.Session.SweepInterval(),
	}, logger)
	if err := app.sessions.Start(); err != nil {
		return nil, fmt.Errorf("failed to start session manager: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.sessions != nil {
		app.sessions.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
