package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/calculator-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("Session configuration",
		"mailbox_size", cfg.Session.MailboxSize,
		"max_sessions", cfg.Session.MaxSessions,
		"idle_ttl", cfg.Session.IdleTTL())

	return cfg, nil
}
